package colortable

import (
	"math"
	"testing"
)

// TestTemperatureFromColor_ExactMatch probes the first C07 table entry:
// (122,122,122) appears at index 0, paired with -83°C
func TestTemperatureFromColor_ExactMatch(t *testing.T) {
	temp := TemperatureFromColor(122, 122, 122, "C07")
	if temp == nil {
		t.Fatal("expected temperature, got nil")
	}
	if *temp != -83 {
		t.Errorf("expected -83, got %.1f", *temp)
	}
}

// TestTemperatureFromColor_NearestMatch uses a color between two table
// entries: (123,123,123) is distance sqrt(3) from (122,122,122) and
// distance sqrt(12) from (125,125,125), so -83 wins
func TestTemperatureFromColor_NearestMatch(t *testing.T) {
	temp := TemperatureFromColor(123, 123, 123, "C07")
	if temp == nil {
		t.Fatal("expected temperature, got nil")
	}
	if *temp != -83 {
		t.Errorf("expected -83, got %.1f", *temp)
	}
}

func TestTemperatureFromColor_UnknownChannel(t *testing.T) {
	if temp := TemperatureFromColor(122, 122, 122, "C99"); temp != nil {
		t.Errorf("expected nil for unknown channel, got %.1f", *temp)
	}
	// Visible bands carry no enhancement table
	if temp := TemperatureFromColor(122, 122, 122, "C02"); temp != nil {
		t.Errorf("expected nil for visible channel, got %.1f", *temp)
	}
}

func TestChannelTemperatureRange(t *testing.T) {
	tests := []struct {
		channelID string
		min, max  float64
	}{
		{"C07", -83, 127},
		{"C09", -93, 7},
		{"C13", -110, 57},
		{"C99", -110, 57}, // unknown -> fixed default
		{"C02", -110, 57}, // visible -> fixed default
	}

	for _, tt := range tests {
		r := ChannelTemperatureRange(tt.channelID)
		if r.Min != tt.min || r.Max != tt.max {
			t.Errorf("%s: expected [%.0f, %.0f], got [%.0f, %.0f]",
				tt.channelID, tt.min, tt.max, r.Min, r.Max)
		}
	}
}

func TestInterpretProductColor(t *testing.T) {
	// Exact reference color for the airmass composite
	interp := InterpretProductColor(160, 60, 150, "airmass")
	if interp.Label != "Stratospheric intrusion" {
		t.Errorf("expected stratospheric intrusion, got %q", interp.Label)
	}

	// Day and night lists are both searched
	interp = InterpretProductColor(181, 181, 201, "daycloudphase")
	if interp.Label != "Low cloud or fog" {
		t.Errorf("expected low cloud or fog, got %q", interp.Label)
	}

	interp = InterpretProductColor(10, 10, 10, "nosuchproduct")
	if interp.Label != "Unknown" {
		t.Errorf("expected Unknown fallback, got %q", interp.Label)
	}
}

func TestShouldShowColorbar(t *testing.T) {
	tests := []struct {
		mode, productID string
		expected        bool
	}{
		{ModeChannel, "C13", true},
		{ModeChannel, "C07", true},
		{ModeChannel, "C02", false}, // visible channel
		{ModeChannel, "C99", false}, // unknown channel
		{ModeRGB, "C13", false},     // rgb mode never shows a colorbar
		{ModeRGB, "airmass", false},
		{"", "C13", false},
	}

	for _, tt := range tests {
		if got := ShouldShowColorbar(tt.mode, tt.productID); got != tt.expected {
			t.Errorf("ShouldShowColorbar(%q, %q) = %v, expected %v",
				tt.mode, tt.productID, got, tt.expected)
		}
	}
}

func TestAnalyzeColor_InfraredChannel(t *testing.T) {
	// (122,122,122) on C07 resolves -83°C = -117.4°F
	a := AnalyzeColor(122, 122, 122, ModeChannel, "C07")
	if a.Unit != "°F" {
		t.Errorf("expected °F unit, got %q", a.Unit)
	}
	if math.Abs(a.Value-(-117.4)) > 1e-9 {
		t.Errorf("expected -117.4, got %.4f", a.Value)
	}
}

func TestAnalyzeColor_RGBProduct(t *testing.T) {
	a := AnalyzeColor(200, 60, 200, ModeRGB, "dust")
	if a.Label != "Airborne dust" {
		t.Errorf("expected airborne dust, got %q", a.Label)
	}
}

func TestAnalyzeColor_RawFallback(t *testing.T) {
	a := AnalyzeColor(10, 20, 30, ModeChannel, "C02")
	if a.Label != "RGB" {
		t.Errorf("expected raw RGB fallback for visible channel, got %q", a.Label)
	}
	if a.Description != "R:10 G:20 B:30" {
		t.Errorf("unexpected description %q", a.Description)
	}
}

func TestMapGradientPositionToValue(t *testing.T) {
	// C13 range is [-110, 57]; 0% -> min, 100% -> max, 50% -> midpoint -26.5
	if v := MapGradientPositionToValue(0, ModeChannel, "C13"); v != -110 {
		t.Errorf("0%%: expected -110, got %.2f", v)
	}
	if v := MapGradientPositionToValue(100, ModeChannel, "C13"); v != 57 {
		t.Errorf("100%%: expected 57, got %.2f", v)
	}
	if v := MapGradientPositionToValue(50, ModeChannel, "C13"); math.Abs(v-(-26.5)) > 1e-9 {
		t.Errorf("50%%: expected -26.5, got %.2f", v)
	}

	// RGB mode passes the raw percentage through
	if v := MapGradientPositionToValue(42, ModeRGB, "airmass"); v != 42 {
		t.Errorf("rgb mode: expected 42, got %.2f", v)
	}
}

func TestGradient(t *testing.T) {
	stops := Gradient(50)
	if len(stops) != 50 {
		t.Fatalf("expected 50 stops, got %d", len(stops))
	}

	// Hue 240 is pure blue, hue 0 is pure red
	first := stops[0].Color
	if first.R != 0 || first.G != 0 || first.B != 255 {
		t.Errorf("expected blue first stop, got %+v", first)
	}
	last := stops[len(stops)-1].Color
	if last.R != 255 || last.G != 0 || last.B != 0 {
		t.Errorf("expected red last stop, got %+v", last)
	}
	if stops[0].Position != 0 || stops[len(stops)-1].Position != 100 {
		t.Errorf("expected positions 0 and 100, got %.2f and %.2f",
			stops[0].Position, stops[len(stops)-1].Position)
	}

	// Zero or negative segment counts fall back to the default
	if got := len(Gradient(0)); got != DefaultGradientSegments {
		t.Errorf("expected default segment count, got %d", got)
	}
}
