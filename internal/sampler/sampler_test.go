package sampler

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"satprobe-desktop/internal/colortable"
)

// solidCapture fakes the view layer with a uniform raster of the given color
func solidCapture(c color.RGBA) CaptureFunc {
	return func(width, height int) ([]byte, error) {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.SetRGBA(x, y, c)
			}
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func TestSampleAt_SolidColor(t *testing.T) {
	capture := solidCapture(color.RGBA{R: 200, G: 60, B: 200, A: 255})

	c := SampleAt(capture, 50, 50, 100, 100)
	if c == nil {
		t.Fatal("expected sampled color, got nil")
	}
	if !c.Sampled || c.Estimated {
		t.Errorf("expected sampled flag only, got %+v", c)
	}
	if c.R != 200 || c.G != 60 || c.B != 200 {
		t.Errorf("expected (200, 60, 200), got (%d, %d, %d)", c.R, c.G, c.B)
	}
}

// TestSampleAt_CornerClamp verifies the crop origin clamps to zero at the
// view corner instead of failing
func TestSampleAt_CornerClamp(t *testing.T) {
	capture := solidCapture(color.RGBA{R: 10, G: 20, B: 30, A: 255})

	c := SampleAt(capture, 0, 0, 64, 64)
	if c == nil {
		t.Fatal("expected sampled color at the corner, got nil")
	}
	if c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("expected (10, 20, 30), got (%d, %d, %d)", c.R, c.G, c.B)
	}
}

func TestSampleAt_Failures(t *testing.T) {
	failing := CaptureFunc(func(width, height int) ([]byte, error) {
		return nil, errors.New("capture unavailable")
	})
	if c := SampleAt(failing, 10, 10, 100, 100); c != nil {
		t.Errorf("expected nil on capture error, got %+v", c)
	}

	garbage := CaptureFunc(func(width, height int) ([]byte, error) {
		return []byte("not an image"), nil
	})
	if c := SampleAt(garbage, 10, 10, 100, 100); c != nil {
		t.Errorf("expected nil on undecodable capture, got %+v", c)
	}

	if c := SampleAt(nil, 10, 10, 100, 100); c != nil {
		t.Errorf("expected nil for missing capture collaborator, got %+v", c)
	}

	capture := solidCapture(color.RGBA{A: 255})
	if c := SampleAt(capture, 10, 10, 0, 0); c != nil {
		t.Errorf("expected nil for empty view, got %+v", c)
	}

	// Probe point entirely outside the raster leaves an empty crop
	if c := SampleAt(capture, 500, 500, 100, 100); c != nil {
		t.Errorf("expected nil for out-of-view probe, got %+v", c)
	}
}

// TestEstimateColor_Boundaries checks the vertical mapping: the bottom of
// the view is the coldest (first) table entry, the top is the warmest (last)
func TestEstimateColor_Boundaries(t *testing.T) {
	ch := colortable.LookupChannel("C13")
	colors := ch.Table.Colors
	first := colors[0]
	last := colors[len(colors)-1]

	height := 600

	top := EstimateColor(10, 0, height, colortable.ModeChannel, "C13")
	if !top.Estimated || top.Sampled {
		t.Errorf("expected estimated flag only, got %+v", top)
	}
	if top.R != last.R || top.G != last.G || top.B != last.B {
		t.Errorf("top of view: expected last table color %+v, got %+v", last, top)
	}

	bottom := EstimateColor(10, height, height, colortable.ModeChannel, "C13")
	if bottom.R != first.R || bottom.G != first.G || bottom.B != first.B {
		t.Errorf("bottom of view: expected first table color %+v, got %+v", first, bottom)
	}
}

// TestEstimateColor_Interpolation samples between two adjacent entries
func TestEstimateColor_Interpolation(t *testing.T) {
	ch := colortable.LookupChannel("C07")
	n := len(ch.Table.Colors)

	// With height = 2(n-1) and y = 1, the fractional index is
	// (1 - 1/(2(n-1)))*(n-1) = n-1.5: exactly halfway between the last
	// two table entries
	height := 2 * (n - 1)
	c := EstimateColor(0, 1, height, colortable.ModeChannel, "C07")

	a := ch.Table.Colors[n-2]
	b := ch.Table.Colors[n-1]
	expectedR := uint8((int(a.R) + int(b.R) + 1) / 2)
	if c.R != expectedR && c.R != expectedR-1 && c.R != expectedR+1 {
		t.Errorf("expected R near midpoint of %d and %d, got %d", a.R, b.R, c.R)
	}
}

func TestEstimateColor_NeutralFallback(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		productID string
	}{
		{"rgb mode", colortable.ModeRGB, "airmass"},
		{"visible channel", colortable.ModeChannel, "C02"},
		{"unknown channel", colortable.ModeChannel, "C99"},
	}

	for _, tt := range tests {
		c := EstimateColor(10, 300, 600, tt.mode, tt.productID)
		if c.R != 128 || c.G != 128 || c.B != 128 {
			t.Errorf("%s: expected neutral gray, got %+v", tt.name, c)
		}
		if !c.Estimated {
			t.Errorf("%s: expected estimated flag", tt.name)
		}
	}
}
