package colortable

import (
	"fmt"
	"math"
)

// Display modes for the probe overlay. In channel mode the product
// identifier names an ABI band; in rgb mode it names a composite.
const (
	ModeChannel = "channel"
	ModeRGB     = "rgb"
)

// TemperatureRange is the min/max of a channel's enhancement table
type TemperatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// defaultRange is the longwave enhancement envelope, used when a channel has
// no table of its own.
var defaultRange = TemperatureRange{Min: -110, Max: 57}

// ChannelTemperatureRange returns the Celsius span of a channel's
// enhancement table, or a fixed default for unknown channels.
func ChannelTemperatureRange(channelID string) TemperatureRange {
	ch := channels[channelID]
	if ch == nil || ch.Table == nil || len(ch.Table.Temperatures) == 0 {
		return defaultRange
	}
	temps := ch.Table.Temperatures
	return TemperatureRange{Min: temps[0], Max: temps[len(temps)-1]}
}

func colorDistance(r, g, b uint8, c RGB) float64 {
	dr := float64(r) - float64(c.R)
	dg := float64(g) - float64(c.G)
	db := float64(b) - float64(c.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// TemperatureFromColor inverts a channel's enhancement table by nearest RGB
// match: the returned temperature is the table entry whose color has the
// globally minimal Euclidean distance to (r,g,b). The first index wins ties.
// Returns nil for an unknown or uncalibrated channel.
func TemperatureFromColor(r, g, b uint8, channelID string) *float64 {
	ch := channels[channelID]
	if ch == nil || ch.Table == nil || len(ch.Table.Colors) == 0 {
		return nil
	}

	bestIdx := 0
	bestDist := math.Inf(1)
	for i, c := range ch.Table.Colors {
		if d := colorDistance(r, g, b, c); d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}

	temp := ch.Table.Temperatures[bestIdx]
	return &temp
}

// Interpretation is the semantic meaning of a composite color
type Interpretation struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

var unknownInterpretation = Interpretation{
	Label:       "Unknown",
	Description: "No reference color close enough to interpret",
}

// InterpretProductColor finds the nearest reference color across a product's
// day, night and general lists and returns its meaning. Unrecognized
// products fall back to the Unknown interpretation.
func InterpretProductColor(r, g, b uint8, productID string) Interpretation {
	p := products[productID]
	if p == nil {
		return unknownInterpretation
	}

	refs := make([]ReferenceColor, 0, len(p.Day)+len(p.Night)+len(p.General))
	refs = append(refs, p.Day...)
	refs = append(refs, p.Night...)
	refs = append(refs, p.General...)
	if len(refs) == 0 {
		return unknownInterpretation
	}

	best := refs[0]
	bestDist := colorDistance(r, g, b, refs[0].Color)
	for _, ref := range refs[1:] {
		if d := colorDistance(r, g, b, ref.Color); d < bestDist {
			bestDist = d
			best = ref
		}
	}

	return Interpretation{Label: best.Label, Description: best.Description}
}

// ShouldShowColorbar reports whether a temperature colorbar makes sense for
// the current display: only single-channel infrared imagery has a calibrated
// scale. RGB composites and reflective bands never show one.
func ShouldShowColorbar(mode, channelID string) bool {
	return mode == ModeChannel && IsInfrared(channelID)
}

// Analysis is the human-facing result of probing one pixel
type Analysis struct {
	Label       string  `json:"label"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

// AnalyzeColor turns a sampled color into a display-ready value. Infrared
// channel mode resolves a brightness temperature and reports it in
// Fahrenheit; rgb mode resolves the composite interpretation; anything else
// falls back to the raw components.
func AnalyzeColor(r, g, b uint8, mode, productID string) Analysis {
	if mode == ModeChannel && IsInfrared(productID) {
		if celsius := TemperatureFromColor(r, g, b, productID); celsius != nil {
			fahrenheit := *celsius*9/5 + 32
			ch := channels[productID]
			return Analysis{
				Label:       fmt.Sprintf("%s (%s)", ch.Name, ch.ID),
				Value:       math.Round(fahrenheit*10) / 10,
				Unit:        "°F",
				Description: fmt.Sprintf("Brightness temperature %.1f°C / %.1f°F", *celsius, fahrenheit),
			}
		}
	}

	if mode == ModeRGB {
		interp := InterpretProductColor(r, g, b, productID)
		return Analysis{
			Label:       interp.Label,
			Description: interp.Description,
		}
	}

	return Analysis{
		Label:       "RGB",
		Description: fmt.Sprintf("R:%d G:%d B:%d", r, g, b),
	}
}

// MapGradientPositionToValue maps a colorbar position (0..100, bottom to
// top) to a display value. Infrared channel mode interpolates across the
// channel's temperature range; every other mode passes the percentage
// through unchanged. This is a position-to-value mapping for labels only and
// performs no color matching.
func MapGradientPositionToValue(percentage float64, mode, productID string) float64 {
	if mode == ModeChannel && IsInfrared(productID) {
		r := ChannelTemperatureRange(productID)
		return r.Min + percentage/100*(r.Max-r.Min)
	}
	return percentage
}
