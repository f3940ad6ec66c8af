package colortable

import "math"

// DefaultGradientSegments is the standard resolution of the display gradient
const DefaultGradientSegments = 50

// GradientStop is one segment of the generic colorbar gradient
type GradientStop struct {
	Position float64 `json:"position"` // 0..100, bottom to top
	Color    RGB     `json:"color"`
}

// Gradient produces a generic blue-to-red display gradient: hue interpolated
// linearly from 240° at the first segment to 0° at the last, with fixed
// saturation and lightness. It is independent of any channel's enhancement
// table and exists only as a backdrop for colorbar labels.
func Gradient(segments int) []GradientStop {
	if segments <= 0 {
		segments = DefaultGradientSegments
	}

	stops := make([]GradientStop, segments)
	for i := 0; i < segments; i++ {
		t := 0.0
		if segments > 1 {
			t = float64(i) / float64(segments-1)
		}
		hue := 240 * (1 - t)
		r, g, b := hslToRGB(hue, 1.0, 0.5)
		stops[i] = GradientStop{
			Position: t * 100,
			Color:    RGB{R: r, G: g, B: b},
		}
	}
	return stops
}

// hslToRGB converts hue (degrees), saturation and lightness (0..1) to 8-bit
// RGB using the standard piecewise formula.
func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	m := l - c/2
	return uint8(math.Round((r + m) * 255)),
		uint8(math.Round((g + m) * 255)),
		uint8(math.Round((b + m) * 255))
}
