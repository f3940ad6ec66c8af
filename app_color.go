package main

import (
	"encoding/base64"
	"strings"

	"satprobe-desktop/internal/colortable"
	"satprobe-desktop/internal/sampler"
)

// Color Interpretation Functions (Wails-exported)

// ProbeResult is the full outcome of probing one screen pixel
type ProbeResult struct {
	Color    sampler.Color       `json:"color"`
	Analysis colortable.Analysis `json:"analysis"`
}

// ProbePixel extracts the color under a tap and interprets it. The frontend
// rasterizes the current view at exactly viewWidth x viewHeight and passes it
// base64-encoded (a data URL prefix is tolerated). If the capture pipeline
// fails at any stage the color is estimated from the vertical position
// instead, so the probe always produces a usable reading.
func (a *App) ProbePixel(captureB64 string, x, y, viewWidth, viewHeight int, mode, productID string) ProbeResult {
	capture := captureFromBase64(captureB64)

	color := sampler.SampleAt(capture, x, y, viewWidth, viewHeight)
	if color == nil {
		a.logf("Pixel sample failed at (%d, %d), estimating", x, y)
		estimated := sampler.EstimateColor(x, y, viewHeight, mode, productID)
		color = &estimated
	}

	analysis := colortable.AnalyzeColor(color.R, color.G, color.B, mode, productID)

	a.TrackEvent("pixel_probed", map[string]interface{}{
		"mode":      mode,
		"product":   productID,
		"estimated": color.Estimated,
	})

	return ProbeResult{Color: *color, Analysis: analysis}
}

// captureFromBase64 wraps frontend-supplied capture bytes in the sampler's
// capture contract. Decoding errors surface through the returned CaptureFunc
// so SampleAt handles them like any other capture failure.
func captureFromBase64(captureB64 string) sampler.CaptureFunc {
	return func(width, height int) ([]byte, error) {
		payload := captureB64
		// Tolerate a data URL wrapper: data:image/png;base64,....
		if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
			payload = payload[idx+1:]
		}
		return base64.StdEncoding.DecodeString(payload)
	}
}

// AnalyzeColor interprets an already-known color without sampling
func (a *App) AnalyzeColor(r, g, b int, mode, productID string) colortable.Analysis {
	return colortable.AnalyzeColor(clampByte(r), clampByte(g), clampByte(b), mode, productID)
}

// GetColorbarGradient returns the generic display gradient
func (a *App) GetColorbarGradient(segments int) []colortable.GradientStop {
	return colortable.Gradient(segments)
}

// ShouldShowColorbar reports whether the current display warrants a
// temperature colorbar
func (a *App) ShouldShowColorbar(mode, productID string) bool {
	return colortable.ShouldShowColorbar(mode, productID)
}

// MapColorbarPosition maps a colorbar position (0..100) to its display value
func (a *App) MapColorbarPosition(percentage float64, mode, productID string) float64 {
	return colortable.MapGradientPositionToValue(percentage, mode, productID)
}

// GetChannelTemperatureRange returns a channel's calibrated Celsius span
func (a *App) GetChannelTemperatureRange(channelID string) colortable.TemperatureRange {
	return colortable.ChannelTemperatureRange(channelID)
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
