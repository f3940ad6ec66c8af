package sampler

import (
	"bytes"
	"image"
	_ "image/jpeg" // Register decoders for captured view rasters
	_ "image/png"
	"log"
	"math"

	xdraw "golang.org/x/image/draw"

	"satprobe-desktop/internal/colortable"
)

// cropRadius is half the neighborhood sampled around the probe point. The
// 5x5 crop is averaged down to one pixel to smooth single-pixel noise.
const cropRadius = 2

// Color is a probed screen color. Exactly one of Sampled or Estimated is set
// so the UI can mark estimated readings as approximate.
type Color struct {
	R         uint8 `json:"r"`
	G         uint8 `json:"g"`
	B         uint8 `json:"b"`
	Sampled   bool  `json:"sampled,omitempty"`
	Estimated bool  `json:"estimated,omitempty"`
}

// CaptureFunc rasterizes the current view at exactly width x height pixels
// and returns it as an encoded image (PNG or JPEG). Implemented by the view
// layer outside this package. The 1:1 size requirement keeps tap coordinates
// aligned without rescale error.
type CaptureFunc func(width, height int) ([]byte, error)

// SampleAt extracts the on-screen color at (x, y) through a
// capture-crop-decode pipeline. Any failure at any stage returns nil rather
// than an error; the caller is expected to fall back to EstimateColor.
// Capture latency can be visible, so callers should await this once and not
// retry on failure.
func SampleAt(capture CaptureFunc, x, y, viewWidth, viewHeight int) *Color {
	if capture == nil || viewWidth <= 0 || viewHeight <= 0 {
		return nil
	}

	data, err := capture(viewWidth, viewHeight)
	if err != nil || len(data) == 0 {
		return nil
	}

	img := decodeRaster(data)
	if img == nil {
		return nil
	}

	// Crop a 5x5 neighborhood centered on the probe point, clamping the
	// origin so it never goes negative
	originX := x - cropRadius
	originY := y - cropRadius
	if originX < 0 {
		originX = 0
	}
	if originY < 0 {
		originY = 0
	}

	bounds := img.Bounds()
	crop := image.Rect(
		bounds.Min.X+originX,
		bounds.Min.Y+originY,
		bounds.Min.X+originX+2*cropRadius+1,
		bounds.Min.Y+originY+2*cropRadius+1,
	).Intersect(bounds)
	if crop.Empty() {
		return nil
	}

	// Downsample the crop to a single pixel; the bilinear kernel acts as a
	// local average
	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, crop, xdraw.Src, nil)

	r, g, b, _ := dst.At(0, 0).RGBA()
	return &Color{
		R:       uint8(r >> 8),
		G:       uint8(g >> 8),
		B:       uint8(b >> 8),
		Sampled: true,
	}
}

// decodeRaster decodes captured bytes, containing any decoder panic so a
// corrupt capture degrades to a nil sample instead of crashing the probe.
func decodeRaster(data []byte) (img image.Image) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Raster decode panic recovered: %v", r)
			img = nil
		}
	}()

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return decoded
}

// EstimateColor derives a plausible color for a screen position without any
// capture, from the vertical position alone. For infrared channel imagery
// the view runs warmest at the top, so the position maps through the
// channel's color table with index 0 (coldest) at the bottom. Everything
// else gets neutral gray. Pure computation; never fails.
func EstimateColor(x, y, viewHeight int, mode, productID string) Color {
	neutral := Color{R: 128, G: 128, B: 128, Estimated: true}

	if mode != colortable.ModeChannel || !colortable.IsInfrared(productID) {
		return neutral
	}
	ch := colortable.LookupChannel(productID)
	if ch == nil || ch.Table == nil || len(ch.Table.Colors) == 0 || viewHeight <= 0 {
		return neutral
	}

	colors := ch.Table.Colors
	n := len(colors)
	if n == 1 {
		return Color{R: colors[0].R, G: colors[0].G, B: colors[0].B, Estimated: true}
	}

	pct := float64(y) / float64(viewHeight)
	idx := (1 - pct) * float64(n-1)
	idx = math.Max(0, math.Min(idx, float64(n-1)))

	lo := int(math.Floor(idx))
	hi := lo + 1
	if hi > n-1 {
		hi = n - 1
	}
	t := idx - float64(lo)

	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + t*(float64(b)-float64(a))))
	}
	return Color{
		R:         lerp(colors[lo].R, colors[hi].R),
		G:         lerp(colors[lo].G, colors[hi].G),
		B:         lerp(colors[lo].B, colors[hi].B),
		Estimated: true,
	}
}
