package geo

import "fmt"

// Supported projection identifiers
const (
	ProjectionPlateCarree   = "plate_carree"
	ProjectionMercator      = "mercator"
	ProjectionGeostationary = "geostationary"
)

// Bounds represents a geographic bounding box in degrees
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// ImageSize represents the pixel dimensions of a rendered frame
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Pixel is an image-space coordinate. X grows right, Y grows down.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point is a geographic coordinate in degrees
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Grids holds per-pixel latitude/longitude lookup tables supplied by upstream
// data for projections with no closed-form formula (geostationary scans).
// Both grids are row-major and must share dimensions.
type Grids struct {
	LatGrid [][]float64 `json:"latGrid"`
	LonGrid [][]float64 `json:"lonGrid"`
}

// Validate checks bounds ordering and degree ranges.
// Bounds crossing the antimeridian are rejected (minLon >= maxLon).
func (b Bounds) Validate() error {
	if b.MinLat < -90 || b.MaxLat > 90 {
		return fmt.Errorf("latitude out of range: %.4f..%.4f", b.MinLat, b.MaxLat)
	}
	if b.MinLon < -180 || b.MaxLon > 180 {
		return fmt.Errorf("longitude out of range: %.4f..%.4f", b.MinLon, b.MaxLon)
	}
	if b.MinLat >= b.MaxLat {
		return fmt.Errorf("invalid latitude ordering: min %.4f >= max %.4f", b.MinLat, b.MaxLat)
	}
	if b.MinLon >= b.MaxLon {
		return fmt.Errorf("invalid longitude ordering: min %.4f >= max %.4f", b.MinLon, b.MaxLon)
	}
	return nil
}

// PointInBounds reports whether a coordinate lies within bounds, inclusive on
// both axes.
func PointInBounds(lat, lon float64, bounds *Bounds) bool {
	if bounds == nil {
		return false
	}
	return lat >= bounds.MinLat && lat <= bounds.MaxLat &&
		lon >= bounds.MinLon && lon <= bounds.MaxLon
}
