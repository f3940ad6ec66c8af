package geodata

import (
	"encoding/json"
	"fmt"

	"satprobe-desktop/internal/geo"
)

// Resolution is the pixel size of the rendered frame the metadata describes
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Polygon is a geographic annotation overlaid on a frame. Coordinates are
// [lat, lon] vertex pairs.
type Polygon struct {
	Type        string                 `json:"type"`
	Coordinates [][2]float64           `json:"coordinates"`
	Properties  map[string]interface{} `json:"properties"`
}

// FrameMetadata is the normalized geospatial metadata for one frame.
// Instances are immutable once cached; treat every field as read-only.
type FrameMetadata struct {
	Bounds     geo.Bounds             `json:"bounds"`
	Projection string                 `json:"projection"`
	Resolution *Resolution            `json:"resolution,omitempty"`
	DataValues [][]float64            `json:"dataValues,omitempty"`
	DataUnit   string                 `json:"dataUnit,omitempty"`
	DataName   string                 `json:"dataName,omitempty"`
	LatGrid    [][]float64            `json:"latGrid,omitempty"`
	LonGrid    [][]float64            `json:"lonGrid,omitempty"`
	Polygons   []Polygon              `json:"polygons"`
	Timestamp  string                 `json:"timestamp,omitempty"`
	IsFallback bool                   `json:"isFallback"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Grids packages the lookup tables for the projector, or nil when the frame
// carries none.
func (m *FrameMetadata) Grids() *geo.Grids {
	if len(m.LatGrid) == 0 || len(m.LonGrid) == 0 {
		return nil
	}
	return &geo.Grids{LatGrid: m.LatGrid, LonGrid: m.LonGrid}
}

// Size converts the frame resolution for the projector, or nil when absent
func (m *FrameMetadata) Size() *geo.ImageSize {
	if m.Resolution == nil {
		return nil
	}
	return &geo.ImageSize{Width: m.Resolution.Width, Height: m.Resolution.Height}
}

// rawBounds accepts both field naming conventions seen in upstream files
type rawBounds struct {
	MinLat      *float64 `json:"minLat"`
	MaxLat      *float64 `json:"maxLat"`
	MinLon      *float64 `json:"minLon"`
	MaxLon      *float64 `json:"maxLon"`
	MinLatSnake *float64 `json:"min_lat"`
	MaxLatSnake *float64 `json:"max_lat"`
	MinLonSnake *float64 `json:"min_lon"`
	MaxLonSnake *float64 `json:"max_lon"`
}

type rawPolygon struct {
	Type        string                 `json:"type"`
	Coordinates [][2]float64           `json:"coordinates"`
	Properties  map[string]interface{} `json:"properties"`
}

type rawFrame struct {
	Bounds          *rawBounds             `json:"bounds"`
	Projection      string                 `json:"projection"`
	Resolution      *Resolution            `json:"resolution"`
	DataValues      json.RawMessage        `json:"dataValues"`
	DataValuesSnake json.RawMessage        `json:"data_values"`
	DataUnit        string                 `json:"dataUnit"`
	DataUnitSnake   string                 `json:"data_unit"`
	DataName        string                 `json:"dataName"`
	DataNameSnake   string                 `json:"data_name"`
	LatGrid         json.RawMessage        `json:"latGrid"`
	LatGridSnake    json.RawMessage        `json:"lat_grid"`
	LonGrid         json.RawMessage        `json:"lonGrid"`
	LonGridSnake    json.RawMessage        `json:"lon_grid"`
	Polygons        []rawPolygon           `json:"polygons"`
	Timestamp       interface{}            `json:"timestamp"`
	Metadata        map[string]interface{} `json:"metadata"`
}

func pick(camel, snake *float64) (float64, bool) {
	if camel != nil {
		return *camel, true
	}
	if snake != nil {
		return *snake, true
	}
	return 0, false
}

func pickString(camel, snake string) string {
	if camel != "" {
		return camel
	}
	return snake
}

// pickGrid decodes whichever variant is present, accepting only a 2-D numeric
// array. Anything else (flat arrays, strings, nulls) is silently dropped so a
// malformed optional field cannot fail the whole frame.
func pickGrid(camel, snake json.RawMessage) [][]float64 {
	raw := camel
	if len(raw) == 0 {
		raw = snake
	}
	if len(raw) == 0 {
		return nil
	}

	var grid [][]float64
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil
	}
	if len(grid) == 0 {
		return nil
	}
	return grid
}

// ParseFrame decodes and normalizes an upstream geodata document. Bounds are
// the only required field; every other field defaults rather than fails.
func ParseFrame(data []byte) (*FrameMetadata, error) {
	var raw rawFrame
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse geodata: %w", err)
	}
	if raw.Bounds == nil {
		return nil, fmt.Errorf("geodata missing bounds")
	}

	minLat, ok1 := pick(raw.Bounds.MinLat, raw.Bounds.MinLatSnake)
	maxLat, ok2 := pick(raw.Bounds.MaxLat, raw.Bounds.MaxLatSnake)
	minLon, ok3 := pick(raw.Bounds.MinLon, raw.Bounds.MinLonSnake)
	maxLon, ok4 := pick(raw.Bounds.MaxLon, raw.Bounds.MaxLonSnake)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, fmt.Errorf("geodata bounds incomplete")
	}

	bounds := geo.Bounds{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("geodata bounds invalid: %w", err)
	}

	frame := &FrameMetadata{
		Bounds:     bounds,
		Projection: normalizeProjection(raw.Projection),
		Resolution: raw.Resolution,
		DataValues: pickGrid(raw.DataValues, raw.DataValuesSnake),
		DataUnit:   pickString(raw.DataUnit, raw.DataUnitSnake),
		DataName:   pickString(raw.DataName, raw.DataNameSnake),
		LatGrid:    pickGrid(raw.LatGrid, raw.LatGridSnake),
		LonGrid:    pickGrid(raw.LonGrid, raw.LonGridSnake),
		Polygons:   normalizePolygons(raw.Polygons),
		Metadata:   raw.Metadata,
	}

	switch ts := raw.Timestamp.(type) {
	case string:
		frame.Timestamp = ts
	case float64:
		frame.Timestamp = fmt.Sprintf("%.0f", ts)
	}

	return frame, nil
}

// normalizeProjection aliases equirectangular to plate_carree and defaults
// anything unrecognized to plate_carree.
func normalizeProjection(p string) string {
	switch p {
	case geo.ProjectionMercator:
		return geo.ProjectionMercator
	case geo.ProjectionGeostationary:
		return geo.ProjectionGeostationary
	case geo.ProjectionPlateCarree, "equirectangular":
		return geo.ProjectionPlateCarree
	default:
		return geo.ProjectionPlateCarree
	}
}

func normalizePolygons(raw []rawPolygon) []Polygon {
	polygons := make([]Polygon, 0, len(raw))
	for _, rp := range raw {
		p := Polygon{
			Type:        rp.Type,
			Coordinates: rp.Coordinates,
			Properties:  rp.Properties,
		}
		if p.Type == "" {
			p.Type = "UNKNOWN"
		}
		if p.Coordinates == nil {
			p.Coordinates = [][2]float64{}
		}
		if p.Properties == nil {
			p.Properties = map[string]interface{}{}
		}
		polygons = append(polygons, p)
	}
	return polygons
}

// FallbackFrame synthesizes degraded-but-valid metadata from a domain's
// configured bounds, used when the real document cannot be fetched.
func FallbackFrame(domain Domain, timestamp string) *FrameMetadata {
	return &FrameMetadata{
		Bounds:     domain.Bounds,
		Projection: geo.ProjectionPlateCarree,
		Polygons:   []Polygon{},
		Timestamp:  timestamp,
		IsFallback: true,
	}
}
