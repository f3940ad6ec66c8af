package geo

import "math"

// mercY computes the Mercator projected latitude ln(tan(pi/4 + lat/2))
func mercY(latDeg float64) float64 {
	return math.Log(math.Tan(math.Pi/4 + latDeg*math.Pi/360))
}

// Forward maps a geographic coordinate to an image pixel.
//
// Returns nil when bounds or size is missing, or when the projection needs
// lookup grids that were not supplied. Resulting pixel coordinates are NOT
// clamped and may lie outside [0,width)x[0,height); callers must bounds-check
// before indexing image data.
func Forward(lat, lon float64, bounds *Bounds, size *ImageSize, projection string, grids *Grids) *Pixel {
	if bounds == nil || size == nil {
		return nil
	}

	switch projection {
	case ProjectionMercator:
		x := (lon - bounds.MinLon) / (bounds.MaxLon - bounds.MinLon) * float64(size.Width)
		yTop := mercY(bounds.MaxLat)
		yBottom := mercY(bounds.MinLat)
		y := (yTop - mercY(lat)) / (yTop - yBottom) * float64(size.Height)
		return &Pixel{X: x, Y: y}

	case ProjectionGeostationary:
		return nearestGridPixel(lat, lon, grids)

	default:
		// plate_carree: linear on both axes, y inverted since pixel rows grow down
		x := (lon - bounds.MinLon) / (bounds.MaxLon - bounds.MinLon) * float64(size.Width)
		y := (bounds.MaxLat - lat) / (bounds.MaxLat - bounds.MinLat) * float64(size.Height)
		return &Pixel{X: x, Y: y}
	}
}

// nearestGridPixel scans the lookup grids for the cell with the smallest
// squared angular distance to the target coordinate. Ties resolve to the
// first occurrence in row-major scan order. Brute force is acceptable for the
// reduced grids shipped with frame metadata.
func nearestGridPixel(lat, lon float64, grids *Grids) *Pixel {
	if grids == nil || len(grids.LatGrid) == 0 || len(grids.LonGrid) == 0 {
		return nil
	}

	bestRow, bestCol := -1, -1
	bestDist := math.Inf(1)

	for row := range grids.LatGrid {
		if row >= len(grids.LonGrid) {
			break
		}
		latRow := grids.LatGrid[row]
		lonRow := grids.LonGrid[row]
		cols := len(latRow)
		if len(lonRow) < cols {
			cols = len(lonRow)
		}
		for col := 0; col < cols; col++ {
			dLat := latRow[col] - lat
			dLon := lonRow[col] - lon
			dist := dLat*dLat + dLon*dLon
			if dist < bestDist {
				bestDist = dist
				bestRow = row
				bestCol = col
			}
		}
	}

	if bestRow < 0 {
		return nil
	}
	return &Pixel{X: float64(bestCol), Y: float64(bestRow)}
}

// Inverse maps an image pixel back to a geographic coordinate.
//
// Plate carree and mercator use the algebraic inverse of Forward. For
// geostationary frames the pixel is rounded to the nearest grid indices and
// looked up directly; out-of-range indices return nil.
func Inverse(x, y float64, bounds *Bounds, size *ImageSize, projection string, grids *Grids) *Point {
	if bounds == nil || size == nil {
		return nil
	}

	switch projection {
	case ProjectionMercator:
		lon := bounds.MinLon + x/float64(size.Width)*(bounds.MaxLon-bounds.MinLon)
		yTop := mercY(bounds.MaxLat)
		yBottom := mercY(bounds.MinLat)
		my := yTop - y/float64(size.Height)*(yTop-yBottom)
		lat := (2*math.Atan(math.Exp(my)) - math.Pi/2) * 180 / math.Pi
		return &Point{Lat: lat, Lon: lon}

	case ProjectionGeostationary:
		if grids == nil {
			return nil
		}
		row := int(math.Round(y))
		col := int(math.Round(x))
		if row < 0 || row >= len(grids.LatGrid) || row >= len(grids.LonGrid) {
			return nil
		}
		if col < 0 || col >= len(grids.LatGrid[row]) || col >= len(grids.LonGrid[row]) {
			return nil
		}
		return &Point{Lat: grids.LatGrid[row][col], Lon: grids.LonGrid[row][col]}

	default:
		lon := bounds.MinLon + x/float64(size.Width)*(bounds.MaxLon-bounds.MinLon)
		lat := bounds.MaxLat - y/float64(size.Height)*(bounds.MaxLat-bounds.MinLat)
		return &Point{Lat: lat, Lon: lon}
	}
}

// CoordinatesToPixels maps an ordered list of [lat, lon] pairs through
// Forward. Order is preserved and unmappable coordinates stay nil so callers
// can keep polygon vertices aligned.
func CoordinatesToPixels(coords [][2]float64, bounds *Bounds, size *ImageSize, projection string, grids *Grids) []*Pixel {
	pixels := make([]*Pixel, len(coords))
	for i, c := range coords {
		pixels[i] = Forward(c[0], c[1], bounds, size, projection, grids)
	}
	return pixels
}

// DataAtPixel samples a row-major data grid at an image pixel position. The
// grid is usually coarser than the image, so the pixel is scaled into grid
// indices first. Returns nil for an empty grid, missing size, or a pixel that
// falls outside the image.
func DataAtPixel(grid [][]float64, x, y float64, size *ImageSize) *float64 {
	if size == nil || size.Width <= 0 || size.Height <= 0 {
		return nil
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil
	}

	rows := len(grid)
	cols := len(grid[0])
	row := int(y / float64(size.Height) * float64(rows))
	col := int(x / float64(size.Width) * float64(cols))
	if row < 0 || row >= rows || col < 0 || col >= len(grid[row]) {
		return nil
	}

	v := grid[row][col]
	return &v
}
