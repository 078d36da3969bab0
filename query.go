package heatfield

import "math"

// LocalAreaDensity averages the raw density over a circular sample region
// centered at pixel (x, y), scales by insectsPerDrop and divides by the
// sample area, yielding insects per square meter. The region's radius is
// derived from sampleAreaSqMeters (area = pi * r²) and clipped to the
// grid; a region entirely out of bounds yields 0.
func LocalAreaDensity(x, y int, m *DensityMap, insectsPerDrop, sampleAreaSqMeters float64) float64 {
	if sampleAreaSqMeters <= 0 || m.PixelsPerMeter <= 0 {
		return 0
	}
	radiusMeters := math.Sqrt(sampleAreaSqMeters / math.Pi)
	radiusPx := radiusMeters * m.PixelsPerMeter

	minX := int(math.Floor(float64(x) - radiusPx))
	maxX := int(math.Ceil(float64(x) + radiusPx))
	minY := int(math.Floor(float64(y) - radiusPx))
	maxY := int(math.Ceil(float64(y) + radiusPx))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > m.Width-1 {
		maxX = m.Width - 1
	}
	if maxY > m.Height-1 {
		maxY = m.Height - 1
	}

	rSq := radiusPx * radiusPx
	sum := 0.0
	count := 0
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			dx := float64(cx - x)
			dy := float64(cy - y)
			if dx*dx+dy*dy > rSq {
				continue
			}
			sum += m.Data[cy*m.Width+cx]
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return (sum / float64(count)) * insectsPerDrop / sampleAreaSqMeters
}

// PointQuery is the answer to a hover/tooltip lookup at a pixel.
type PointQuery struct {
	// Density is the raw accumulated kernel weight at the cell.
	Density float64

	// InsectsPerSqMeter is the local-area density over a 1 m² sample.
	InsectsPerSqMeter float64

	// Latitude and Longitude are the cell's GPS coordinates.
	Latitude  float64
	Longitude float64
}

// QueryPoint answers a pixel-coordinate lookup against a density map.
// Out-of-bounds pixels report zero density; the GPS position is the
// plain GridToGPS extrapolation of the requested pixel.
func QueryPoint(x, y int, m *DensityMap) PointQuery {
	lat, lng := GridToGPS(float64(x), float64(y), m.Bounds, m.Dims)
	return PointQuery{
		Density:           m.At(x, y),
		InsectsPerSqMeter: LocalAreaDensity(x, y, m, m.Params.InsectsPerDrop, 1.0),
		Latitude:          lat,
		Longitude:         lng,
	}
}
