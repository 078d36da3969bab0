package heatfield

// Point is a GPS drop-point location in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Pt is a convenience function to create a Point.
func Pt(lat, lng float64) Point {
	return Point{Latitude: lat, Longitude: lng}
}

// Valid reports whether the point carries a usable coordinate.
// Exact 0/0 marks an unset coordinate in flight logs and is rejected,
// as are values outside the open latitude/longitude ranges.
func (p Point) Valid() bool {
	if p.Latitude == 0 && p.Longitude == 0 {
		return false
	}
	if p.Latitude <= -90 || p.Latitude >= 90 {
		return false
	}
	if p.Longitude <= -180 || p.Longitude >= 180 {
		return false
	}
	return true
}

// FilterValid returns the subset of points with usable coordinates,
// preserving input order. The input slice is never modified.
func FilterValid(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}
