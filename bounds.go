package heatfield

import "errors"

// DefaultPadding is the default fraction by which the tight drop-point
// bounding box is expanded on every side.
const DefaultPadding = 0.1

// ErrNoValidPoints is returned when a point set contains no usable
// coordinates after filtering.
var ErrNoValidPoints = errors.New("heatfield: no valid drop points")

// FieldBounds describes the geographic extent of a drop-point set: the
// tight bounding box over all valid points and the same box expanded by a
// padding fraction. The padded ("bounded") box is the raster's geographic
// extent; every GPS-to-grid conversion uses it.
type FieldBounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64

	BoundedMinLat, BoundedMaxLat float64
	BoundedMinLng, BoundedMaxLng float64

	BoundedLatRange float64
	BoundedLngRange float64

	// FieldAspectRatio is BoundedLngRange / BoundedLatRange, or 1.0 by
	// convention when the field has zero extent (all points coincide).
	FieldAspectRatio float64
}

// ComputeFieldBounds derives FieldBounds from a point set. Invalid points
// (unset 0/0 coordinates, out-of-range values) are filtered first; if none
// remain, ErrNoValidPoints is returned. padding is the expansion fraction
// per side; pass DefaultPadding unless the caller configures it.
func ComputeFieldBounds(points []Point, padding float64) (FieldBounds, error) {
	valid := FilterValid(points)
	if len(valid) == 0 {
		return FieldBounds{}, ErrNoValidPoints
	}
	if padding < 0 {
		padding = 0
	}

	b := FieldBounds{
		MinLat: valid[0].Latitude, MaxLat: valid[0].Latitude,
		MinLng: valid[0].Longitude, MaxLng: valid[0].Longitude,
	}
	for _, p := range valid[1:] {
		if p.Latitude < b.MinLat {
			b.MinLat = p.Latitude
		}
		if p.Latitude > b.MaxLat {
			b.MaxLat = p.Latitude
		}
		if p.Longitude < b.MinLng {
			b.MinLng = p.Longitude
		}
		if p.Longitude > b.MaxLng {
			b.MaxLng = p.Longitude
		}
	}

	latPad := (b.MaxLat - b.MinLat) * padding
	lngPad := (b.MaxLng - b.MinLng) * padding
	b.BoundedMinLat = b.MinLat - latPad
	b.BoundedMaxLat = b.MaxLat + latPad
	b.BoundedMinLng = b.MinLng - lngPad
	b.BoundedMaxLng = b.MaxLng + lngPad
	b.BoundedLatRange = b.BoundedMaxLat - b.BoundedMinLat
	b.BoundedLngRange = b.BoundedMaxLng - b.BoundedMinLng

	// Zero-extent fields have an undefined ratio; 1.0 keeps downstream
	// canvas fitting well-defined without a divide by zero.
	if b.BoundedLatRange > 0 && b.BoundedLngRange > 0 {
		b.FieldAspectRatio = b.BoundedLngRange / b.BoundedLatRange
	} else {
		b.FieldAspectRatio = 1.0
	}
	return b, nil
}

// FieldWidthMeters returns the padded field's east-west extent in meters,
// measured along the field's mid latitude.
func (b FieldBounds) FieldWidthMeters() float64 {
	midLat := (b.BoundedMinLat + b.BoundedMaxLat) / 2
	return HaversineMeters(midLat, b.BoundedMinLng, midLat, b.BoundedMaxLng)
}

// FieldHeightMeters returns the padded field's north-south extent in meters.
func (b FieldBounds) FieldHeightMeters() float64 {
	return HaversineMeters(b.BoundedMinLat, b.BoundedMinLng, b.BoundedMaxLat, b.BoundedMinLng)
}
