package heatfield

import "github.com/golang/geo/s2"

// EarthRadiusMeters is the mean Earth radius used for all great-circle
// distance conversions. The GPU shader hard-codes the same constant, so the
// two engines agree on meter distances up to float32 rounding.
const EarthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance in meters between two
// GPS coordinates. Both density engines measure drop-point distances this
// way rather than with flat pixel distance, so grids stay correct at high
// latitudes and across longitude bands.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}
