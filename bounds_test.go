package heatfield

import (
	"errors"
	"math"
	"testing"
)

func TestComputeFieldBounds(t *testing.T) {
	points := []Point{
		{Latitude: 45.0, Longitude: 7.0},
		{Latitude: 45.002, Longitude: 7.001},
		{Latitude: 45.001, Longitude: 7.003},
	}

	b, err := ComputeFieldBounds(points, 0.1)
	if err != nil {
		t.Fatalf("ComputeFieldBounds: %v", err)
	}

	if b.MinLat != 45.0 || b.MaxLat != 45.002 {
		t.Errorf("tight lat bounds = [%v, %v], want [45.0, 45.002]", b.MinLat, b.MaxLat)
	}
	if b.MinLng != 7.0 || b.MaxLng != 7.003 {
		t.Errorf("tight lng bounds = [%v, %v], want [7.0, 7.003]", b.MinLng, b.MaxLng)
	}

	// Bounded ranges are always at least the tight ranges.
	if b.BoundedMaxLat-b.BoundedMinLat < b.MaxLat-b.MinLat {
		t.Error("bounded lat range smaller than tight range")
	}
	if b.BoundedMaxLng-b.BoundedMinLng < b.MaxLng-b.MinLng {
		t.Error("bounded lng range smaller than tight range")
	}

	// 10% padding per side makes the bounded range 1.2x the tight range.
	wantLatRange := (45.002 - 45.0) * 1.2
	if math.Abs(b.BoundedLatRange-wantLatRange) > 1e-12 {
		t.Errorf("BoundedLatRange = %v, want %v", b.BoundedLatRange, wantLatRange)
	}

	if b.FieldAspectRatio <= 0 {
		t.Errorf("FieldAspectRatio = %v, want > 0", b.FieldAspectRatio)
	}
	wantAspect := b.BoundedLngRange / b.BoundedLatRange
	if math.Abs(b.FieldAspectRatio-wantAspect) > 1e-12 {
		t.Errorf("FieldAspectRatio = %v, want %v", b.FieldAspectRatio, wantAspect)
	}
}

func TestComputeFieldBoundsFiltersInvalid(t *testing.T) {
	points := []Point{
		{Latitude: 0, Longitude: 0}, // unset marker
		{Latitude: 45.0, Longitude: 7.0},
		{Latitude: 91.0, Longitude: 7.0}, // out of range
		{Latitude: 45.5, Longitude: 181}, // out of range
		{Latitude: 45.002, Longitude: 7.002},
	}
	b, err := ComputeFieldBounds(points, 0)
	if err != nil {
		t.Fatalf("ComputeFieldBounds: %v", err)
	}
	// Only the two valid points contribute to the tight bounds.
	if b.MinLat != 45.0 || b.MaxLat != 45.002 || b.MinLng != 7.0 || b.MaxLng != 7.002 {
		t.Errorf("bounds = [%v %v]x[%v %v], invalid points not filtered",
			b.MinLat, b.MaxLat, b.MinLng, b.MaxLng)
	}
}

func TestComputeFieldBoundsNoValidPoints(t *testing.T) {
	cases := [][]Point{
		nil,
		{},
		{{Latitude: 0, Longitude: 0}},
		{{Latitude: 95, Longitude: 10}, {Latitude: 10, Longitude: 200}},
	}
	for _, points := range cases {
		if _, err := ComputeFieldBounds(points, 0.1); !errors.Is(err, ErrNoValidPoints) {
			t.Errorf("ComputeFieldBounds(%v) err = %v, want ErrNoValidPoints", points, err)
		}
	}
}

func TestComputeFieldBoundsCoincidentPoints(t *testing.T) {
	points := []Point{
		{Latitude: 45.0, Longitude: 7.0},
		{Latitude: 45.0, Longitude: 7.0},
	}
	b, err := ComputeFieldBounds(points, 0.1)
	if err != nil {
		t.Fatalf("ComputeFieldBounds: %v", err)
	}
	if b.BoundedLatRange != 0 || b.BoundedLngRange != 0 {
		t.Errorf("zero-extent field has ranges (%v, %v), want (0, 0)", b.BoundedLatRange, b.BoundedLngRange)
	}
	// Undefined ratio resolves to 1.0 by convention, not an error.
	if b.FieldAspectRatio != 1.0 {
		t.Errorf("FieldAspectRatio = %v, want 1.0 for zero-extent field", b.FieldAspectRatio)
	}
}

func TestFieldMeterExtents(t *testing.T) {
	// A field roughly 0.001 degrees tall is about 111 meters north-south.
	b := testBounds()
	h := b.FieldHeightMeters()
	if h < 100 || h > 125 {
		t.Errorf("FieldHeightMeters = %v, want about 111", h)
	}
	w := b.FieldWidthMeters()
	// East-west extent shrinks with cos(latitude); at 45°N about 79 m per 0.001°.
	if w < 70 || w > 90 {
		t.Errorf("FieldWidthMeters = %v, want about 79", w)
	}
}

// testBounds returns a synthetic square-degree field at 45°N used across
// engine tests: 0.001° of latitude and longitude starting at (45, 7).
// Ranges are derived from the endpoints, exactly as ComputeFieldBounds
// produces them, so the fixture carries no rounding inconsistencies.
func testBounds() FieldBounds {
	b := FieldBounds{
		MinLat: 45.0, MaxLat: 45.001,
		MinLng: 7.0, MaxLng: 7.001,
		BoundedMinLat: 45.0, BoundedMaxLat: 45.001,
		BoundedMinLng: 7.0, BoundedMaxLng: 7.001,
		FieldAspectRatio: 1.0,
	}
	b.BoundedLatRange = b.BoundedMaxLat - b.BoundedMinLat
	b.BoundedLngRange = b.BoundedMaxLng - b.BoundedMinLng
	return b
}
