package heatfield

import (
	"math"
	"testing"
)

// uniformMap builds a density map whose every cell holds value v, with a
// known pixels-per-meter scale.
func uniformMap(v float64) *DensityMap {
	m := newDensityMap(testBounds(), testDims(), DefaultParams())
	for i := range m.Data {
		m.Data[i] = v
	}
	m.MaxDensity = v
	return m
}

func TestLocalAreaDensityUniformField(t *testing.T) {
	// Over a uniform field the sample average equals the cell value, so
	// the result is v * insectsPerDrop / sampleArea independent of the
	// sample radius.
	const v = 0.25
	m := uniformMap(v)
	for _, area := range []float64{1, 5, 25} {
		got := LocalAreaDensity(50, 50, m, 1000, area)
		want := v * 1000 / area
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("LocalAreaDensity area=%v = %v, want %v", area, got, want)
		}
	}
}

func TestLocalAreaDensityEmptyRegion(t *testing.T) {
	m := uniformMap(0.5)
	// Far out of bounds: the clipped region is empty.
	if got := LocalAreaDensity(-500, -500, m, 1000, 1); got != 0 {
		t.Errorf("out-of-bounds query = %v, want 0", got)
	}
	if got := LocalAreaDensity(50, 50, m, 1000, 0); got != 0 {
		t.Errorf("zero sample area = %v, want 0", got)
	}
}

func TestLocalAreaDensityScalesWithInsects(t *testing.T) {
	m := uniformMap(0.5)
	a := LocalAreaDensity(50, 50, m, 1000, 1)
	b := LocalAreaDensity(50, 50, m, 2000, 1)
	if math.Abs(b-2*a) > 1e-9 {
		t.Errorf("density %v at 2000 insects/drop, want double of %v", b, a)
	}
}

func TestLocalAreaDensityClipsAtEdge(t *testing.T) {
	// An edge query samples fewer cells but still averages, so a uniform
	// field gives the same answer at the corner as at the center.
	m := uniformMap(0.5)
	center := LocalAreaDensity(50, 50, m, 1000, 25)
	corner := LocalAreaDensity(0, 0, m, 1000, 25)
	if math.Abs(center-corner) > 1e-9 {
		t.Errorf("corner query = %v, center = %v, want equal on uniform field", corner, center)
	}
}

func TestQueryPoint(t *testing.T) {
	m := uniformMap(0.5)
	q := QueryPoint(50, 50, m)
	if q.Density != 0.5 {
		t.Errorf("Density = %v, want 0.5", q.Density)
	}
	// 1 m² sample with the default 1000 insects per drop.
	if math.Abs(q.InsectsPerSqMeter-500) > 1e-6 {
		t.Errorf("InsectsPerSqMeter = %v, want 500", q.InsectsPerSqMeter)
	}

	wantLat, wantLng := GridToGPS(50, 50, m.Bounds, m.Dims)
	if q.Latitude != wantLat || q.Longitude != wantLng {
		t.Errorf("query position = (%v, %v), want (%v, %v)", q.Latitude, q.Longitude, wantLat, wantLng)
	}
}

func TestQueryPointOutOfBounds(t *testing.T) {
	m := uniformMap(0.5)
	q := QueryPoint(-1, -1, m)
	if q.Density != 0 {
		t.Errorf("out-of-bounds Density = %v, want 0", q.Density)
	}
	// The reported position extrapolates past the field edge rather
	// than clamping to it.
	wantLat, wantLng := GridToGPS(-1, -1, m.Bounds, m.Dims)
	if q.Latitude != wantLat || q.Longitude != wantLng {
		t.Errorf("position = (%v, %v), want extrapolated (%v, %v)", q.Latitude, q.Longitude, wantLat, wantLng)
	}
	if q.Latitude <= m.Bounds.BoundedMaxLat || q.Longitude >= m.Bounds.BoundedMinLng {
		t.Errorf("position (%v, %v) not outside the bounded field", q.Latitude, q.Longitude)
	}
}
