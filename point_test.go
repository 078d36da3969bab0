package heatfield

import "testing"

func TestPointValid(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"normal coordinate", Pt(45.0, 7.0), true},
		{"unset marker", Pt(0, 0), false},
		{"zero latitude only", Pt(0, 7.0), true},
		{"zero longitude only", Pt(45.0, 0), true},
		{"latitude too high", Pt(90.5, 7.0), false},
		{"latitude too low", Pt(-90.5, 7.0), false},
		{"longitude too high", Pt(45.0, 180.5), false},
		{"longitude too low", Pt(45.0, -180.5), false},
		{"southern hemisphere", Pt(-33.9, 151.2), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.point.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterValid(t *testing.T) {
	points := []Point{
		Pt(45, 7),
		Pt(0, 0),
		Pt(91, 7),
		Pt(-45, -7),
	}
	got := FilterValid(points)
	if len(got) != 2 {
		t.Fatalf("FilterValid kept %d points, want 2", len(got))
	}
	if got[0] != points[0] || got[1] != points[3] {
		t.Errorf("FilterValid = %v, order not preserved", got)
	}
}
