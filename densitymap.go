package heatfield

// DensityMap is the output of a density computation: a dense row-major
// grid of non-negative accumulated kernel weights covering the bounded
// field, plus the geographic context needed to map grid indices back to
// GPS coordinates.
//
// A DensityMap is created fresh per computation and never mutated after it
// is returned; a new computation with different parameters produces a new
// map for the caller to swap in.
type DensityMap struct {
	// Width and Height match the canvas dimensions the map was computed at.
	Width  int
	Height int

	// Data holds Width*Height cells, row-major, row 0 at the field's
	// north edge.
	Data []float64

	// MaxDensity is the maximum cell value in Data, used for
	// normalization. Zero for an empty grid.
	MaxDensity float64

	Bounds FieldBounds
	Dims   CanvasDimensions
	Params Params

	// Meter conversions derived from Bounds at computation time.
	FieldWidthMeters  float64
	FieldHeightMeters float64
	PixelsPerMeter    float64
}

// newDensityMap allocates a zeroed map with its geographic context filled
// in. Both engines produce their result through this.
func newDensityMap(bounds FieldBounds, dims CanvasDimensions, params Params) *DensityMap {
	m := &DensityMap{
		Width:             dims.CanvasWidth,
		Height:            dims.CanvasHeight,
		Data:              make([]float64, dims.CanvasWidth*dims.CanvasHeight),
		Bounds:            bounds,
		Dims:              dims,
		Params:            params,
		FieldWidthMeters:  bounds.FieldWidthMeters(),
		FieldHeightMeters: bounds.FieldHeightMeters(),
	}
	if m.FieldWidthMeters > 0 {
		m.PixelsPerMeter = float64(dims.CanvasWidth) / m.FieldWidthMeters
	}
	return m
}

// At returns the raw density at a cell, or 0 for out-of-bounds indices.
func (m *DensityMap) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Data[y*m.Width+x]
}

// Normalized returns a copy of the grid scaled into [0, 1] by MaxDensity.
// When MaxDensity is zero the result is all zeros; there is no divide by
// zero.
func (m *DensityMap) Normalized() []float64 {
	out := make([]float64, len(m.Data))
	if m.MaxDensity == 0 {
		return out
	}
	for i, v := range m.Data {
		out[i] = v / m.MaxDensity
	}
	return out
}
