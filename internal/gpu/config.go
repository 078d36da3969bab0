package gpu

import (
	"encoding/binary"
	"math"
)

// Kernel method codes shared with the WGSL shader's switch.
const (
	MethodGaussian    = 0
	MethodLevyFlight  = 1
	MethodExponential = 2
)

// Config is the per-dispatch parameter block uploaded as the uniform
// buffer at binding(0). The layout must match the Params struct in
// density.wgsl: 4 u32 fields followed by 8 f32 fields, 48 bytes total.
//
// Coordinates are split into an f32 absolute origin latitude plus small
// per-point offsets (see PackPoints); passing absolute degrees in f32
// would lose meter-scale precision.
type Config struct {
	// Width and Height are the canvas dimensions in cells.
	Width  uint32
	Height uint32

	// NumPoints is the number of drop points in the point buffer.
	NumPoints uint32

	// Method selects the kernel: MethodGaussian, MethodLevyFlight or
	// MethodExponential.
	Method uint32

	// OriginLat is the bounded field's south edge latitude in degrees.
	// The shader reconstructs absolute latitudes from it for the
	// haversine cosine terms.
	OriginLat float32

	// LatRange and LngRange are the bounded field's extents in degrees.
	LatRange float32
	LngRange float32

	// Kernel parameters, meters-based.
	Sigma       float32
	MaxDistance float32
	LevyAlpha   float32
	ExpLambda   float32
}

// configSize is the byte size of the serialized Config: 11 fields plus
// one pad word, each 4 bytes.
const configSize = 48

// toBytes serializes Config little-endian in shader declaration order.
func (c Config) toBytes() []byte {
	buf := make([]byte, configSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], c.Width)
	le.PutUint32(buf[4:8], c.Height)
	le.PutUint32(buf[8:12], c.NumPoints)
	le.PutUint32(buf[12:16], c.Method)
	le.PutUint32(buf[16:20], math.Float32bits(c.OriginLat))
	le.PutUint32(buf[20:24], math.Float32bits(c.LatRange))
	le.PutUint32(buf[24:28], math.Float32bits(c.LngRange))
	le.PutUint32(buf[28:32], math.Float32bits(c.Sigma))
	le.PutUint32(buf[32:36], math.Float32bits(c.MaxDistance))
	le.PutUint32(buf[36:40], math.Float32bits(c.LevyAlpha))
	le.PutUint32(buf[40:44], math.Float32bits(c.ExpLambda))
	// buf[44:48] is the pad word, zero.
	return buf
}

// PackPoints serializes drop points as (lat, lng) f32 pairs relative to
// the bounded field origin (south-west corner). Offsets within a field
// span fractions of a degree, so the f32 representation keeps
// sub-centimeter precision where absolute degrees could not.
func PackPoints(latitudes, longitudes []float64, originLat, originLng float64) []byte {
	buf := make([]byte, 8*len(latitudes))
	le := binary.LittleEndian
	for i := range latitudes {
		le.PutUint32(buf[i*8:], math.Float32bits(float32(latitudes[i]-originLat)))
		le.PutUint32(buf[i*8+4:], math.Float32bits(float32(longitudes[i]-originLng)))
	}
	return buf
}

// UnpackGrid decodes the readback buffer into a float32 grid of
// width*height cells.
func UnpackGrid(raw []byte, cells int) []float32 {
	out := make([]float32, cells)
	for i := 0; i < cells; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out
}
