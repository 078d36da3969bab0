//go:build nogpu

package heatfield

import (
	"context"
	"errors"
)

// GPUEngine in a nogpu build is a thin shell over the CPU engine, so
// engine selection code compiles and behaves identically on hosts built
// without the GPU backend.
type GPUEngine struct {
	fallback CPUEngine
}

// NewGPUEngine returns a CPU-backed stand-in for the GPU engine.
func NewGPUEngine() *GPUEngine { return &GPUEngine{} }

// SetDeviceProvider always fails in a nogpu build.
func (e *GPUEngine) SetDeviceProvider(any) error {
	return errors.New("heatfield: built without GPU support")
}

// Close is a no-op in a nogpu build.
func (e *GPUEngine) Close() {}

// Compute delegates directly to the CPU engine.
func (e *GPUEngine) Compute(ctx context.Context, points []Point, bounds FieldBounds, dims CanvasDimensions, params Params, progress ProgressFunc) (*DensityMap, error) {
	return e.fallback.Compute(ctx, points, bounds, dims, params, progress)
}
