//go:build !nogpu

package heatfield

import (
	"context"

	gpuinternal "github.com/agrodrone/heatfield/internal/gpu"
)

// GPUEngine computes density grids on a wgpu compute backend. Any
// initialization or execution failure is recovered by recomputing on the
// CPU engine with identical arguments; GPU problems are logged, never
// returned. The result is numerically close to the CPU engine's (the GPU
// accumulates in f32), not bit-identical.
type GPUEngine struct {
	inner    *gpuinternal.Engine
	fallback CPUEngine
}

// NewGPUEngine returns a GPU engine. No GPU resources are touched until
// the first computation (or SetDeviceProvider).
func NewGPUEngine() *GPUEngine {
	return &GPUEngine{inner: gpuinternal.NewEngine()}
}

// SetDeviceProvider hands the engine a pre-acquired GPU device from the
// host (the optional part of the capability signal). The provider must
// expose HalDevice() any and HalQueue() any.
func (e *GPUEngine) SetDeviceProvider(provider any) error {
	return e.inner.SetDeviceProvider(provider)
}

// Close releases GPU resources. The engine can be reused afterwards; the
// next computation re-initializes.
func (e *GPUEngine) Close() {
	e.inner.Close()
}

// Compute implements Engine on the GPU with transparent CPU fallback.
func (e *GPUEngine) Compute(ctx context.Context, points []Point, bounds FieldBounds, dims CanvasDimensions, params Params, progress ProgressFunc) (*DensityMap, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := checkGridSize(dims); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	valid := FilterValid(points)
	if len(valid) == 0 || dims.CanvasWidth == 0 || dims.CanvasHeight == 0 {
		return newDensityMap(bounds, dims, params), nil
	}

	lats := make([]float64, len(valid))
	lngs := make([]float64, len(valid))
	for i, p := range valid {
		lats[i] = p.Latitude
		lngs[i] = p.Longitude
	}
	pointData := gpuinternal.PackPoints(lats, lngs, bounds.BoundedMinLat, bounds.BoundedMinLng)

	cfg := gpuinternal.Config{
		Width:       uint32(dims.CanvasWidth),
		Height:      uint32(dims.CanvasHeight),
		NumPoints:   uint32(len(valid)),
		Method:      methodCode(params.Method),
		OriginLat:   float32(bounds.BoundedMinLat),
		LatRange:    float32(bounds.BoundedLatRange),
		LngRange:    float32(bounds.BoundedLngRange),
		Sigma:       float32(params.Sigma),
		MaxDistance: float32(params.MaxDistance),
		LevyAlpha:   float32(params.LevyAlpha),
		ExpLambda:   float32(params.ExponentialLambda),
	}

	totalRows := dims.CanvasHeight
	if progress != nil {
		progress(0, totalRows)
	}

	grid, err := e.inner.ComputeGrid(ctx, pointData, cfg)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// Silent capability downgrade: the caller gets a CPU-computed
		// grid instead of an error. Logged for observability.
		Logger().Warn("heatfield: GPU compute failed, falling back to CPU", "error", err)
		return e.fallback.Compute(ctx, points, bounds, dims, params, progress)
	}

	m := newDensityMap(bounds, dims, params)
	for i, v := range grid {
		f := float64(v)
		m.Data[i] = f
		if f > m.MaxDensity {
			m.MaxDensity = f
		}
	}
	if progress != nil {
		progress(totalRows, totalRows)
	}
	return m, nil
}

func methodCode(m DistributionMethod) uint32 {
	switch m {
	case LevyFlight:
		return gpuinternal.MethodLevyFlight
	case Exponential:
		return gpuinternal.MethodExponential
	default:
		return gpuinternal.MethodGaussian
	}
}
