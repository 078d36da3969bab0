package heatfield

import (
	"context"
	"errors"
	"fmt"
)

// Engine computes a density grid from drop points. Both implementations
// (CPU and GPU) honor the same contract: identical kernels, cutoff
// behavior and coordinate convention, with per-cell results equal up to
// floating-point tolerance.
type Engine interface {
	Compute(ctx context.Context, points []Point, bounds FieldBounds, dims CanvasDimensions, params Params, progress ProgressFunc) (*DensityMap, error)
}

// GPUSupport is the host's capability signal for GPU compute.
type GPUSupport int

const (
	// GPUAuto uses the GPU for large grids when a backend is available.
	GPUAuto GPUSupport = iota

	// GPUDisabled forces the CPU engine.
	GPUDisabled

	// GPUForced always tries the GPU first, regardless of grid size.
	// Failures still fall back to the CPU.
	GPUForced
)

// MaxGridCells caps the grid allocation. Larger requests are a fatal
// error; the engine does not attempt partial or streamed computation.
const MaxGridCells = 64 << 20

// ErrGridTooLarge is returned when the requested canvas exceeds
// MaxGridCells.
var ErrGridTooLarge = errors.New("heatfield: density grid too large")

// gpuMinCells is the dispatch-overhead break-even point: grids smaller
// than this compute faster on the CPU than a GPU round trip.
const gpuMinCells = 256 * 256

func checkGridSize(dims CanvasDimensions) error {
	cells := dims.CanvasWidth * dims.CanvasHeight
	if cells > MaxGridCells {
		return fmt.Errorf("%w: %dx%d", ErrGridTooLarge, dims.CanvasWidth, dims.CanvasHeight)
	}
	return nil
}

// SelectEngine picks the engine for a computation from the host's GPU
// capability signal and the grid size. The GPU engine it returns still
// falls back to the CPU on any backend failure, so the choice is a
// performance hint, never a correctness decision.
func SelectEngine(support GPUSupport, dims CanvasDimensions) Engine {
	switch support {
	case GPUDisabled:
		return &CPUEngine{}
	case GPUForced:
		return NewGPUEngine()
	default:
		if dims.CanvasWidth*dims.CanvasHeight >= gpuMinCells {
			return NewGPUEngine()
		}
		return &CPUEngine{}
	}
}

// ComputeHeatmap is the one-call path from drop points to a density map:
// it derives bounds and canvas dimensions, selects an engine and runs the
// computation.
func ComputeHeatmap(ctx context.Context, points []Point, params Params, maxWidth, maxHeight int, support GPUSupport, progress ProgressFunc) (*DensityMap, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	bounds, err := ComputeFieldBounds(points, DefaultPadding)
	if err != nil {
		return nil, err
	}
	dims := ComputeCanvasDimensions(bounds.FieldAspectRatio, maxWidth, maxHeight, params.ResolutionMultiplier)
	engine := SelectEngine(support, dims)
	return engine.Compute(ctx, points, bounds, dims, params, progress)
}
