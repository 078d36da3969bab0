package heatfield

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/agrodrone/heatfield/internal/parallel"
)

// ProgressFunc receives computation progress as (rowsDone, totalRows).
// rowsDone is monotonically non-decreasing across calls and reaches
// totalRows exactly once, on successful completion. Callbacks are
// serialized; implementations must not block for long.
type ProgressFunc func(rowsDone, totalRows int)

// progressBatches is the approximate number of row batches a grid is
// sliced into. One progress report per batch keeps host UIs responsive
// without flooding them.
const progressBatches = 100

// progressReportsPerSecond caps the callback rate for very fast grids.
// The terminal 100% report always goes through.
const progressReportsPerSecond = 30

// CPUEngine is the reference density engine. It accumulates kernel
// contributions cell by cell on a worker pool, slicing the grid into row
// batches so progress can be reported and cancellation observed between
// batches.
//
// CPUEngine is safe for concurrent use; each Compute call owns its output
// grid exclusively.
type CPUEngine struct {
	// Workers overrides the worker count; 0 means GOMAXPROCS.
	Workers int
}

// Compute runs the density computation and returns a freshly allocated
// DensityMap. It honors ctx between row batches: a cancelled computation
// returns ctx.Err() and no grid.
//
// An empty or fully invalid point set is not an error; it yields an
// all-zero grid with MaxDensity == 0.
func (e *CPUEngine) Compute(ctx context.Context, points []Point, bounds FieldBounds, dims CanvasDimensions, params Params, progress ProgressFunc) (*DensityMap, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := checkGridSize(dims); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := newDensityMap(bounds, dims, params)
	valid := FilterValid(points)
	if len(valid) == 0 || m.Width == 0 || m.Height == 0 {
		return m, nil
	}

	// Cell GPS coordinates are separable: latitude depends only on the
	// row, longitude only on the column. Precompute both axes once
	// instead of W*H times.
	rowLat := make([]float64, m.Height)
	colLng := make([]float64, m.Width)
	for y := 0; y < m.Height; y++ {
		lat, _ := GridToGPS(0, float64(y), bounds, dims)
		rowLat[y] = lat
	}
	for x := 0; x < m.Width; x++ {
		_, lng := GridToGPS(float64(x), 0, bounds, dims)
		colLng[x] = lng
	}

	batchRows := (m.Height + progressBatches - 1) / progressBatches
	if batchRows < 1 {
		batchRows = 1
	}

	tracker := newProgressTracker(m.Height, progress)

	var (
		maxMu sync.Mutex
		tasks []func(ctx context.Context)
	)
	for start := 0; start < m.Height; start += batchRows {
		end := start + batchRows
		if end > m.Height {
			end = m.Height
		}
		start, end := start, end
		tasks = append(tasks, func(ctx context.Context) {
			localMax := 0.0
			for y := start; y < end; y++ {
				if ctx.Err() != nil {
					return
				}
				row := m.Data[y*m.Width : (y+1)*m.Width]
				for x := 0; x < m.Width; x++ {
					sum := 0.0
					for _, p := range valid {
						d := HaversineMeters(rowLat[y], colLng[x], p.Latitude, p.Longitude)
						if d > params.MaxDistance {
							continue
						}
						// Contributions are additive across points;
						// no early exit once one point contributes.
						sum += kernelWeight(d, params)
					}
					row[x] = sum
					if sum > localMax {
						localMax = sum
					}
				}
			}
			maxMu.Lock()
			if localMax > m.MaxDensity {
				m.MaxDensity = localMax
			}
			maxMu.Unlock()
			tracker.add(end - start)
		})
	}

	pool := parallel.New(e.Workers)
	defer pool.Close()
	pool.Run(ctx, tasks)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracker.finish()
	return m, nil
}

// progressTracker serializes progress callbacks and throttles them so a
// fast computation cannot flood the caller with reports.
type progressTracker struct {
	mu        sync.Mutex
	fn        ProgressFunc
	limiter   *rate.Limiter
	rowsDone  int
	totalRows int
	reported  bool // whether the terminal report has been delivered
}

func newProgressTracker(totalRows int, fn ProgressFunc) *progressTracker {
	return &progressTracker{
		fn:        fn,
		totalRows: totalRows,
		limiter:   rate.NewLimiter(progressReportsPerSecond, 1),
	}
}

// add records completed rows and reports progress if the rate limiter
// admits it. Intermediate reports may be dropped; the count never goes
// backwards.
func (t *progressTracker) add(rows int) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rowsDone += rows
	if t.fn == nil || t.rowsDone == t.totalRows {
		// The terminal report is delivered by finish.
		return
	}
	if t.limiter.AllowN(time.Now(), 1) {
		t.fn(t.rowsDone, t.totalRows)
	}
}

// finish delivers the terminal 100% report exactly once.
func (t *progressTracker) finish() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fn == nil || t.reported {
		return
	}
	t.reported = true
	t.fn(t.totalRows, t.totalRows)
}
