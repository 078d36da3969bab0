// Package heatfield computes spatial density heatmaps from agricultural
// drone drop points.
//
// A drop point is a GPS location where an insect-release capsule was
// deployed. The engine turns a set of drop points into a dense raster of
// coverage intensity by accumulating a radial dispersal kernel (Gaussian,
// Lévy-flight or exponential) around every point, and exposes both the
// renderable raster and a point-query API (local insect density, GPS to
// pixel mapping).
//
// Two engines implement the same computation: a CPU engine that slices the
// grid into row batches across a worker pool, and a GPU engine that
// dispatches one compute invocation per cell through wgpu. The GPU engine
// falls back to the CPU engine on any initialization or execution failure;
// GPU acceleration is strictly optional and never surfaces an error to the
// caller.
//
// Typical use:
//
//	bounds, err := heatfield.ComputeFieldBounds(points, heatfield.DefaultPadding)
//	if err != nil {
//	    return err
//	}
//	dims := heatfield.ComputeCanvasDimensions(bounds.FieldAspectRatio, 800, 600, 2)
//	engine := heatfield.SelectEngine(heatfield.GPUAuto, dims)
//	grid, err := engine.Compute(ctx, points, bounds, dims, heatfield.DefaultParams(), nil)
//	if err != nil {
//	    return err
//	}
//	img := heatfield.RenderImage(grid)
package heatfield
