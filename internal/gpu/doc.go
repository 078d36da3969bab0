// Package gpu implements the wgpu compute backend for density grids.
//
// One compute shader evaluates the full grid: each invocation owns one
// cell, loops over the drop-point buffer, and accumulates kernel weights
// using the same haversine distance and kernel formulas as the CPU engine,
// in f32. The dispatch covers the canvas in 16x16 tiles.
//
// Every computation owns exactly four buffers - points, params, output,
// staging - and releases all of them on every exit path, including errors.
// Callers treat any error from this package as a signal to fall back to
// the CPU engine.
package gpu
