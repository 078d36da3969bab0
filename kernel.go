package heatfield

import "math"

// kernelWeight maps a distance in meters to a dispersal weight in [0, 1]
// according to the configured kernel. Weights are exactly zero beyond
// MaxDistance; the cutoff is a hard boundary, not an asymptotic approach.
//
// All kernels are pure and deterministic. The GPU shader evaluates the
// same formulas in f32.
func kernelWeight(distance float64, p Params) float64 {
	if distance > p.MaxDistance {
		return 0
	}
	switch p.Method {
	case LevyFlight:
		return levyFlightWeight(distance, p.Sigma, p.LevyAlpha)
	case Exponential:
		return math.Exp(-p.ExponentialLambda * distance)
	default:
		return gaussianWeight(distance, p.Sigma)
	}
}

// gaussianWeight is exp(-d² / 2σ²): 1 at the drop point, monotonically
// decreasing with distance.
func gaussianWeight(d, sigma float64) float64 {
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// levyFlightWeight is (1 + (d/σ)²)^(-α/2). The d == 0 case is defined
// explicitly so the origin never evaluates 0^0.
func levyFlightWeight(d, sigma, alpha float64) float64 {
	if d == 0 {
		return 1
	}
	r := d / sigma
	return math.Pow(1+r*r, -alpha/2)
}
