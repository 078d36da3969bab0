package heatfield

import "fmt"

// DistributionMethod selects the radial dispersal kernel used to spread a
// drop point's contribution over the grid.
type DistributionMethod int

const (
	// Gaussian is exp(-d² / 2σ²), the default dispersal model.
	Gaussian DistributionMethod = iota

	// LevyFlight is (1 + (d/σ)²)^(-α/2), a stable-tail approximation with
	// a heavier tail than Gaussian for α < 2. Not a normalized Lévy
	// density; the GPU shader implements this exact formula.
	LevyFlight

	// Exponential is exp(-λd).
	Exponential
)

// String returns the wire/config name of the method.
func (m DistributionMethod) String() string {
	switch m {
	case Gaussian:
		return "gaussian"
	case LevyFlight:
		return "levy-flight"
	case Exponential:
		return "exponential"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseDistributionMethod parses the config name of a kernel.
func ParseDistributionMethod(s string) (DistributionMethod, error) {
	switch s {
	case "gaussian":
		return Gaussian, nil
	case "levy-flight":
		return LevyFlight, nil
	case "exponential":
		return Exponential, nil
	default:
		return 0, fmt.Errorf("heatfield: unknown distribution method %q", s)
	}
}

// Params configures a density computation.
type Params struct {
	// Sigma is the kernel scale in meters.
	Sigma float64

	// MaxDistance is the hard cutoff in meters. Cells farther than this
	// from a drop point receive exactly zero contribution from it.
	MaxDistance float64

	// InsectsPerDrop scales density queries to insect counts. It does not
	// affect the raw grid.
	InsectsPerDrop float64

	// ResolutionMultiplier scales display dimensions up to compute
	// resolution.
	ResolutionMultiplier int

	// Method selects the dispersal kernel.
	Method DistributionMethod

	// LevyAlpha is the stability exponent, used only for LevyFlight.
	// Valid range [1, 2].
	LevyAlpha float64

	// ExponentialLambda is the decay rate, used only for Exponential.
	ExponentialLambda float64
}

// DefaultParams returns the parameter set the dashboard starts from.
func DefaultParams() Params {
	return Params{
		Sigma:                8,
		MaxDistance:          30,
		InsectsPerDrop:       1000,
		ResolutionMultiplier: 2,
		Method:               Gaussian,
		LevyAlpha:            1.5,
		ExponentialLambda:    0.1,
	}
}

// Validate rejects invalid configuration before any computation starts.
// An invalid Params is a caller contract violation, not a runtime
// recoverable condition.
func (p Params) Validate() error {
	if p.Sigma <= 0 {
		return fmt.Errorf("heatfield: sigma must be positive, got %v", p.Sigma)
	}
	if p.MaxDistance <= 0 {
		return fmt.Errorf("heatfield: maxDistance must be positive, got %v", p.MaxDistance)
	}
	if p.ResolutionMultiplier < 1 {
		return fmt.Errorf("heatfield: resolutionMultiplier must be at least 1, got %d", p.ResolutionMultiplier)
	}
	switch p.Method {
	case Gaussian:
	case LevyFlight:
		if p.LevyAlpha < 1 || p.LevyAlpha > 2 {
			return fmt.Errorf("heatfield: levyAlpha must be in [1, 2], got %v", p.LevyAlpha)
		}
	case Exponential:
		if p.ExponentialLambda <= 0 {
			return fmt.Errorf("heatfield: exponentialLambda must be positive, got %v", p.ExponentialLambda)
		}
	default:
		return fmt.Errorf("heatfield: unknown distribution method %d", int(p.Method))
	}
	return nil
}
