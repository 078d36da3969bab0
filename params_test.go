package heatfield

import "testing"

func TestParamsValidate(t *testing.T) {
	mutate := func(f func(*Params)) Params {
		p := DefaultParams()
		f(&p)
		return p
	}

	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"defaults", DefaultParams(), false},
		{"zero sigma", mutate(func(p *Params) { p.Sigma = 0 }), true},
		{"negative sigma", mutate(func(p *Params) { p.Sigma = -1 }), true},
		{"zero max distance", mutate(func(p *Params) { p.MaxDistance = 0 }), true},
		{"zero multiplier", mutate(func(p *Params) { p.ResolutionMultiplier = 0 }), true},
		{"levy valid", mutate(func(p *Params) { p.Method = LevyFlight }), false},
		{"levy alpha below range", mutate(func(p *Params) { p.Method = LevyFlight; p.LevyAlpha = 0.9 }), true},
		{"levy alpha above range", mutate(func(p *Params) { p.Method = LevyFlight; p.LevyAlpha = 2.1 }), true},
		{"levy alpha ignored for gaussian", mutate(func(p *Params) { p.LevyAlpha = 5 }), false},
		{"exponential valid", mutate(func(p *Params) { p.Method = Exponential }), false},
		{"exponential zero lambda", mutate(func(p *Params) { p.Method = Exponential; p.ExponentialLambda = 0 }), true},
		{"lambda ignored for gaussian", mutate(func(p *Params) { p.ExponentialLambda = -1 }), false},
		{"unknown method", mutate(func(p *Params) { p.Method = DistributionMethod(42) }), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDistributionMethodNames(t *testing.T) {
	for _, m := range []DistributionMethod{Gaussian, LevyFlight, Exponential} {
		parsed, err := ParseDistributionMethod(m.String())
		if err != nil {
			t.Errorf("ParseDistributionMethod(%q): %v", m.String(), err)
		}
		if parsed != m {
			t.Errorf("ParseDistributionMethod(%q) = %v, want %v", m.String(), parsed, m)
		}
	}
	if _, err := ParseDistributionMethod("cauchy"); err == nil {
		t.Error("ParseDistributionMethod accepted an unknown name")
	}
}
