package matching

import "github.com/cvtools/cvmatch/internal/jobs"

// WeightTable holds the seniority-compatibility multipliers applied to
// similarity scores. The defaults penalize underqualification harder than
// overqualification; all values are configuration-overridable.
type WeightTable struct {
	Exact    float64 `mapstructure:"exact"`
	OneBelow float64 `mapstructure:"one-below"`
	OneAbove float64 `mapstructure:"one-above"`
	FarApart float64 `mapstructure:"far-apart"`
}

// DefaultWeightTable returns the built-in seniority multipliers.
func DefaultWeightTable() WeightTable {
	return WeightTable{
		Exact:    1.0,
		OneBelow: 0.7,
		OneAbove: 0.9,
		FarApart: 0.4,
	}
}

// Multiplier returns the seniority-compatibility factor for a candidate level
// against a job's seniority tag. When either side is unspecified no penalty
// applies.
func (w WeightTable) Multiplier(candidate, job jobs.Seniority) float64 {
	cl, jl := candidate.Level(), job.Level()
	if cl < 0 || jl < 0 {
		return w.Exact
	}

	switch diff := cl - jl; {
	case diff == 0:
		return w.Exact
	case diff == -1:
		return w.OneBelow
	case diff == 1:
		return w.OneAbove
	default:
		return w.FarApart
	}
}

// Weight applies the multiplier to a similarity score and clamps the result
// to [0,1].
func (w WeightTable) Weight(similarity float64, candidate, job jobs.Seniority) float64 {
	weighted := similarity * w.Multiplier(candidate, job)
	if weighted < 0 {
		return 0
	}
	if weighted > 1 {
		return 1
	}
	return weighted
}
