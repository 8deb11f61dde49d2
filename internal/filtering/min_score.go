package filtering

import (
	"context"
	"fmt"

	"github.com/cvtools/cvmatch/internal/matching"
)

type minScoreFilter struct {
	disabled  bool
	reason    string
	threshold float64
}

// NewMinScore creates a step that drops matches whose weighted score is below
// the threshold.
func NewMinScore(threshold float64) (Filter, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("min score must be within [0, 1], got %v", threshold)
	}
	return &minScoreFilter{threshold: threshold}, nil
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minScoreFilter) Apply(_ context.Context, results []*matching.MatchResult) ([]*matching.MatchResult, Step, error) {
	initial := len(results)

	kept := make([]*matching.MatchResult, 0, initial)
	for _, result := range results {
		if result.WeightedScore >= f.threshold {
			kept = append(kept, result)
		}
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
