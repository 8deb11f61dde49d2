package filtering

import (
	"context"
	"fmt"

	"github.com/cvtools/cvmatch/internal/matching"
)

type aiFitFilter struct {
	disabled bool
	reason   string
	minimum  float64
}

// NewAIFit creates a step that drops matches whose AI fit score is below the
// minimum. Matches without an AI verdict (including failed assessments) are
// kept; the provider is advisory, not authoritative.
func NewAIFit(minimumFitScore float64) (Filter, error) {
	if minimumFitScore < 0 || minimumFitScore > 1 {
		return nil, fmt.Errorf("minimum fit score must be within [0, 1], got %v", minimumFitScore)
	}
	return &aiFitFilter{minimum: minimumFitScore}, nil
}

func (f *aiFitFilter) Name() string { return "ai_fit" }

func (f *aiFitFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *aiFitFilter) IsEnabled() bool { return !f.disabled }

func (f *aiFitFilter) Apply(_ context.Context, results []*matching.MatchResult) ([]*matching.MatchResult, Step, error) {
	initial := len(results)

	kept := make([]*matching.MatchResult, 0, initial)
	for _, result := range results {
		if result.AI != nil && result.AI.Error == "" && result.AI.Score < f.minimum {
			continue
		}
		kept = append(kept, result)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
