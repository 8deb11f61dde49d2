package ai

import (
	"context"

	"github.com/cvtools/cvmatch/internal/jobs"
)

// Advice is an AI provider's verdict on one CV/posting pair.
type Advice struct {
	Score   float64
	Summary string
	Raw     string
}

// Advisor annotates a match result with a provider-generated fit explanation.
// Purely additive: the deterministic pipeline never depends on it.
type Advisor interface {
	Advise(ctx context.Context, cvText string, job *jobs.Posting, overlap []string) (*Advice, error)
}
