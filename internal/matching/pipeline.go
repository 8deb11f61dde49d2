package matching

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cvtools/cvmatch/internal/candidate"
	"github.com/cvtools/cvmatch/internal/jobs"
	"github.com/cvtools/cvmatch/internal/vectorizer"
)

// AIAssessment carries the optional AI advisor verdict attached to a result
// after the core pipeline has run.
type AIAssessment struct {
	Summary string  `json:"summary,omitempty"`
	Score   float64 `json:"score,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// MatchResult is one scored posting in the final shortlist.
type MatchResult struct {
	Job             *jobs.Posting `json:"job"`
	SimilarityScore float64       `json:"similarity_score"`
	SkillOverlap    []string      `json:"skill_overlap,omitempty"`
	OverlapRatio    float64       `json:"overlap_ratio"`
	Multiplier      float64       `json:"multiplier"`
	WeightedScore   float64       `json:"weighted_score"`
	Note            string        `json:"note,omitempty"`
	AI              *AIAssessment `json:"ai,omitempty"`
}

// Pipeline runs one CV against one job list: normalize, single TF-IDF fit
// over jobs + CV, cosine ranking, skill-overlap detection, experience
// weighting, top-K truncation. A Pipeline carries no state between runs;
// concurrent Match calls are independent.
type Pipeline struct {
	weights WeightTable
	logger  *zap.Logger
}

// NewPipeline builds a pipeline with the given seniority weight table.
func NewPipeline(weights WeightTable, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{weights: weights, logger: logger}
}

// Match produces the top-K match results sorted descending by weighted score,
// ties broken by similarity rank. Returns ErrEmptyCorpus when no postings are
// supplied and ErrInvalidInput for topK < 1 or a missing profile.
func (p *Pipeline) Match(cv *candidate.Profile, list *jobs.Jobs, topK int) ([]*MatchResult, error) {
	if list == nil || list.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: topK must be >= 1, got %d", ErrInvalidInput, topK)
	}
	if cv == nil || strings.TrimSpace(cv.RawText) == "" {
		return nil, fmt.Errorf("%w: candidate profile is empty", ErrInvalidInput)
	}

	// Jobs and CV vectorized in one fit call: every vector shares the same
	// vocabulary axis, so cosine scores are comparable across postings.
	corpus := append(list.Texts(), cv.RawText)
	model, err := vectorizer.Fit(corpus)
	if err != nil {
		return nil, fmt.Errorf("fit vector space: %w", err)
	}

	p.logger.Info("vector space fitted",
		zap.Int("documents", model.Len()),
		zap.Int("vocabulary", len(model.Vocabulary())),
	)

	cvVector := model.Vector(model.Len() - 1)
	if cvVector.IsZero() {
		p.logger.Warn("cv produced a zero-magnitude vector; all similarities forced to 0.0")
	}

	jobVectors := make([]vectorizer.DocumentVector, list.Len())
	for i := range list.Items {
		jobVectors[i] = model.Vector(i)
	}

	ranked := Rank(cvVector, list.Items, jobVectors)

	results := make([]*MatchResult, 0, len(ranked))
	for _, r := range ranked {
		overlap, ratio := Overlap(cv.Skills, r.Job.SkillSet())

		result := &MatchResult{
			Job:             r.Job,
			SimilarityScore: r.Similarity,
			SkillOverlap:    overlap,
			OverlapRatio:    ratio,
			Multiplier:      p.weights.Multiplier(cv.Experience, r.Job.Seniority),
			WeightedScore:   p.weights.Weight(r.Similarity, cv.Experience, r.Job.Seniority),
		}

		if r.Vector.IsZero() || cvVector.IsZero() {
			result.Note = "similarity forced to 0.0: degenerate text produced an empty vector"
			p.logger.Warn("degenerate vector",
				zap.String("job_id", r.Job.ID),
				zap.String("job_title", r.Job.Title),
			)
		}

		results = append(results, result)
	}

	// Results enter the sort in similarity-rank order, so the stable sort
	// breaks weighted-score ties by similarity rank.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].WeightedScore > results[b].WeightedScore
	})

	if topK < len(results) {
		results = results[:topK]
	}

	p.logger.Info("match completed",
		zap.Int("jobs", list.Len()),
		zap.Int("returned", len(results)),
		zap.String("candidate_level", cv.Experience.String()),
	)

	return results, nil
}
