package quality

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cvtools/cvmatch/internal/extract"
)

// ErrInvalidWeights is returned when the aggregation weights do not sum to 1.
var ErrInvalidWeights = errors.New("quality: weights must sum to 1.0")

const weightsEpsilon = 1e-6

// Scorer is a single quality dimension check. Implementations are stateless;
// each returns a bounded score plus supporting evidence.
type Scorer interface {
	Name() string
	Score(doc *extract.Document) (Result, error)
}

// Result is the outcome of one quality dimension.
type Result struct {
	Name     string   `json:"name"`
	Score    float64  `json:"score"` // in [0,1]
	Evidence []string `json:"evidence,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Weights configures how sub-scores combine into the overall quality score.
type Weights struct {
	Structure    float64 `mapstructure:"structure"`
	Language     float64 `mapstructure:"language"`
	Presentation float64 `mapstructure:"presentation"`
}

// DefaultWeights returns the built-in weighting: structure 0.5, language 0.4,
// presentation 0.1.
func DefaultWeights() Weights {
	return Weights{Structure: 0.5, Language: 0.4, Presentation: 0.1}
}

// Validate checks the weights sum to 1.0 within epsilon.
func (w Weights) Validate() error {
	sum := w.Structure + w.Language + w.Presentation
	if math.Abs(sum-1.0) > weightsEpsilon {
		return fmt.Errorf("%w: got %.3f", ErrInvalidWeights, sum)
	}
	return nil
}

func (w Weights) forName(name string) float64 {
	switch name {
	case "structure":
		return w.Structure
	case "language":
		return w.Language
	case "presentation":
		return w.Presentation
	default:
		return 0
	}
}

// Report is the aggregated quality assessment for one CV.
type Report struct {
	Overall    float64  `json:"overall"` // in [0,1]
	Components []Result `json:"components"`
}

// Aggregator runs the configured sub-scorers sequentially and combines their
// scores with the configured weights.
type Aggregator struct {
	weights Weights
	scorers []Scorer
	logger  *zap.Logger
}

// NewAggregator validates the weights and builds an aggregator over the
// default scorer set.
func NewAggregator(weights Weights, logger *zap.Logger) (*Aggregator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		weights: weights,
		scorers: []Scorer{NewStructureScorer(), NewLanguageScorer(), NewPresentationScorer()},
		logger:  logger,
	}, nil
}

// Score runs every sub-scorer and returns the weighted report. A failing
// sub-scorer contributes zero with the error recorded instead of aborting the
// whole assessment.
func (a *Aggregator) Score(doc *extract.Document) (*Report, error) {
	if doc == nil {
		return nil, errors.New("quality: document is required")
	}

	report := &Report{}
	for _, scorer := range a.scorers {
		result, err := scorer.Score(doc)
		result.Name = scorer.Name()
		if err != nil {
			a.logger.Warn("quality step failed",
				zap.String("name", scorer.Name()),
				zap.Error(err),
			)
			result.Score = 0
			result.Error = err.Error()
		}

		a.logger.Info("quality step",
			zap.String("name", scorer.Name()),
			zap.Float64("score", result.Score),
			zap.Float64("weight", a.weights.forName(scorer.Name())),
		)

		report.Overall += result.Score * a.weights.forName(scorer.Name())
		report.Components = append(report.Components, result)
	}

	if report.Overall > 1 {
		report.Overall = 1
	}
	return report, nil
}
