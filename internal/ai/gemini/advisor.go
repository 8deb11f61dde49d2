package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cvtools/cvmatch/internal/ai"
	"github.com/cvtools/cvmatch/internal/jobs"
)

//go:embed prompt.md
var promptTemplate string

// Advisor asks Gemini to judge a CV against a single posting.
type Advisor struct {
	generator textGenerator
	logger    *zap.Logger
}

type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

func NewAdvisor(generator *Generator, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{generator: generator, logger: logger}
}

func (a *Advisor) Advise(ctx context.Context, cvText string, job *jobs.Posting, overlap []string) (*ai.Advice, error) {
	if job == nil {
		return nil, fmt.Errorf("gemini: posting is nil")
	}

	jobJSON, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal posting: %w", err)
	}

	overlapNote := "none detected"
	if len(overlap) > 0 {
		overlapNote = strings.Join(overlap, ", ")
	}

	prompt := strings.NewReplacer(
		"{{CV_TEXT}}", cvText,
		"{{JOB_JSON}}", string(jobJSON),
		"{{OVERLAP}}", overlapNote,
	).Replace(promptTemplate)

	raw, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	advice, err := parseAdvice(raw)
	if err != nil {
		a.logger.Warn("unparseable advisor response", zap.String("job_id", job.ID), zap.Error(err))
		return nil, err
	}

	return advice, nil
}

func parseAdvice(raw string) (*ai.Advice, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}

	score, err := coerceFloat(fields["score"])
	if err != nil {
		return nil, fmt.Errorf("gemini: invalid score: %w", err)
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return &ai.Advice{
		Score:   score,
		Summary: coerceString(fields["summary"]),
		Raw:     raw,
	}, nil
}

// extractJSON pulls the first JSON object out of a response that may be
// wrapped in markdown fences or surrounding prose.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("gemini: no JSON object in response")
	}
	return raw[start : end+1], nil
}

func coerceFloat(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(val), 64)
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func coerceString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
