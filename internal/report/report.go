package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cvtools/cvmatch/internal/jobs"
	"github.com/cvtools/cvmatch/internal/matching"
	"github.com/cvtools/cvmatch/internal/quality"
)

// Format selects the output rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates an --output flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// WriteMatches renders the match shortlist.
func WriteMatches(w io.Writer, results []*matching.MatchResult, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, results)
	}

	fmt.Fprintf(w, "Top %d matches:\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%d. [%s] %q — score %.3f (similarity %.3f × %.1f)\n",
			i+1, r.Job.ID, r.Job.Title, r.WeightedScore, r.SimilarityScore, r.Multiplier)
		if len(r.SkillOverlap) > 0 {
			fmt.Fprintf(w, "   skills: %s (%.0f%% of required)\n",
				strings.Join(r.SkillOverlap, ", "), r.OverlapRatio*100)
		}
		if r.Note != "" {
			fmt.Fprintf(w, "   note: %s\n", r.Note)
		}
		if r.AI != nil {
			if r.AI.Error != "" {
				fmt.Fprintf(w, "   ai: evaluation failed: %s\n", r.AI.Error)
			} else {
				fmt.Fprintf(w, "   ai: %.2f %s\n", r.AI.Score, r.AI.Summary)
			}
		}
	}
	return nil
}

// WriteQuality renders the quality report.
func WriteQuality(w io.Writer, rep *quality.Report, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, rep)
	}

	fmt.Fprintf(w, "Overall CV quality: %.1f/100\n\n", rep.Overall*100)
	for _, c := range rep.Components {
		fmt.Fprintf(w, "%-13s %5.1f/100\n", c.Name+":", c.Score*100)
		for _, ev := range c.Evidence {
			fmt.Fprintf(w, "  - %s\n", ev)
		}
		if c.Error != "" {
			fmt.Fprintf(w, "  - failed: %s\n", c.Error)
		}
	}
	return nil
}

// WriteSkillReport renders the most frequently required skills across the job
// list and whether the candidate covers them.
func WriteSkillReport(w io.Writer, top []jobs.SkillFrequency, detected map[string]struct{}) error {
	fmt.Fprintf(w, "Most requested skills:\n")
	for _, entry := range top {
		mark := " "
		if _, ok := detected[entry.Skill]; ok {
			mark = "✓"
		}
		fmt.Fprintf(w, "  [%s] %-20s required by %d posting(s)\n", mark, entry.Skill, entry.Count)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
