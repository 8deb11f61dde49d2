package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cvtools/cvmatch/internal/jobs"
	"github.com/cvtools/cvmatch/internal/matching"
	"github.com/cvtools/cvmatch/internal/quality"
)

func sampleResults() []*matching.MatchResult {
	return []*matching.MatchResult{
		{
			Job:             &jobs.Posting{ID: "1", Title: "Data Analyst"},
			SimilarityScore: 0.8,
			SkillOverlap:    []string{"python", "sql"},
			OverlapRatio:    1.0,
			Multiplier:      1.0,
			WeightedScore:   0.8,
		},
		{
			Job:             &jobs.Posting{ID: "2", Title: "ML Engineer"},
			SimilarityScore: 0.4,
			Multiplier:      0.7,
			WeightedScore:   0.28,
			Note:            "similarity forced to 0.0: degenerate text produced an empty vector",
		},
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Fatalf("expected text default, got %v %v", f, err)
	}
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Fatalf("expected json, got %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWriteMatchesText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMatches(&buf, sampleResults(), FormatText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Data Analyst", "0.800", "python, sql", "note:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteMatchesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMatches(&buf, sampleResults(), FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[0]["weighted_score"].(float64) != 0.8 {
		t.Fatalf("unexpected weighted score: %v", decoded[0]["weighted_score"])
	}
}

func TestWriteQualityText(t *testing.T) {
	rep := &quality.Report{
		Overall: 0.83,
		Components: []quality.Result{
			{Name: "structure", Score: 1.0, Evidence: []string{"present sections (4/4): email, education, experience, skills"}},
			{Name: "language", Score: 0.9},
			{Name: "presentation", Score: 0.4, Error: "pdf metadata unavailable"},
		},
	}

	var buf bytes.Buffer
	if err := WriteQuality(&buf, rep, FormatText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"83.0/100", "structure:", "failed: pdf metadata unavailable"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteSkillReport(t *testing.T) {
	var buf bytes.Buffer
	top := []jobs.SkillFrequency{{Skill: "python", Count: 3}, {Skill: "sql", Count: 2}}
	detected := map[string]struct{}{"python": {}}

	if err := WriteSkillReport(&buf, top, detected); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[✓] python") {
		t.Fatalf("expected python to be marked detected:\n%s", out)
	}
	if !strings.Contains(out, "[ ] sql") {
		t.Fatalf("expected sql to be unmarked:\n%s", out)
	}
}
