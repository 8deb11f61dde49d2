package quality

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/cvtools/cvmatch/internal/extract"
)

const goodCV = `Jane Doe
jane.doe@example.com

EXPERIENCE
- Built data pipelines in Python during 2019 – 2022.
- Led reporting automation with SQL.

EDUCATION
Bachelor of Science, Computer Science.

SKILLS
Python, SQL, pandas.
`

func TestAggregatorWeightsValidation(t *testing.T) {
	_, err := NewAggregator(Weights{Structure: 0.5, Language: 0.3, Presentation: 0.3}, zap.NewNop())
	if !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights, got %v", err)
	}
}

func TestAggregatorDefaultWeightsValid(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights must validate: %v", err)
	}
}

func TestAggregatorScore(t *testing.T) {
	agg, err := NewAggregator(DefaultWeights(), zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := agg.Score(&extract.Document{Text: goodCV, Pages: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Components) != 3 {
		t.Fatalf("expected 3 components, got %d", len(report.Components))
	}
	if report.Overall <= 0 || report.Overall > 1 {
		t.Fatalf("overall score out of bounds: %v", report.Overall)
	}

	names := map[string]bool{}
	for _, c := range report.Components {
		names[c.Name] = true
		if c.Score < 0 || c.Score > 1 {
			t.Fatalf("component %s score out of bounds: %v", c.Name, c.Score)
		}
	}
	for _, want := range []string{"structure", "language", "presentation"} {
		if !names[want] {
			t.Fatalf("missing component %q", want)
		}
	}
}

type failingScorer struct{}

func (f *failingScorer) Name() string { return "language" }

func (f *failingScorer) Score(_ *extract.Document) (Result, error) {
	return Result{}, errors.New("language model unavailable")
}

func TestAggregatorRecordsFailedScorer(t *testing.T) {
	agg := &Aggregator{
		weights: DefaultWeights(),
		scorers: []Scorer{NewStructureScorer(), &failingScorer{}},
		logger:  zap.NewNop(),
	}

	report, err := agg.Score(&extract.Document{Text: goodCV, Pages: 1})
	if err != nil {
		t.Fatalf("a failing sub-scorer must not abort the run: %v", err)
	}

	if len(report.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(report.Components))
	}

	var failed *Result
	for i := range report.Components {
		if report.Components[i].Name == "language" {
			failed = &report.Components[i]
		}
	}
	if failed == nil {
		t.Fatal("missing component for the failed scorer")
	}
	if failed.Score != 0 {
		t.Fatalf("failed scorer must contribute zero, got %v", failed.Score)
	}
	if failed.Error != "language model unavailable" {
		t.Fatalf("expected the scorer error recorded, got %q", failed.Error)
	}

	if report.Overall <= 0 || report.Overall > 1 {
		t.Fatalf("overall score out of bounds: %v", report.Overall)
	}
}

func TestStructureScorerAllSections(t *testing.T) {
	result, err := NewStructureScorer().Score(&extract.Document{Text: goodCV, Pages: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 1.0 {
		t.Fatalf("expected full structure score, got %v (%v)", result.Score, result.Evidence)
	}
}

func TestStructureScorerMissingSections(t *testing.T) {
	result, err := NewStructureScorer().Score(&extract.Document{Text: "just some text about python", Pages: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("expected zero structure score, got %v", result.Score)
	}
	joined := strings.Join(result.Evidence, " ")
	for _, section := range []string{"email", "education", "experience", "skills"} {
		if !strings.Contains(joined, section) {
			t.Fatalf("expected %q in evidence, got %v", section, result.Evidence)
		}
	}
}

func TestLanguageScorerCleanText(t *testing.T) {
	result, err := NewLanguageScorer().Score(&extract.Document{
		Text:  "built reliable data pipelines for the analytics team.\nshipped weekly reports without manual steps.",
		Pages: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 1.0 {
		t.Fatalf("expected perfect language score, got %v (%v)", result.Score, result.Evidence)
	}
}

func TestLanguageScorerPenalizesErrors(t *testing.T) {
	result, err := NewLanguageScorer().Score(&extract.Document{
		Text:  "i was responsable for the the managment of projects,, always",
		Pages: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score >= 1.0 {
		t.Fatalf("expected penalty, got %v (%v)", result.Score, result.Evidence)
	}

	joined := strings.Join(result.Evidence, " ")
	for _, want := range []string{"responsable", "managment", "repeated word", "doubled punctuation"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in evidence, got %v", want, result.Evidence)
		}
	}
}

func TestLanguageScorerEmptyText(t *testing.T) {
	result, err := NewLanguageScorer().Score(&extract.Document{Text: "", Pages: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("expected zero score for empty text, got %v", result.Score)
	}
}

func TestPresentationScorer(t *testing.T) {
	result, err := NewPresentationScorer().Score(&extract.Document{Text: goodCV, Pages: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 1.0 {
		t.Fatalf("expected perfect presentation score, got %v (%v)", result.Score, result.Evidence)
	}
}

func TestPresentationScorerMixedBulletsAndPages(t *testing.T) {
	text := "- one bullet\n• another style\n* third style\nworked 2019 - 2021"
	result, err := NewPresentationScorer().Score(&extract.Document{Text: text, Pages: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// bullets 2/5, dates 3/5, pages 0/5, ats 5/5 -> 10/20.
	if result.Score != 0.5 {
		t.Fatalf("expected 0.5, got %v (%v)", result.Score, result.Evidence)
	}
}

func TestPresentationScorerATSImages(t *testing.T) {
	result, err := NewPresentationScorer().Score(&extract.Document{
		Text:  "profile photo at https://example.com/me.png\nworked 2019 – 2021",
		Pages: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := strings.Join(result.Evidence, " ")
	if !strings.Contains(joined, "ats: 0/5") {
		t.Fatalf("expected ats dimension at 0, got %v", result.Evidence)
	}
}
