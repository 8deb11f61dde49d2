package candidate

import (
	"testing"

	"github.com/cvtools/cvmatch/internal/jobs"
)

func set(items ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func TestNewProfile(t *testing.T) {
	p, err := New("Experienced analyst skilled in Python, SQL and pandas.", set("python", "sql", "tensorflow"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Tokens) == 0 {
		t.Fatalf("expected tokens to be populated")
	}
	for _, want := range []string{"python", "sql"} {
		if _, ok := p.Skills[want]; !ok {
			t.Fatalf("expected skill %q to be detected, got %v", want, p.SortedSkills())
		}
	}
	if _, ok := p.Skills["tensorflow"]; ok {
		t.Fatalf("tensorflow should not be detected")
	}
}

func TestNewProfileEmptyText(t *testing.T) {
	if _, err := New("   \n ", nil); err != ErrEmptyText {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestDetectSkillsMultiWord(t *testing.T) {
	text := "Built machine learning models and data pipelines in Go."
	detected := DetectSkills(text, set("machine learning", "go", "java"))

	if _, ok := detected["machine learning"]; !ok {
		t.Fatalf("expected multi-word skill match, got %v", detected)
	}
	if _, ok := detected["go"]; !ok {
		t.Fatalf("expected single-token skill match, got %v", detected)
	}
	if _, ok := detected["java"]; ok {
		t.Fatalf("java should not match")
	}
}

func TestDetectSkillsNoPartialTokenMatch(t *testing.T) {
	// "javascript" in the CV must not count as "java".
	detected := DetectSkills("Wrote javascript frontends.", set("java"))
	if len(detected) != 0 {
		t.Fatalf("expected no match, got %v", detected)
	}
}

func TestDetectExperience(t *testing.T) {
	cases := []struct {
		name string
		text string
		want jobs.Seniority
	}{
		{"explicit senior", "Senior Software Engineer at Acme", jobs.SenioritySenior},
		{"explicit junior", "Junior developer seeking first role", jobs.SeniorityJunior},
		{"years senior", "8 years of backend development", jobs.SenioritySenior},
		{"years mid", "4 years experience with Python", jobs.SeniorityMid},
		{"years junior", "1 year of internship projects", jobs.SeniorityJunior},
		{"no signal", "Built things. Shipped stuff.", jobs.SeniorityUnspecified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectExperience(tc.text); got != tc.want {
				t.Fatalf("DetectExperience(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestWithExperience(t *testing.T) {
	p, err := New("some text about python", set("python"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	override := p.WithExperience(jobs.SenioritySenior)
	if override.Experience != jobs.SenioritySenior {
		t.Fatalf("override not applied")
	}
	if p.Experience == jobs.SenioritySenior {
		t.Fatalf("original profile must not change")
	}
}
