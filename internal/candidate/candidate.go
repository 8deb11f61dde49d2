package candidate

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cvtools/cvmatch/internal/jobs"
	"github.com/cvtools/cvmatch/internal/textproc"
)

// ErrEmptyText is returned when a profile is built from blank CV text.
var ErrEmptyText = errors.New("candidate: cv text is empty")

// Profile is the candidate side of a match run. Immutable after construction.
type Profile struct {
	RawText    string
	Tokens     []string
	Skills     map[string]struct{}
	Experience jobs.Seniority
}

var reYears = regexp.MustCompile(`(\d{1,2})\s*\+?\s*(?:years?|yrs?)`)

// New builds a profile from extracted CV text. Detected skills are the subset
// of skillVocabulary (normally the union of all postings' required skills)
// found in the CV; matching is exact on normalized phrases, multi-word skills
// included.
func New(rawText string, skillVocabulary map[string]struct{}) (*Profile, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyText
	}

	cleaned := textproc.FixArtifacts(rawText)
	return &Profile{
		RawText:    cleaned,
		Tokens:     textproc.Normalize(cleaned),
		Skills:     DetectSkills(cleaned, skillVocabulary),
		Experience: DetectExperience(cleaned),
	}, nil
}

// WithExperience returns a copy of the profile with the experience signal
// overridden (CLI --level flag).
func (p *Profile) WithExperience(level jobs.Seniority) *Profile {
	clone := *p
	clone.Experience = level
	return &clone
}

// SortedSkills returns detected skills in lexical order for stable output.
func (p *Profile) SortedSkills() []string {
	skills := make([]string, 0, len(p.Skills))
	for s := range p.Skills {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// DetectSkills intersects a normalized skill vocabulary against the CV text.
// Single-token skills match against the token set; multi-word skills match as
// whole phrases within the normalized text.
func DetectSkills(text string, vocabulary map[string]struct{}) map[string]struct{} {
	detected := make(map[string]struct{})
	if len(vocabulary) == 0 {
		return detected
	}

	normalized := textproc.Clean(text)
	padded := " " + normalized + " "

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(normalized) {
		tokens[tok] = struct{}{}
	}

	for skill := range vocabulary {
		if strings.ContainsRune(skill, ' ') {
			if strings.Contains(padded, " "+skill+" ") {
				detected[skill] = struct{}{}
			}
			continue
		}
		if _, ok := tokens[skill]; ok {
			detected[skill] = struct{}{}
		}
	}
	return detected
}

// DetectExperience infers a seniority signal from the CV body. Explicit
// seniority words win over year counts; with neither present the signal stays
// unspecified and match weighting applies no penalty.
func DetectExperience(text string) jobs.Seniority {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, "principal engineer", "staff engineer", "senior", "lead "):
		return jobs.SenioritySenior
	case containsAny(lower, "junior", "intern", "entry level", "entry-level", "graduate"):
		return jobs.SeniorityJunior
	}

	years := 0
	for _, m := range reYears.FindAllStringSubmatch(lower, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > years {
			years = n
		}
	}
	switch {
	case years >= 6:
		return jobs.SenioritySenior
	case years >= 3:
		return jobs.SeniorityMid
	case years >= 1:
		return jobs.SeniorityJunior
	default:
		return jobs.SeniorityUnspecified
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
