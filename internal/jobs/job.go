package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cvtools/cvmatch/internal/textproc"
)

// Posting is one job listing loaded from the tabular source. Immutable once
// loaded; the matching pipeline holds it read-only for the duration of a run.
type Posting struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	RequiredSkills []string  `json:"required_skills,omitempty"` // normalized, deduplicated, load order preserved
	Seniority      Seniority `json:"seniority,omitempty"`
}

// CombinedText concatenates title, description and required skills into the
// single document that represents the posting in the vector space.
func (p *Posting) CombinedText() string {
	parts := []string{p.Title, p.Description}
	if len(p.RequiredSkills) > 0 {
		parts = append(parts, strings.Join(p.RequiredSkills, " "))
	}
	return strings.Join(parts, " ")
}

// SkillSet returns the required skills as a set for overlap detection.
func (p *Posting) SkillSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.RequiredSkills))
	for _, s := range p.RequiredSkills {
		set[s] = struct{}{}
	}
	return set
}

// Jobs wraps an ordered list of postings.
type Jobs struct {
	Items []*Posting
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Posting {
	for _, p := range j.Items {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Texts returns the combined text of every posting in list order.
func (j *Jobs) Texts() []string {
	texts := make([]string, len(j.Items))
	for i, p := range j.Items {
		texts[i] = p.CombinedText()
	}
	return texts
}

// SkillVocabulary returns the union of required skills across all postings.
func (j *Jobs) SkillVocabulary() map[string]struct{} {
	vocab := make(map[string]struct{})
	for _, p := range j.Items {
		for _, s := range p.RequiredSkills {
			vocab[s] = struct{}{}
		}
	}
	return vocab
}

// SkillFrequency holds how many postings require a given skill.
type SkillFrequency struct {
	Skill string
	Count int
}

// TopSkills returns the n most frequently required skills, most common first.
// Ties are broken alphabetically to keep reports deterministic.
func (j *Jobs) TopSkills(n int) []SkillFrequency {
	counts := make(map[string]int)
	for _, p := range j.Items {
		for _, s := range p.RequiredSkills {
			counts[s]++
		}
	}

	freqs := make([]SkillFrequency, 0, len(counts))
	for skill, count := range counts {
		freqs = append(freqs, SkillFrequency{Skill: skill, Count: count})
	}
	sort.Slice(freqs, func(a, b int) bool {
		if freqs[a].Count != freqs[b].Count {
			return freqs[a].Count > freqs[b].Count
		}
		return freqs[a].Skill < freqs[b].Skill
	})

	if n > 0 && len(freqs) > n {
		freqs = freqs[:n]
	}
	return freqs
}

// DumpToTmpFile writes the postings to a temp JSON file and returns its name.
func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ParseSkills turns a raw requiredSkills cell into normalized skill phrases.
// Accepted shapes: a bracketed list literal ("['SQL', 'Python']") or a plain
// `;`/`,` delimited string. Items are lowercased, trimmed and deduplicated.
func ParseSkills(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}

	if strings.HasPrefix(cell, "[") && strings.HasSuffix(cell, "]") {
		cell = strings.TrimSuffix(strings.TrimPrefix(cell, "["), "]")
	}

	parts := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ';' || r == ','
	})

	seen := make(map[string]struct{}, len(parts))
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skill := textproc.NormalizeSkill(strings.Trim(strings.TrimSpace(part), `'"`))
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}
	if len(skills) == 0 {
		return nil
	}
	return skills
}

// Validate reports structural problems a loader must reject before the
// posting reaches the matching core.
func (p *Posting) Validate() error {
	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("posting %s has neither title nor description", p.ID)
	}
	return nil
}
