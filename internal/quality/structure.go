package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cvtools/cvmatch/internal/extract"
)

var reStructEmail = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// essentialSections maps each expected resume section to keywords that signal
// its presence.
var essentialSections = []struct {
	name     string
	keywords []string
}{
	{"education", []string{"education", "university", "college", "bachelor", "master", "degree", "phd"}},
	{"experience", []string{"experience", "employment", "work history", "career"}},
	{"skills", []string{"skills", "technologies", "tech stack", "competencies"}},
}

type structureScorer struct{}

// NewStructureScorer checks for the essential resume sections: a contact
// email plus education, experience and skills content. The score is the
// fraction of sections present.
func NewStructureScorer() Scorer {
	return &structureScorer{}
}

func (s *structureScorer) Name() string { return "structure" }

func (s *structureScorer) Score(doc *extract.Document) (Result, error) {
	lower := strings.ToLower(doc.Text)

	var present, missing []string

	if reStructEmail.MatchString(doc.Text) {
		present = append(present, "email")
	} else {
		missing = append(missing, "email")
	}

	for _, section := range essentialSections {
		found := false
		for _, kw := range section.keywords {
			if strings.Contains(lower, kw) {
				found = true
				break
			}
		}
		if found {
			present = append(present, section.name)
		} else {
			missing = append(missing, section.name)
		}
	}

	total := len(essentialSections) + 1
	result := Result{
		Score: float64(len(present)) / float64(total),
	}
	result.Evidence = append(result.Evidence,
		fmt.Sprintf("present sections (%d/%d): %s", len(present), total, strings.Join(present, ", ")))
	if len(missing) > 0 {
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("missing essential sections: %s", strings.Join(missing, ", ")))
	}
	return result, nil
}
