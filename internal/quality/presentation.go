package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cvtools/cvmatch/internal/extract"
)

const dimensionMax = 5.0

var (
	reBullet    = regexp.MustCompile(`^\s*([-•*])\s`)
	reDashRange = regexp.MustCompile(`\d{4}\s*–\s*(?:\d{4}|present)`)
	reHyphRange = regexp.MustCompile(`\d{4}\s*-\s*(?:\d{4}|present)`)
	reImageRef  = regexp.MustCompile(`https?://\S+\.(?:png|jpe?g|svg|gif)`)
)

type dimension struct {
	name  string
	score float64
	note  string
}

type presentationScorer struct{}

// NewPresentationScorer judges the text-observable presentation dimensions:
// bullet-style consistency, date-range dash style, page length and ATS
// friendliness. Each dimension scores 0-5 and the sum is scaled to [0,1].
func NewPresentationScorer() Scorer {
	return &presentationScorer{}
}

func (s *presentationScorer) Name() string { return "presentation" }

func (s *presentationScorer) Score(doc *extract.Document) (Result, error) {
	dims := []dimension{
		scoreBullets(doc.Text),
		scoreDates(doc.Text),
		scorePageLength(doc.Pages),
		scoreATS(doc.Text),
	}

	var total float64
	result := Result{}
	for _, d := range dims {
		total += d.score
		result.Evidence = append(result.Evidence, fmt.Sprintf("%s: %.0f/5 %s", d.name, d.score, d.note))
	}
	result.Score = total / (dimensionMax * float64(len(dims)))
	return result, nil
}

func scoreBullets(text string) dimension {
	styles := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		if m := reBullet.FindStringSubmatch(line); m != nil {
			styles[m[1]] = struct{}{}
		}
	}

	if len(styles) <= 1 {
		return dimension{"bullets", 5, "consistent bullet style"}
	}

	score := dimensionMax - float64(len(styles))
	if score < 0 {
		score = 0
	}
	return dimension{"bullets", score, fmt.Sprintf("%d bullet styles mixed; pick one", len(styles))}
}

func scoreDates(text string) dimension {
	lower := strings.ToLower(text)
	dash := reDashRange.MatchString(lower)
	hyphen := reHyphRange.MatchString(lower)

	switch {
	case dash && !hyphen:
		return dimension{"dates", 5, "date ranges use en dash consistently"}
	case dash && hyphen:
		return dimension{"dates", 3, "mixed en dash and hyphen in date ranges"}
	case hyphen:
		return dimension{"dates", 3, "date ranges use hyphen; en dash preferred"}
	default:
		return dimension{"dates", 1, "no recognizable date ranges"}
	}
}

func scorePageLength(pages int) dimension {
	switch pages {
	case 1:
		return dimension{"page length", 5, "single page"}
	case 2:
		return dimension{"page length", 3, "two pages; fine for longer careers"}
	default:
		return dimension{"page length", 0, fmt.Sprintf("%d pages; aim for 1-2", pages)}
	}
}

func scoreATS(text string) dimension {
	if strings.Contains(text, "<img") || reImageRef.MatchString(text) {
		return dimension{"ats", 0, "embedded images break ats parsing"}
	}
	return dimension{"ats", 5, "plain text, ats friendly"}
}
