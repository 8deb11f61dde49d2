package textproc

import (
	"regexp"
	"strings"
)

// ligatures maps typographic ligatures and private-use fallbacks that PDF
// extractors commonly emit back to their ASCII spellings.
var ligatures = strings.NewReplacer(
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"", "fi",
	"", "fl",
)

var (
	reHyphenWrap = regexp.MustCompile(`(\w)-\s*\n(\w)`)
	reEmail      = regexp.MustCompile(`\S+@\S+`)
	reURL        = regexp.MustCompile(`https?://\S+`)
	rePhone      = regexp.MustCompile(`\+?\d[\d\-\s()]{6,}\d`)
	reLowercase  = regexp.MustCompile(`[a-z]`)
)

// FixArtifacts repairs copy/paste damage left behind by text extraction:
// ligatures are expanded, soft hyphens, zero-width spaces and BOMs are
// removed, and words broken across lines by a hyphen are rejoined
// ("fast-\nevolving" -> "fast-evolving").
func FixArtifacts(s string) string {
	s = ligatures.Replace(s)
	s = strings.NewReplacer("\u00AD", "", "\u200B", "", "\uFEFF", "").Replace(s)
	return reHyphenWrap.ReplaceAllString(s, "$1-$2")
}

// StripNoise removes content that should not count against language quality:
// email addresses, URLs, phone numbers, and lines that contain no lowercase
// letters (headings, decoration, contact blocks).
func StripNoise(text string) string {
	text = FixArtifacts(text)
	text = reEmail.ReplaceAllString(text, " ")
	text = reURL.ReplaceAllString(text, " ")
	text = rePhone.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, ln := range lines {
		if reLowercase.MatchString(ln) {
			kept = append(kept, ln)
		}
	}
	return strings.Join(kept, "\n")
}
