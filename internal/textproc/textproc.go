package textproc

import (
	"regexp"
	"strings"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// stopwords is a compact English stopword list covering the words that
// dominate job descriptions and resumes. Tokens found here never reach the
// vector space.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"of", "at", "by", "from", "to", "in", "on", "with", "as", "is",
		"are", "was", "were", "be", "been", "being", "am", "do", "does",
		"did", "done", "have", "has", "had", "having", "will", "would",
		"shall", "should", "can", "could", "may", "might", "must", "not",
		"no", "nor", "so", "too", "very", "this", "that", "these", "those",
		"it", "its", "we", "our", "you", "your", "they", "their", "he",
		"she", "his", "her", "i", "me", "my", "us", "them", "who", "whom",
		"which", "what", "when", "where", "why", "how", "all", "any",
		"both", "each", "few", "more", "most", "other", "some", "such",
		"only", "own", "same", "than", "also", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "up",
		"down", "out", "off", "over", "under", "again", "further", "once",
		"here", "there", "while", "etc",
	} {
		stopwords[w] = struct{}{}
	}
}

// Clean lowercases text, replaces everything outside [a-z0-9] with spaces and
// collapses repeated whitespace. It is the shared pre-tokenization step for
// job texts, skill phrases and CV bodies.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = reNonAlnum.ReplaceAllString(text, " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(text, " "))
}

// Normalize tokenizes free text: lowercase, punctuation stripped, English
// stopwords removed. Empty input yields an empty (non-nil) slice.
func Normalize(text string) []string {
	cleaned := Clean(text)
	if cleaned == "" {
		return []string{}
	}

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if IsStopword(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// NormalizeSkill canonicalizes a skill phrase for exact-match comparison:
// lowercased, punctuation-free, single-spaced. Multi-word skills stay as one
// phrase ("machine learning"), not separate tokens.
func NormalizeSkill(skill string) string {
	return Clean(skill)
}

// IsStopword reports whether the token is on the built-in English stopword list.
func IsStopword(token string) bool {
	_, ok := stopwords[strings.ToLower(token)]
	return ok
}
