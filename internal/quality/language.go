package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cvtools/cvmatch/internal/extract"
	"github.com/cvtools/cvmatch/internal/textproc"
)

// errorWeight is the score penalty per error per 100 words.
const errorWeight = 0.05

const longSentenceWords = 40

var reDoublePunct = regexp.MustCompile(`[,;:!?]{2,}`)

// misspellings lists frequent resume typos. Deliberately small: the scorer is
// a density heuristic, not a spell checker.
var misspellings = map[string]string{
	"recieve":     "receive",
	"seperate":    "separate",
	"occured":     "occurred",
	"definately":  "definitely",
	"enviroment":  "environment",
	"managment":   "management",
	"acheive":     "achieve",
	"sucessful":   "successful",
	"experiance":  "experience",
	"responsable": "responsible",
}

type languageScorer struct{}

// NewLanguageScorer estimates language quality from the density of detectable
// writing errors: repeated words, doubled punctuation, unbalanced brackets,
// overlong sentences and a short list of common misspellings. The score is
// max(0, 1 - 0.05 * errors-per-100-words).
func NewLanguageScorer() Scorer {
	return &languageScorer{}
}

func (s *languageScorer) Name() string { return "language" }

func (s *languageScorer) Score(doc *extract.Document) (Result, error) {
	text := textproc.StripNoise(doc.Text)

	words := strings.Fields(text)
	if len(words) == 0 {
		return Result{Score: 0, Evidence: []string{"no prose found in cv text"}}, nil
	}

	var findings []string
	findings = append(findings, repeatedWords(words)...)
	findings = append(findings, misspelled(words)...)
	findings = append(findings, doubledPunctuation(text)...)
	findings = append(findings, unbalancedBrackets(text)...)
	findings = append(findings, longSentences(text)...)

	perHundred := float64(len(findings)) / float64(len(words)) * 100
	score := 1.0 - errorWeight*perHundred
	if score < 0 {
		score = 0
	}

	result := Result{
		Score: score,
		Evidence: append([]string{
			fmt.Sprintf("word count: %d", len(words)),
			fmt.Sprintf("errors found: %d (%.1f per 100 words)", len(findings), perHundred),
		}, findings...),
	}
	return result, nil
}

func repeatedWords(words []string) []string {
	var findings []string
	for i := 1; i < len(words); i++ {
		prev := strings.ToLower(strings.Trim(words[i-1], ".,;:!?"))
		curr := strings.ToLower(strings.Trim(words[i], ".,;:!?"))
		if prev != "" && prev == curr {
			findings = append(findings, fmt.Sprintf("repeated word %q", curr))
		}
	}
	return findings
}

func misspelled(words []string) []string {
	var findings []string
	for _, w := range words {
		lw := strings.ToLower(strings.Trim(w, ".,;:!?()"))
		if correct, ok := misspellings[lw]; ok {
			findings = append(findings, fmt.Sprintf("misspelling %q (did you mean %q?)", lw, correct))
		}
	}
	return findings
}

func doubledPunctuation(text string) []string {
	var findings []string
	for _, m := range reDoublePunct.FindAllString(text, -1) {
		findings = append(findings, fmt.Sprintf("doubled punctuation %q", m))
	}
	return findings
}

func unbalancedBrackets(text string) []string {
	open := strings.Count(text, "(")
	closed := strings.Count(text, ")")
	if open != closed {
		return []string{fmt.Sprintf("unbalanced parentheses: %d open, %d closed", open, closed)}
	}
	return nil
}

func longSentences(text string) []string {
	var findings []string
	for _, sentence := range regexp.MustCompile(`[.!?]`).Split(text, -1) {
		if n := len(strings.Fields(sentence)); n > longSentenceWords {
			findings = append(findings, fmt.Sprintf("sentence with %d words (max %d)", n, longSentenceWords))
		}
	}
	return findings
}
