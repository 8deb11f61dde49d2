package matching

import "errors"

var (
	// ErrEmptyCorpus is returned when a match run receives no job postings.
	ErrEmptyCorpus = errors.New("matching: no job postings supplied")

	// ErrInvalidInput is returned for malformed run parameters (topK < 1,
	// missing candidate profile).
	ErrInvalidInput = errors.New("matching: invalid input")
)
