package vectorizer

import (
	"errors"
	"math"
	"sort"

	"github.com/cvtools/cvmatch/internal/textproc"
)

// ErrNoDocuments is returned when Fit is called with an empty corpus.
var ErrNoDocuments = errors.New("vectorizer: no documents to fit")

// DocumentVector is a dense TF-IDF vector over the vocabulary of the model
// that produced it. Vectors are only comparable when they come from the same
// Fit call.
type DocumentVector []float64

// Model holds a fitted vocabulary and one vector per input document, in input
// order. A Model is immutable after Fit and safe for concurrent reads.
type Model struct {
	vocabulary []string
	index      map[string]int
	vectors    []DocumentVector
}

// Fit builds a TF-IDF model over the whole corpus in a single pass. Term
// frequency is count-in-document over document length; inverse document
// frequency is log(N / (1 + df)). A single-document corpus produces zero IDF
// weights everywhere, which degrades cosine similarity to raw term overlap.
func Fit(documents []string) (*Model, error) {
	if len(documents) == 0 {
		return nil, ErrNoDocuments
	}

	tokenized := make([][]string, len(documents))
	df := make(map[string]int)
	for i, doc := range documents {
		tokenized[i] = textproc.Normalize(doc)
		seen := make(map[string]struct{}, len(tokenized[i]))
		for _, tok := range tokenized[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	index := make(map[string]int, len(vocabulary))
	for i, term := range vocabulary {
		index[term] = i
	}

	n := float64(len(documents))
	idf := make([]float64, len(vocabulary))
	for i, term := range vocabulary {
		idf[i] = math.Log(n / (1 + float64(df[term])))
	}

	vectors := make([]DocumentVector, len(documents))
	for i, tokens := range tokenized {
		vec := make(DocumentVector, len(vocabulary))
		if len(tokens) == 0 {
			vectors[i] = vec
			continue
		}
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}
		total := float64(len(tokens))
		for term, count := range counts {
			j := index[term]
			vec[j] = (float64(count) / total) * idf[j]
		}
		vectors[i] = vec
	}

	return &Model{vocabulary: vocabulary, index: index, vectors: vectors}, nil
}

// Vocabulary returns the fitted terms in lexical order.
func (m *Model) Vocabulary() []string {
	out := make([]string, len(m.vocabulary))
	copy(out, m.vocabulary)
	return out
}

// Vector returns the vector for document i in Fit input order.
func (m *Model) Vector(i int) DocumentVector {
	return m.vectors[i]
}

// Len returns the number of fitted documents.
func (m *Model) Len() int {
	return len(m.vectors)
}

// Magnitude returns the Euclidean norm of the vector.
func (v DocumentVector) Magnitude() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// IsZero reports whether the vector has no weight in any dimension. This is
// the degenerate case for empty or fully-filtered documents.
func (v DocumentVector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Cosine computes cosine similarity between two vectors from the same model.
// Zero-magnitude vectors yield 0.0 rather than NaN.
func Cosine(a, b DocumentVector) float64 {
	if len(a) != len(b) {
		return 0
	}

	ma, mb := a.Magnitude(), b.Magnitude()
	if ma == 0 || mb == 0 {
		return 0
	}

	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}

	sim := dot / (ma * mb)
	// Guard against float drift pushing the result out of [0,1] for
	// non-negative TF-IDF weights.
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
