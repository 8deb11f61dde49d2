package matching

import (
	"sort"

	"github.com/cvtools/cvmatch/internal/jobs"
	"github.com/cvtools/cvmatch/internal/vectorizer"
)

// RankedJob pairs a posting with its cosine similarity against the CV vector.
type RankedJob struct {
	Job        *jobs.Posting
	Vector     vectorizer.DocumentVector
	Similarity float64
}

// Rank orders postings by cosine similarity against the CV vector, highest
// first. The sort is stable so ties keep original job-list order. Vectors
// must come from the same fitted model as cvVector.
func Rank(cvVector vectorizer.DocumentVector, postings []*jobs.Posting, vectors []vectorizer.DocumentVector) []RankedJob {
	ranked := make([]RankedJob, len(postings))
	for i, p := range postings {
		ranked[i] = RankedJob{
			Job:        p,
			Vector:     vectors[i],
			Similarity: vectorizer.Cosine(cvVector, vectors[i]),
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Similarity > ranked[b].Similarity
	})
	return ranked
}
