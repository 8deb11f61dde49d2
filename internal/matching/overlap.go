package matching

import "sort"

// Overlap intersects the candidate's detected skills with a posting's
// required skills. Matching is exact on normalized phrases; the ratio is
// |overlap| / |required| and 0.0 when no skills are required. The returned
// slice is sorted for deterministic output.
func Overlap(candidate, required map[string]struct{}) ([]string, float64) {
	if len(required) == 0 {
		return nil, 0
	}

	var overlap []string
	for skill := range required {
		if _, ok := candidate[skill]; ok {
			overlap = append(overlap, skill)
		}
	}
	sort.Strings(overlap)

	return overlap, float64(len(overlap)) / float64(len(required))
}
