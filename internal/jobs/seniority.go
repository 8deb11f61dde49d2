package jobs

import (
	"encoding/json"
	"strings"
)

// Seniority is the categorical experience level attached to a posting (or
// detected in a CV). The zero value means the signal is unavailable.
type Seniority int

const (
	SeniorityUnspecified Seniority = iota
	SeniorityJunior
	SeniorityMid
	SenioritySenior
)

// MarshalJSON emits the human-readable tag instead of the ordinal.
func (s Seniority) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts the same tags ParseSeniority does.
func (s *Seniority) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	*s = ParseSeniority(tag)
	return nil
}

func (s Seniority) String() string {
	switch s {
	case SeniorityJunior:
		return "junior"
	case SeniorityMid:
		return "mid"
	case SenioritySenior:
		return "senior"
	default:
		return "unspecified"
	}
}

// Level returns the ordinal position on the junior..senior ladder, or -1 when
// unspecified. Used to compute seniority distance for match weighting.
func (s Seniority) Level() int {
	switch s {
	case SeniorityJunior:
		return 0
	case SeniorityMid:
		return 1
	case SenioritySenior:
		return 2
	default:
		return -1
	}
}

// ParseSeniority maps a free-form tag to a Seniority. Unknown or empty tags
// map to SeniorityUnspecified; loaders treat that as a valid value, not an
// error.
func ParseSeniority(tag string) Seniority {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "junior", "jr", "entry", "entry-level", "intern":
		return SeniorityJunior
	case "mid", "middle", "mid-level", "intermediate":
		return SeniorityMid
	case "senior", "sr", "lead", "principal", "staff":
		return SenioritySenior
	default:
		return SeniorityUnspecified
	}
}
