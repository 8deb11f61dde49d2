package filtering

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cvtools/cvmatch/internal/matching"
)

type excludeIDsFilter struct {
	disabled bool
	reason   string
	ids      map[string]struct{}
}

// NewExcludeIDs creates a step that drops matches whose posting id appears in
// the exclude file. The file holds one posting id per line; blank lines and
// lines starting with '#' are skipped.
func NewExcludeIDs(path string) (Filter, error) {
	ids, err := readExcludeFile(path)
	if err != nil {
		return nil, err
	}
	return &excludeIDsFilter{ids: ids}, nil
}

func readExcludeFile(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading exclude file: %w", err)
	}

	ids := make(map[string]struct{})
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids[line] = struct{}{}
	}
	return ids, nil
}

func (f *excludeIDsFilter) Name() string { return "exclude_ids" }

func (f *excludeIDsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *excludeIDsFilter) IsEnabled() bool { return !f.disabled }

func (f *excludeIDsFilter) Apply(_ context.Context, results []*matching.MatchResult) ([]*matching.MatchResult, Step, error) {
	initial := len(results)

	kept := make([]*matching.MatchResult, 0, initial)
	for _, result := range results {
		if _, excluded := f.ids[result.Job.ID]; excluded {
			continue
		}
		kept = append(kept, result)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
