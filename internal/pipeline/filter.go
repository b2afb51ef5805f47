package pipeline

import (
	"github.com/sells-group/bargain-cli/internal/model"
)

// Default filter sentinels used by the experiment exports.
const (
	DefaultCompletedPage   = "Results"
	DefaultExcludedSession = "Full Experiment"
)

// FilterOptions names the sentinels that identify real participants.
type FilterOptions struct {
	CompletedPage   string
	ExcludedSession string
}

// DefaultFilterOptions returns the sentinels used by the experiment.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		CompletedPage:   DefaultCompletedPage,
		ExcludedSession: DefaultExcludedSession,
	}
}

// Filter keeps participants who reached the completed page in a session
// other than the excluded one. Warm-ups, dropouts and test sessions are
// removed. The input table is not modified; an empty result is valid.
func Filter(t *model.Table, opts FilterOptions) *model.Table {
	out := &model.Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]model.Record, 0, len(t.Records)),
	}
	for _, r := range t.Records {
		page, _ := r.Get(model.ColPageName)
		if page != opts.CompletedPage {
			continue
		}
		if session, _ := r.Get(model.ColSessionName); session == opts.ExcludedSession {
			continue
		}
		out.Records = append(out.Records, r)
	}
	return out
}
