package ui

import (
	"github.com/jiratime/jiratime/pkg/model"
)

// FilterState is the committed backlog filter plus a generation counter.
// Every committed change bumps the generation; pagination requests carry
// the generation in their resource key, so results for a previous filter
// can never land in the current list.
type FilterState struct {
	Current    model.IssueFilter
	Generation int
}

// Apply commits a new filter selection. Returns false when the selection
// is identical to the current one, in which case nothing changes and the
// generation is not bumped.
func (f *FilterState) Apply(nf model.IssueFilter) bool {
	if nf == f.Current {
		return false
	}
	f.Current = nf
	f.Generation++
	return true
}
