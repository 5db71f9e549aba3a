package ui

import (
	"github.com/jiratime/jiratime/pkg/model"
)

// ScreenKind identifies which screen a stack entry represents.
type ScreenKind int

const (
	ScreenBoards ScreenKind = iota
	ScreenBacklog
	ScreenIssueDetail
	ScreenFilterModal
	ScreenWorklogModal
	ScreenWorklogList
)

// String returns the screen name
func (k ScreenKind) String() string {
	switch k {
	case ScreenBoards:
		return "boards"
	case ScreenBacklog:
		return "backlog"
	case ScreenIssueDetail:
		return "issue-detail"
	case ScreenFilterModal:
		return "filter-modal"
	case ScreenWorklogModal:
		return "worklog-modal"
	case ScreenWorklogList:
		return "worklog-list"
	default:
		return "unknown"
	}
}

// IsModal reports whether the screen overlays another screen. Only one
// modal may sit on the stack at a time.
func (k ScreenKind) IsModal() bool {
	return k >= ScreenFilterModal
}

// FilterField is the focused row inside the filter modal.
type FilterField int

const (
	FieldAssignee FilterField = iota
	FieldStatus
	FieldSort
)

// Next cycles focus to the following filter row.
func (f FilterField) Next() FilterField {
	return (f + 1) % 3
}

// FilterDraft is the pending filter selection while the modal is open.
// Committed only on explicit apply; discarded on cancel.
type FilterDraft struct {
	Filter model.IssueFilter
	Field  FilterField
}

// Screen is one entry on the navigation stack. Per-kind payload fields are
// set only for the kinds that use them; draft state lives here so popping
// the screen discards it.
type Screen struct {
	Kind ScreenKind

	// IssueKey is set for IssueDetail, WorklogModal and WorklogList.
	IssueKey string

	// FilterDraft is set for FilterModal.
	FilterDraft *FilterDraft

	// Form is set for WorklogModal.
	Form *WorklogForm
}

// ScreenStack holds the ordered stack of active screens. The bottom entry
// is always the Boards root; the top entry receives input.
type ScreenStack struct {
	screens []Screen
}

// NewScreenStack returns a stack containing the Boards root.
func NewScreenStack() ScreenStack {
	return ScreenStack{screens: []Screen{{Kind: ScreenBoards}}}
}

// Current returns the active (top) screen. The stack is never empty.
func (s *ScreenStack) Current() *Screen {
	return &s.screens[len(s.screens)-1]
}

// Push makes scr the active screen. Pushing a modal while another modal is
// open replaces it, keeping modal exclusivity.
func (s *ScreenStack) Push(scr Screen) {
	if scr.Kind.IsModal() && s.Current().Kind.IsModal() {
		s.screens[len(s.screens)-1] = scr
		return
	}
	s.screens = append(s.screens, scr)
}

// Pop removes and returns the active screen. On the root it is a no-op
// and reports false, signalling "exit" to the caller.
func (s *ScreenStack) Pop() (Screen, bool) {
	if len(s.screens) == 1 {
		return Screen{}, false
	}
	top := s.screens[len(s.screens)-1]
	s.screens = s.screens[:len(s.screens)-1]
	return top, true
}

// ReplaceTop swaps the active screen without growing the stack.
func (s *ScreenStack) ReplaceTop(scr Screen) {
	s.screens[len(s.screens)-1] = scr
}

// Base returns the topmost non-modal screen, the one rendered beneath an
// open modal.
func (s *ScreenStack) Base() *Screen {
	for i := len(s.screens) - 1; i >= 0; i-- {
		if !s.screens[i].Kind.IsModal() {
			return &s.screens[i]
		}
	}
	return &s.screens[0]
}

// Depth returns the number of stacked screens.
func (s *ScreenStack) Depth() int {
	return len(s.screens)
}
