package ui

import (
	"github.com/jiratime/jiratime/pkg/model"
)

// mutationKind distinguishes the three worklog mutations.
type mutationKind int

const (
	mutationCreate mutationKind = iota
	mutationUpdate
	mutationDelete
)

// String returns the verb used in notifications
func (k mutationKind) String() string {
	switch k {
	case mutationCreate:
		return "added"
	case mutationUpdate:
		return "updated"
	default:
		return "deleted"
	}
}

// pendingMutation holds everything needed to undo one optimistic edit.
// The snapshot is a full copy of the pre-mutation list, not a diff, so
// rollback cannot compound with other edits.
type pendingMutation struct {
	kind      mutationKind
	worklogID string
	issueKey  string
	snapshot  []model.Worklog
}

// MutationTracker records rollback snapshots for in-flight worklog
// mutations, keyed by correlation token. It also enforces the one-pending-
// mutation-per-worklog rule: a second mutation on the same id must be
// rejected locally before dispatch.
type MutationTracker struct {
	byToken   map[Token]pendingMutation
	byWorklog map[string]Token
}

// NewMutationTracker returns an empty tracker.
func NewMutationTracker() MutationTracker {
	return MutationTracker{
		byToken:   make(map[Token]pendingMutation),
		byWorklog: make(map[string]Token),
	}
}

// Begin records a snapshot of list before the optimistic edit keyed by
// tok. The caller applies the edit after this returns.
func (t *MutationTracker) Begin(tok Token, kind mutationKind, worklogID, issueKey string, list []model.Worklog) {
	t.byToken[tok] = pendingMutation{
		kind:      kind,
		worklogID: worklogID,
		issueKey:  issueKey,
		snapshot:  model.CloneWorklogs(list),
	}
	t.byWorklog[worklogID] = tok
}

// PendingFor reports whether a mutation for worklogID is still in flight.
func (t *MutationTracker) PendingFor(worklogID string) bool {
	_, ok := t.byWorklog[worklogID]
	return ok
}

// Resolve removes and returns the pending mutation for tok. On success
// the caller discards the snapshot; on failure it restores it.
func (t *MutationTracker) Resolve(tok Token) (pendingMutation, bool) {
	pm, ok := t.byToken[tok]
	if !ok {
		return pendingMutation{}, false
	}
	delete(t.byToken, tok)
	delete(t.byWorklog, pm.worklogID)
	return pm, true
}

// PendingCount returns the number of unresolved mutations.
func (t *MutationTracker) PendingCount() int {
	return len(t.byToken)
}
