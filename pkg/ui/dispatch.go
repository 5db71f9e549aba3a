package ui

import (
	"fmt"

	"github.com/jiratime/jiratime/pkg/model"
)

// ResourceKey is the logical identity of a loadable or mutable entity.
// At most one request per key is in flight at any time.
type ResourceKey string

// BoardsKey covers the boards list.
func BoardsKey() ResourceKey { return "boards" }

// IssuesKey covers one generation of a board's backlog. The filter
// generation is part of the key, so a filter change makes results for the
// old generation unmatchable.
func IssuesKey(boardID model.BoardID, generation int) ResourceKey {
	return ResourceKey(fmt.Sprintf("issues/%d/%d", boardID, generation))
}

// IssueKey covers a single issue's detail fetch.
func IssueKey(issueKey string) ResourceKey {
	return ResourceKey("issue/" + issueKey)
}

// WorklogsKey covers an issue's worklog list.
func WorklogsKey(issueKey string) ResourceKey {
	return ResourceKey("worklogs/" + issueKey)
}

// mutationKeyNew is the worklog id stand-in for creates, which have no id
// yet. Only one create may be pending at a time.
const mutationKeyNew = "new"

// MutationKey covers a worklog create/update/delete.
func MutationKey(worklogID string) ResourceKey {
	if worklogID == "" {
		worklogID = mutationKeyNew
	}
	return ResourceKey("worklog-mutation/" + worklogID)
}

// Token distinguishes a specific dispatch from any earlier or later
// dispatch for the same resource key.
type Token uint64

// Dispatcher enforces single-in-flight-request discipline. It is pure
// bookkeeping: the actual network call runs in a bubbletea command, and
// its completion message carries the key and token back through Accept.
type Dispatcher struct {
	next     Token
	inflight map[ResourceKey]Token
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() Dispatcher {
	return Dispatcher{inflight: make(map[ResourceKey]Token)}
}

// Dispatch registers a request for key and returns its correlation token.
// If a request for key is already in flight it is superseded: its token
// stops being the latest, so its result is dropped on arrival.
func (d *Dispatcher) Dispatch(key ResourceKey) Token {
	d.next++
	d.inflight[key] = d.next
	return d.next
}

// Ensure registers a request for key unless one is already in flight.
// Reports false (and a zero token) when the existing request stands and
// the new dispatch should be a no-op.
func (d *Dispatcher) Ensure(key ResourceKey) (Token, bool) {
	if _, busy := d.inflight[key]; busy {
		return 0, false
	}
	return d.Dispatch(key), true
}

// Accept checks an arriving result against the latest token recorded for
// its key. A match completes the request and returns true; anything else
// is stale and must be discarded without side effects.
func (d *Dispatcher) Accept(key ResourceKey, tok Token) bool {
	if cur, ok := d.inflight[key]; ok && cur == tok {
		delete(d.inflight, key)
		return true
	}
	return false
}

// Cancel marks any in-flight request for key as stale. Cancellation is
// advisory: the transport call is not aborted, its result is simply
// dropped at delivery.
func (d *Dispatcher) Cancel(key ResourceKey) {
	delete(d.inflight, key)
}

// InFlight reports whether a request for key is outstanding.
func (d *Dispatcher) InFlight(key ResourceKey) bool {
	_, ok := d.inflight[key]
	return ok
}

// Busy reports whether any request is outstanding.
func (d *Dispatcher) Busy() bool {
	return len(d.inflight) > 0
}
