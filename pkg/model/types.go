package model

import (
	"time"
)

// BoardID identifies a board on the remote service.
type BoardID int64

// Board is a named collection of issues.
type Board struct {
	ID         BoardID `json:"id"`
	Name       string  `json:"name"`
	ProjectKey string  `json:"project_key"`
	Type       string  `json:"type"`
}

// Status is the workflow state of an issue.
type Status int

const (
	StatusToDo Status = iota
	StatusInProgress
	StatusDone
	StatusOther
)

// String returns the display name for the status
func (s Status) String() string {
	switch s {
	case StatusToDo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return "Other"
	}
}

// Issue represents a trackable work item
type Issue struct {
	Key         string    `json:"key"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	StatusName  string    `json:"status_name,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Worklog is a time entry attached to an issue.
type Worklog struct {
	ID               string    `json:"id"`
	IssueKey         string    `json:"issue_key"`
	Author           string    `json:"author,omitempty"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	Comment          string    `json:"comment,omitempty"`
	StartedAt        time.Time `json:"started_at"`
}

// Duration returns the logged time as a time.Duration.
func (w Worklog) Duration() time.Duration {
	return time.Duration(w.TimeSpentSeconds) * time.Second
}

// CloneWorklogs creates a deep copy of a worklog list. Snapshots taken
// before an optimistic mutation use this so rollback restores the exact
// pre-mutation state.
func CloneWorklogs(ws []Worklog) []Worklog {
	if ws == nil {
		return nil
	}
	out := make([]Worklog, len(ws))
	copy(out, ws)
	return out
}

// Paginated wraps one page of a remote list along with offset bookkeeping.
type Paginated[T any] struct {
	Items   []T `json:"items"`
	StartAt int `json:"start_at"`
	Total   int `json:"total"`
}

// HasMore reports whether pages remain beyond this one.
func (p Paginated[T]) HasMore() bool {
	return p.StartAt+len(p.Items) < p.Total
}
