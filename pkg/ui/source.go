package ui

import (
	"context"

	"github.com/jiratime/jiratime/pkg/model"
)

// Source abstracts remote data access for the TUI. The production
// implementation is the Jira REST client; tests substitute a fake. All
// calls may block and are only ever invoked from command goroutines, never
// from the update loop itself.
type Source interface {
	// ListBoards returns every board visible to the authenticated user.
	ListBoards(ctx context.Context) ([]model.Board, error)

	// ListIssues fetches one page of a board's backlog matching the
	// filter. Pages use offset pagination (startAt / max).
	ListIssues(ctx context.Context, boardID model.BoardID, filter model.IssueFilter, startAt, max int) (model.Paginated[model.Issue], error)

	// GetIssue fetches a single issue including its description.
	GetIssue(ctx context.Context, key string) (model.Issue, error)

	// ListWorklogs fetches one page of an issue's time entries.
	ListWorklogs(ctx context.Context, issueKey string, startAt, max int) (model.Paginated[model.Worklog], error)

	// CreateWorklog records a new time entry and returns the server's
	// authoritative view of it (id, computed fields).
	CreateWorklog(ctx context.Context, issueKey string, w model.Worklog) (model.Worklog, error)

	// UpdateWorklog replaces an existing time entry.
	UpdateWorklog(ctx context.Context, issueKey, worklogID string, w model.Worklog) (model.Worklog, error)

	// DeleteWorklog removes a time entry.
	DeleteWorklog(ctx context.Context, issueKey, worklogID string) error
}
