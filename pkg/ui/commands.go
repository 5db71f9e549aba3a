package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jiratime/jiratime/pkg/model"
)

// tickMsg drives notification expiry.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// boardsLoadedMsg delivers the boards list.
type boardsLoadedMsg struct {
	token  Token
	boards []model.Board
	err    error
}

// issuesLoadedMsg delivers one backlog page. The key carries the filter
// generation it was dispatched under.
type issuesLoadedMsg struct {
	key   ResourceKey
	token Token
	page  model.Paginated[model.Issue]
	err   error
}

// issueLoadedMsg delivers a full issue for the detail screen.
type issueLoadedMsg struct {
	token    Token
	issueKey string
	issue    model.Issue
	err      error
}

// worklogsLoadedMsg delivers an issue's worklog page.
type worklogsLoadedMsg struct {
	token    Token
	issueKey string
	page     model.Paginated[model.Worklog]
	err      error
}

// mutationDoneMsg delivers the outcome of a worklog create/update/delete.
// The worklog field holds the server's authoritative view on success.
type mutationDoneMsg struct {
	key      ResourceKey
	token    Token
	issueKey string
	worklog  model.Worklog
	err      error
}

func loadBoardsCmd(src Source, tok Token) tea.Cmd {
	return func() tea.Msg {
		boards, err := src.ListBoards(context.Background())
		return boardsLoadedMsg{token: tok, boards: boards, err: err}
	}
}

func loadIssuesCmd(src Source, key ResourceKey, tok Token, boardID model.BoardID, filter model.IssueFilter, startAt, max int) tea.Cmd {
	return func() tea.Msg {
		page, err := src.ListIssues(context.Background(), boardID, filter, startAt, max)
		return issuesLoadedMsg{key: key, token: tok, page: page, err: err}
	}
}

func loadIssueCmd(src Source, tok Token, issueKey string) tea.Cmd {
	return func() tea.Msg {
		issue, err := src.GetIssue(context.Background(), issueKey)
		return issueLoadedMsg{token: tok, issueKey: issueKey, issue: issue, err: err}
	}
}

func loadWorklogsCmd(src Source, tok Token, issueKey string, startAt, max int) tea.Cmd {
	return func() tea.Msg {
		page, err := src.ListWorklogs(context.Background(), issueKey, startAt, max)
		return worklogsLoadedMsg{token: tok, issueKey: issueKey, page: page, err: err}
	}
}

func createWorklogCmd(src Source, key ResourceKey, tok Token, issueKey string, w model.Worklog) tea.Cmd {
	return func() tea.Msg {
		created, err := src.CreateWorklog(context.Background(), issueKey, w)
		return mutationDoneMsg{key: key, token: tok, issueKey: issueKey, worklog: created, err: err}
	}
}

func updateWorklogCmd(src Source, key ResourceKey, tok Token, issueKey, worklogID string, w model.Worklog) tea.Cmd {
	return func() tea.Msg {
		updated, err := src.UpdateWorklog(context.Background(), issueKey, worklogID, w)
		return mutationDoneMsg{key: key, token: tok, issueKey: issueKey, worklog: updated, err: err}
	}
}

func deleteWorklogCmd(src Source, key ResourceKey, tok Token, issueKey, worklogID string) tea.Cmd {
	return func() tea.Msg {
		err := src.DeleteWorklog(context.Background(), issueKey, worklogID)
		return mutationDoneMsg{key: key, token: tok, issueKey: issueKey, err: err}
	}
}
