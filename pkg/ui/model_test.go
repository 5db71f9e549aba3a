package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jiratime/jiratime/pkg/model"
)

// fakeSource is a canned Source for update-loop tests. Commands built on
// it run synchronously in the test, never in a goroutine.
type fakeSource struct {
	boards    []model.Board
	boardsErr error

	issuePage model.Paginated[model.Issue]
	issuesErr error

	issue    model.Issue
	issueErr error

	worklogPage model.Paginated[model.Worklog]
	worklogsErr error

	created   model.Worklog
	createErr error
	updated   model.Worklog
	updateErr error
	deleteErr error

	createCalls int
	updateCalls int
	deleteCalls int
}

func (f *fakeSource) ListBoards(context.Context) ([]model.Board, error) {
	return f.boards, f.boardsErr
}

func (f *fakeSource) ListIssues(context.Context, model.BoardID, model.IssueFilter, int, int) (model.Paginated[model.Issue], error) {
	return f.issuePage, f.issuesErr
}

func (f *fakeSource) GetIssue(context.Context, string) (model.Issue, error) {
	return f.issue, f.issueErr
}

func (f *fakeSource) ListWorklogs(context.Context, string, int, int) (model.Paginated[model.Worklog], error) {
	return f.worklogPage, f.worklogsErr
}

func (f *fakeSource) CreateWorklog(_ context.Context, _ string, w model.Worklog) (model.Worklog, error) {
	f.createCalls++
	return f.created, f.createErr
}

func (f *fakeSource) UpdateWorklog(_ context.Context, _, _ string, w model.Worklog) (model.Worklog, error) {
	f.updateCalls++
	return f.updated, f.updateErr
}

func (f *fakeSource) DeleteWorklog(context.Context, string, string) error {
	f.deleteCalls++
	return f.deleteErr
}

func newTestModel(src Source) *Model {
	m := NewModel(src, 20, zerolog.Nop())
	m.now = func() time.Time {
		return time.Date(2025, 6, 12, 9, 30, 0, 0, time.UTC)
	}
	return m
}

func makeIssues(start, n int) []model.Issue {
	out := make([]model.Issue, n)
	for i := range out {
		out[i] = model.Issue{Key: fmt.Sprintf("PROJ-%d", start+i+1), Summary: "issue"}
	}
	return out
}

func lastNotice(m *Model) string {
	vis := m.notices.Visible()
	if len(vis) == 0 {
		return ""
	}
	return vis[len(vis)-1].Message
}

func TestModel_StaleFilterPageIsDropped(t *testing.T) {
	src := &fakeSource{boards: []model.Board{{ID: 7, Name: "Core"}}}
	m := newTestModel(src)
	m.boards = src.boards

	m.openBacklog()
	oldKey := m.issuesKey
	oldTok := m.dispatch.inflight[oldKey]

	// Commit a filter change before the first page arrives.
	m.openFilterModal()
	m.screens.Current().FilterDraft.Filter.Status = model.StatusFilterDone
	m.applyFilter()

	if m.issuesKey == oldKey {
		t.Fatal("A committed filter change must produce a new issues key")
	}

	// The superseded page arrives late. It must not touch the list.
	m.Update(issuesLoadedMsg{
		key:   oldKey,
		token: oldTok,
		page:  model.Paginated[model.Issue]{Items: makeIssues(0, 3), Total: 3},
	})
	if len(m.issues) != 0 {
		t.Fatalf("Stale page leaked %d issues into the new generation", len(m.issues))
	}

	// The current generation's page lands normally.
	m.Update(issuesLoadedMsg{
		key:   m.issuesKey,
		token: m.dispatch.inflight[m.issuesKey],
		page:  model.Paginated[model.Issue]{Items: makeIssues(0, 2), Total: 2},
	})
	if len(m.issues) != 2 {
		t.Errorf("Expected 2 issues from the fresh page, got %d", len(m.issues))
	}
}

func TestModel_BackCancelsBacklogRequest(t *testing.T) {
	src := &fakeSource{boards: []model.Board{{ID: 3, Name: "Core"}}}
	m := newTestModel(src)
	m.boards = src.boards

	m.openBacklog()
	key := m.issuesKey
	tok := m.dispatch.inflight[key]

	m.Update(keyMsg("esc"))
	if m.screens.Current().Kind != ScreenBoards {
		t.Fatalf("Expected Boards after back, got %v", m.screens.Current().Kind)
	}
	if m.dispatch.InFlight(key) {
		t.Error("Popping the backlog must cancel its in-flight request")
	}

	// The cancelled request's result arrives anyway and must be ignored.
	m.Update(issuesLoadedMsg{
		key:   key,
		token: tok,
		page:  model.Paginated[model.Issue]{Items: makeIssues(0, 4), Total: 4},
	})
	if m.issues != nil {
		t.Errorf("Cancelled result mutated state: %d issues", len(m.issues))
	}
}

func TestModel_OptimisticCreateThenServerReconciliation(t *testing.T) {
	src := &fakeSource{
		created: model.Worklog{
			ID: "900", IssueKey: "PROJ-1", Author: "ada",
			TimeSpentSeconds: 3600,
			StartedAt:        time.Date(2025, 6, 12, 9, 30, 0, 0, time.UTC),
		},
	}
	m := newTestModel(src)
	m.screens.Push(Screen{Kind: ScreenIssueDetail, IssueKey: "PROJ-1"})
	m.openWorklogForm()
	m.screens.Current().Form.DurHours = "1"

	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("Submitting a valid form must dispatch a mutation")
	}
	if len(m.worklogs) != 1 || !strings.HasPrefix(m.worklogs[0].ID, "pending-") {
		t.Fatalf("Expected one placeholder entry, got %+v", m.worklogs)
	}
	if m.screens.Current().Kind != ScreenIssueDetail {
		t.Errorf("Modal should close on submit, got %v", m.screens.Current().Kind)
	}

	m.Update(cmd())
	if src.createCalls != 1 {
		t.Fatalf("Expected one create call, got %d", src.createCalls)
	}
	if len(m.worklogs) != 1 || m.worklogs[0].ID != "900" {
		t.Errorf("Placeholder not reconciled with server payload: %+v", m.worklogs)
	}
	if m.worklogs[0].Author != "ada" {
		t.Errorf("Server fields should win: %+v", m.worklogs[0])
	}
	if lastNotice(m) != "Worklog added" {
		t.Errorf("Unexpected notice %q", lastNotice(m))
	}
	if m.tracker.PendingCount() != 0 {
		t.Errorf("Mutation should be resolved, %d still pending", m.tracker.PendingCount())
	}
}

func TestModel_FailedCreateRollsBackExactly(t *testing.T) {
	src := &fakeSource{createErr: model.RemoteErr("permission denied", nil)}
	m := newTestModel(src)
	m.screens.Push(Screen{Kind: ScreenIssueDetail, IssueKey: "PROJ-1"})

	existing := model.Worklog{
		ID: "100", IssueKey: "PROJ-1", Author: "ada",
		TimeSpentSeconds: 1800,
		StartedAt:        time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC),
	}
	m.worklogs = []model.Worklog{existing}
	m.worklogTotal = 1

	m.openWorklogForm()
	m.screens.Current().Form.DurHours = "2"
	_, cmd := m.Update(keyMsg("enter"))
	if len(m.worklogs) != 2 {
		t.Fatalf("Optimistic entry missing, got %d worklogs", len(m.worklogs))
	}

	m.Update(cmd())
	if len(m.worklogs) != 1 || m.worklogs[0] != existing {
		t.Errorf("Rollback did not restore the pre-mutation list: %+v", m.worklogs)
	}
	if m.worklogTotal != 1 {
		t.Errorf("Total not rolled back: %d", m.worklogTotal)
	}
	if lastNotice(m) != "permission denied" {
		t.Errorf("Unexpected notice %q", lastNotice(m))
	}
}

func TestModel_SecondMutationOnPendingWorklogRejected(t *testing.T) {
	src := &fakeSource{}
	m := newTestModel(src)
	m.screens.Push(Screen{Kind: ScreenIssueDetail, IssueKey: "PROJ-1"})
	m.screens.Push(Screen{Kind: ScreenWorklogList, IssueKey: "PROJ-1"})
	m.worklogs = []model.Worklog{{
		ID: "100", IssueKey: "PROJ-1",
		TimeSpentSeconds: 3600,
		StartedAt:        time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC),
	}}
	m.worklogTotal = 1

	// Start an edit and submit it; its result never arrives in this test.
	m.Update(keyMsg("e"))
	if m.screens.Current().Kind != ScreenWorklogModal {
		t.Fatalf("Expected edit modal, got %v", m.screens.Current().Kind)
	}
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("Edit submit should dispatch")
	}
	if m.screens.Current().Kind != ScreenWorklogList {
		t.Fatalf("Submit should return to the list, got %v", m.screens.Current().Kind)
	}

	// Deleting the same worklog while its update is in flight is rejected
	// synchronously.
	_, cmd = m.Update(keyMsg("d"))
	if cmd != nil {
		t.Error("Rejected delete must not dispatch")
	}
	if len(m.worklogs) != 1 {
		t.Errorf("Rejected delete mutated the list: %d entries", len(m.worklogs))
	}
	if !strings.Contains(lastNotice(m), "still pending") {
		t.Errorf("Expected a concurrent-mutation notice, got %q", lastNotice(m))
	}

	// Opening another edit on it is rejected the same way.
	m.Update(keyMsg("e"))
	if m.screens.Current().Kind != ScreenWorklogList {
		t.Errorf("Rejected edit should not open the modal, got %v", m.screens.Current().Kind)
	}
}

func TestModel_RepeatedScrollDispatchesOnePage(t *testing.T) {
	src := &fakeSource{boards: []model.Board{{ID: 3, Name: "Core"}}}
	m := newTestModel(src)
	m.boards = src.boards

	m.openBacklog()
	m.Update(issuesLoadedMsg{
		key:   m.issuesKey,
		token: m.dispatch.inflight[m.issuesKey],
		page:  model.Paginated[model.Issue]{Items: makeIssues(0, 20), Total: 40},
	})
	if m.page.Loading {
		t.Fatal("First page commit should clear the loading flag")
	}

	m.issueCursor = 14
	_, cmd := m.Update(keyMsg("j"))
	if cmd == nil {
		t.Fatal("Scrolling within the threshold must dispatch the next page")
	}
	_, cmd = m.Update(keyMsg("j"))
	if cmd != nil {
		t.Error("A second scroll while the page is in flight must be a no-op")
	}
	_, cmd = m.Update(keyMsg("j"))
	if cmd != nil {
		t.Error("Repeated scrolls must not stack requests")
	}
}

func TestModel_RefreshSupersedesWorklogLoad(t *testing.T) {
	src := &fakeSource{}
	m := newTestModel(src)
	m.screens.Push(Screen{Kind: ScreenIssueDetail, IssueKey: "PROJ-1"})
	m.Update(keyMsg("l"))
	key := WorklogsKey("PROJ-1")
	firstTok := m.dispatch.inflight[key]

	m.Update(keyMsg("r"))
	secondTok := m.dispatch.inflight[key]
	if firstTok == secondTok {
		t.Fatal("Refresh must supersede the pending load")
	}

	stale := model.Paginated[model.Worklog]{
		Items: []model.Worklog{{ID: "1", IssueKey: "PROJ-1", TimeSpentSeconds: 60}},
		Total: 1,
	}
	m.Update(worklogsLoadedMsg{token: firstTok, issueKey: "PROJ-1", page: stale})
	if len(m.worklogs) != 0 {
		t.Errorf("Superseded worklog page applied: %d entries", len(m.worklogs))
	}

	fresh := model.Paginated[model.Worklog]{
		Items: []model.Worklog{
			{ID: "1", IssueKey: "PROJ-1", TimeSpentSeconds: 60},
			{ID: "2", IssueKey: "PROJ-1", TimeSpentSeconds: 120},
		},
		Total: 2,
	}
	m.Update(worklogsLoadedMsg{token: secondTok, issueKey: "PROJ-1", page: fresh})
	if len(m.worklogs) != 2 || m.worklogTotal != 2 {
		t.Errorf("Fresh worklog page not applied: %d entries, total %d", len(m.worklogs), m.worklogTotal)
	}
}

func TestModel_InvalidFormNeverDispatches(t *testing.T) {
	src := &fakeSource{}
	m := newTestModel(src)
	m.screens.Push(Screen{Kind: ScreenIssueDetail, IssueKey: "PROJ-1"})
	m.openWorklogForm()
	// Duration left empty: structurally invalid.

	_, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("Validation failure must not reach the network")
	}
	if m.screens.Current().Kind != ScreenWorklogModal {
		t.Error("Form should stay open after a validation failure")
	}
	if len(m.worklogs) != 0 {
		t.Error("No optimistic entry may exist for an invalid draft")
	}
	if !strings.Contains(lastNotice(m), "duration") {
		t.Errorf("Expected a duration notice, got %q", lastNotice(m))
	}
}

func TestModel_BoardSearchFiltersSelection(t *testing.T) {
	src := &fakeSource{}
	m := newTestModel(src)
	m.boards = []model.Board{
		{ID: 1, Name: "Alpha", ProjectKey: "AL"},
		{ID: 2, Name: "Payments", ProjectKey: "PAY"},
	}
	m.searching = true
	m.searchInput.SetValue("pay")

	vis := m.visibleBoardIndexes()
	if len(vis) != 1 || vis[0] != 1 {
		t.Fatalf("Expected only the Payments board, got %v", vis)
	}
	if b := m.selectedBoard(); b == nil || b.ID != 2 {
		t.Errorf("Selection should follow the filtered rows, got %+v", b)
	}
}

func TestModel_TransportErrorsGetGenericNotice(t *testing.T) {
	src := &fakeSource{}
	m := newTestModel(src)
	tok := m.dispatch.Dispatch(BoardsKey())

	m.Update(boardsLoadedMsg{token: tok, err: model.TransportErr(context.DeadlineExceeded)})
	if lastNotice(m) != "Network error, try again" {
		t.Errorf("Unexpected notice %q", lastNotice(m))
	}
}
