package jira

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jiratime/jiratime/pkg/config"
	"github.com/jiratime/jiratime/pkg/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.Config{
		BaseURL:     srv.URL,
		Email:       "dev@example.com",
		APIToken:    "token",
		APIVersion:  "3",
		HTTPTimeout: 5 * time.Second,
	}, zerolog.Nop())
}

func TestClient_ListIssuesBuildsQuery(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"jql":        r.URL.Query().Get("jql"),
			"startAt":    r.URL.Query().Get("startAt"),
			"maxResults": r.URL.Query().Get("maxResults"),
		}
		json.NewEncoder(w).Encode(searchResponse{
			StartAt: 20,
			Total:   45,
			Issues:  []issueDTO{{Key: "PROJ-21"}},
		})
	}))

	page, err := c.ListIssues(context.Background(), 7, model.IssueFilter{}, 20, 25)
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery["jql"] != "assignee = currentUser() ORDER BY updated DESC" {
		t.Errorf("jql %q", gotQuery["jql"])
	}
	if gotQuery["startAt"] != "20" || gotQuery["maxResults"] != "25" {
		t.Errorf("pagination params %v", gotQuery)
	}
	if len(page.Items) != 1 || page.Items[0].Key != "PROJ-21" {
		t.Errorf("page items wrong: %+v", page.Items)
	}
	if page.StartAt != 20 || page.Total != 45 {
		t.Errorf("page bookkeeping wrong: %+v", page)
	}
	if !page.HasMore() {
		t.Error("21 of 45 loaded, more pages should remain")
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(boardsResponse{IsLast: true})
	}))

	if _, err := c.ListBoards(context.Background()); err != nil {
		t.Fatalf("Expected retry to succeed: %v", err)
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
}

func TestClient_ClientErrorsDoNotRetry(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetIssue(context.Background(), "PROJ-404")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if model.KindOf(err) != model.KindRemoteRejection {
		t.Errorf("Expected a remote rejection, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("404 must not be retried, got %d attempts", attempts)
	}
}

func TestClient_AuthFailureMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.ListBoards(context.Background())
	if err == nil {
		t.Fatal("Expected an error")
	}
	var me *model.Error
	if !errors.As(err, &me) || me.Msg != "not authorized, check credentials" {
		t.Errorf("Unexpected error %v", err)
	}
}

func TestClient_ErrorMessagesFromBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorMessages": ["worklog duration is invalid"]}`))
	}))

	_, err := c.CreateWorklog(context.Background(), "PROJ-1", model.Worklog{TimeSpentSeconds: 60, StartedAt: time.Now()})
	var me *model.Error
	if !errors.As(err, &me) || me.Msg != "worklog duration is invalid" {
		t.Errorf("Unexpected error %v", err)
	}
}

func TestClient_ListBoardsFollowsPages(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("startAt") == "0" {
			json.NewEncoder(w).Encode(boardsResponse{Values: []boardDTO{{ID: 1, Name: "Core"}}})
			return
		}
		json.NewEncoder(w).Encode(boardsResponse{Values: []boardDTO{{ID: 2, Name: "Infra"}}, IsLast: true})
	}))

	boards, err := c.ListBoards(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(boards) != 2 || boards[0].ID != 1 || boards[1].ID != 2 {
		t.Errorf("Expected both pages, got %+v", boards)
	}
}

func TestClient_CreateWorklogSendsAuthAndBody(t *testing.T) {
	var auth string
	var sent map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&sent)
		json.NewEncoder(w).Encode(worklogDTO{ID: "900", TimeSpentSeconds: 5400})
	}))

	w, err := c.CreateWorklog(context.Background(), "PROJ-1", model.Worklog{
		TimeSpentSeconds: 5400,
		Comment:          "pairing",
		StartedAt:        time.Date(2025, 6, 12, 9, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if auth == "" {
		t.Error("Expected basic auth header")
	}
	if sent["timeSpentSeconds"] != float64(5400) {
		t.Errorf("Body timeSpentSeconds wrong: %v", sent["timeSpentSeconds"])
	}
	if w.ID != "900" || w.IssueKey != "PROJ-1" {
		t.Errorf("Server view not returned: %+v", w)
	}
}

func TestClient_UpdateWorklogEmptyResponseFallsBack(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Expected PUT, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))

	in := model.Worklog{TimeSpentSeconds: 1200, StartedAt: time.Now()}
	out, err := c.UpdateWorklog(context.Background(), "PROJ-1", "100", in)
	if err != nil {
		t.Fatal(err)
	}
	if out.ID != "100" || out.TimeSpentSeconds != 1200 {
		t.Errorf("Fallback view wrong: %+v", out)
	}
}

func TestClient_DeleteWorklog(t *testing.T) {
	var method string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := c.DeleteWorklog(context.Background(), "PROJ-1", "100"); err != nil {
		t.Fatal(err)
	}
	if method != http.MethodDelete {
		t.Errorf("Expected DELETE, got %s", method)
	}
}
