package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jiratime/jiratime/pkg/config"
	"github.com/jiratime/jiratime/pkg/model"
)

const maxAttempts = 3

// Client talks to the Jira REST API. It implements the data source the UI
// consumes. Identical concurrent GETs are collapsed through a singleflight
// group so a burst of UI events cannot fan out into duplicate requests.
type Client struct {
	baseURL string
	email   string
	token   string
	apiVer  string
	http    *http.Client
	log     zerolog.Logger
	group   singleflight.Group

	now func() time.Time
}

// NewClient builds a client from config.
func NewClient(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		email:   cfg.Email,
		token:   cfg.APIToken,
		apiVer:  cfg.APIVersion,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		log:     log,
		now:     time.Now,
	}
}

func (c *Client) apiURL(path string, q url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(q) > 0 {
		u = u + "?" + q.Encode()
	}
	return u
}

// restPath prefixes an api path with the configured REST version.
func (c *Client) restPath(suffix string) string {
	ver := c.apiVer
	if ver == "" {
		ver = "3"
	}
	return "/rest/api/" + ver + "/" + strings.TrimPrefix(suffix, "/")
}

// getJSON performs a GET and decodes the response into out. Concurrent
// calls for the same URL share a single request.
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	body, err, _ := c.group.Do(u, func() (any, error) {
		return c.do(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return model.RemoteErr("malformed response", err)
	}
	return nil
}

// sendJSON performs a mutating request (POST/PUT/DELETE) and optionally
// decodes the response. Never deduplicated.
func (c *Client) sendJSON(ctx context.Context, method, u string, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = b
	}
	body, err := c.do(ctx, method, u, payload)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return model.RemoteErr("malformed response", err)
	}
	return nil
}

// do runs one HTTP exchange with retry on 429 and 5xx.
func (c *Client) do(ctx context.Context, method, u string, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(300*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, model.TransportErr(ctx.Err())
			case <-time.After(backoff):
			}
		}

		var r io.Reader
		if payload != nil {
			r = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, r)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		req.SetBasicAuth(c.email, c.token)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = model.TransportErr(err)
			c.log.Warn().Err(err).Str("method", method).Str("url", u).Int("attempt", attempt+1).Msg("request failed")
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = model.TransportErr(readErr)
			continue
		}

		if resp.StatusCode >= 300 {
			apiErr := model.RemoteErr(remoteMessage(resp.StatusCode, body),
				fmt.Errorf("jira api status=%d", resp.StatusCode))
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = apiErr
				c.log.Warn().Int("status", resp.StatusCode).Str("url", u).Int("attempt", attempt+1).Msg("retryable api error")
				continue
			}
			return nil, apiErr
		}

		return body, nil
	}
	return nil, lastErr
}

// remoteMessage condenses an error response into something fit for a
// notification line.
func remoteMessage(status int, body []byte) string {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "not authorized, check credentials"
	case http.StatusNotFound:
		return "resource not found"
	}
	var e struct {
		ErrorMessages []string `json:"errorMessages"`
	}
	if err := json.Unmarshal(body, &e); err == nil && len(e.ErrorMessages) > 0 {
		return e.ErrorMessages[0]
	}
	return "service error " + strconv.Itoa(status)
}

// ListBoards returns all boards visible to the authenticated user.
func (c *Client) ListBoards(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	startAt := 0
	for {
		q := url.Values{}
		q.Set("startAt", strconv.Itoa(startAt))
		var page boardsResponse
		if err := c.getJSON(ctx, c.apiURL("/rest/agile/1.0/board", q), &page); err != nil {
			return nil, err
		}
		for _, b := range page.Values {
			boards = append(boards, b.toModel())
		}
		startAt += len(page.Values)
		if page.IsLast || len(page.Values) == 0 {
			break
		}
	}
	return boards, nil
}

// ListIssues fetches one page of a board's backlog matching the filter.
func (c *Client) ListIssues(ctx context.Context, boardID model.BoardID, filter model.IssueFilter, startAt, max int) (model.Paginated[model.Issue], error) {
	q := url.Values{}
	q.Set("jql", BuildJQL(filter))
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(max))
	q.Set("fields", "summary,status,assignee,priority,created,updated")

	u := c.apiURL(fmt.Sprintf("/rest/agile/1.0/board/%d/issue", boardID), q)
	var page searchResponse
	if err := c.getJSON(ctx, u, &page); err != nil {
		return model.Paginated[model.Issue]{}, err
	}

	out := model.Paginated[model.Issue]{
		Items:   make([]model.Issue, 0, len(page.Issues)),
		StartAt: page.StartAt,
		Total:   page.Total,
	}
	for _, dto := range page.Issues {
		out.Items = append(out.Items, dto.toModel())
	}
	return out, nil
}

// GetIssue fetches a single issue with its description.
func (c *Client) GetIssue(ctx context.Context, key string) (model.Issue, error) {
	q := url.Values{}
	q.Set("fields", "summary,description,status,assignee,priority,created,updated")
	var dto issueDTO
	if err := c.getJSON(ctx, c.apiURL(c.restPath("issue/"+url.PathEscape(key)), q), &dto); err != nil {
		return model.Issue{}, err
	}
	return dto.toModel(), nil
}

// ListWorklogs fetches one page of an issue's worklogs.
func (c *Client) ListWorklogs(ctx context.Context, issueKey string, startAt, max int) (model.Paginated[model.Worklog], error) {
	q := url.Values{}
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(max))
	u := c.apiURL(c.restPath("issue/"+url.PathEscape(issueKey)+"/worklog"), q)
	var page worklogsResponse
	if err := c.getJSON(ctx, u, &page); err != nil {
		return model.Paginated[model.Worklog]{}, err
	}

	out := model.Paginated[model.Worklog]{
		Items:   make([]model.Worklog, 0, len(page.Worklogs)),
		StartAt: page.StartAt,
		Total:   page.Total,
	}
	for _, dto := range page.Worklogs {
		out.Items = append(out.Items, dto.toModel(issueKey))
	}
	return out, nil
}

// CreateWorklog records a new time entry and returns the server's view of it.
func (c *Client) CreateWorklog(ctx context.Context, issueKey string, w model.Worklog) (model.Worklog, error) {
	u := c.apiURL(c.restPath("issue/"+url.PathEscape(issueKey)+"/worklog"), nil)
	var dto worklogDTO
	if err := c.sendJSON(ctx, http.MethodPost, u, c.worklogBody(w), &dto); err != nil {
		return model.Worklog{}, err
	}
	return dto.toModel(issueKey), nil
}

// UpdateWorklog replaces an existing time entry.
func (c *Client) UpdateWorklog(ctx context.Context, issueKey, worklogID string, w model.Worklog) (model.Worklog, error) {
	u := c.apiURL(c.restPath("issue/"+url.PathEscape(issueKey)+"/worklog/"+url.PathEscape(worklogID)), nil)
	var dto worklogDTO
	if err := c.sendJSON(ctx, http.MethodPut, u, c.worklogBody(w), &dto); err != nil {
		return model.Worklog{}, err
	}
	out := dto.toModel(issueKey)
	if out.ID == "" {
		out = w
		out.ID = worklogID
	}
	return out, nil
}

// DeleteWorklog removes a time entry.
func (c *Client) DeleteWorklog(ctx context.Context, issueKey, worklogID string) error {
	u := c.apiURL(c.restPath("issue/"+url.PathEscape(issueKey)+"/worklog/"+url.PathEscape(worklogID)), nil)
	return c.sendJSON(ctx, http.MethodDelete, u, nil, nil)
}
