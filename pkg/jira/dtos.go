package jira

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jiratime/jiratime/pkg/model"
)

// jiraTimeLayout is the timestamp format Jira uses in REST payloads.
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

type jiraTime struct {
	time.Time
}

func (t *jiraTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(jiraTimeLayout, s)
	if err != nil {
		// Some instances emit plain RFC 3339.
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	t.Time = parsed
	return nil
}

type boardsResponse struct {
	Values []boardDTO `json:"values"`
	IsLast bool       `json:"isLast"`
}

type boardDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location struct {
		ProjectKey string `json:"projectKey"`
	} `json:"location"`
}

func (b boardDTO) toModel() model.Board {
	return model.Board{
		ID:         model.BoardID(b.ID),
		Name:       b.Name,
		ProjectKey: b.Location.ProjectKey,
		Type:       b.Type,
	}
}

type searchResponse struct {
	StartAt int        `json:"startAt"`
	Total   int        `json:"total"`
	Issues  []issueDTO `json:"issues"`
}

type issueDTO struct {
	Key    string `json:"key"`
	Fields struct {
		Summary     string          `json:"summary"`
		Description json.RawMessage `json:"description"`
		Status      struct {
			Name           string `json:"name"`
			StatusCategory struct {
				Key string `json:"key"`
			} `json:"statusCategory"`
		} `json:"status"`
		Assignee *struct {
			DisplayName string `json:"displayName"`
		} `json:"assignee"`
		Priority *struct {
			Name string `json:"name"`
		} `json:"priority"`
		Created jiraTime `json:"created"`
		Updated jiraTime `json:"updated"`
	} `json:"fields"`
}

func (i issueDTO) toModel() model.Issue {
	out := model.Issue{
		Key:         i.Key,
		Summary:     i.Fields.Summary,
		Description: richText(i.Fields.Description),
		Status:      statusFromCategory(i.Fields.Status.StatusCategory.Key),
		StatusName:  i.Fields.Status.Name,
		CreatedAt:   i.Fields.Created.Time,
		UpdatedAt:   i.Fields.Updated.Time,
	}
	if i.Fields.Assignee != nil {
		out.Assignee = i.Fields.Assignee.DisplayName
	}
	if i.Fields.Priority != nil {
		out.Priority = i.Fields.Priority.Name
	}
	return out
}

// statusFromCategory maps Jira's three status categories onto the local
// status enum. Category keys are stable across instances even though
// status names are not.
func statusFromCategory(key string) model.Status {
	switch key {
	case "new":
		return model.StatusToDo
	case "indeterminate":
		return model.StatusInProgress
	case "done":
		return model.StatusDone
	default:
		return model.StatusOther
	}
}

type worklogsResponse struct {
	StartAt  int          `json:"startAt"`
	Total    int          `json:"total"`
	Worklogs []worklogDTO `json:"worklogs"`
}

type worklogDTO struct {
	ID     string `json:"id"`
	Author struct {
		DisplayName string `json:"displayName"`
	} `json:"author"`
	TimeSpentSeconds int             `json:"timeSpentSeconds"`
	Comment          json.RawMessage `json:"comment"`
	Started          jiraTime        `json:"started"`
}

func (w worklogDTO) toModel(issueKey string) model.Worklog {
	return model.Worklog{
		ID:               w.ID,
		IssueKey:         issueKey,
		Author:           w.Author.DisplayName,
		TimeSpentSeconds: w.TimeSpentSeconds,
		Comment:          richText(w.Comment),
		StartedAt:        w.Started.Time,
	}
}

// worklogBody builds the create/update request payload. API v3 wants the
// comment as an ADF document, v2 as a plain string.
func (c *Client) worklogBody(w model.Worklog) map[string]any {
	body := map[string]any{
		"timeSpentSeconds": w.TimeSpentSeconds,
		"started":          w.StartedAt.Format(jiraTimeLayout),
	}
	if w.Comment != "" {
		if c.apiVer == "2" {
			body["comment"] = w.Comment
		} else {
			body["comment"] = adfDoc(w.Comment)
		}
	}
	return body
}

func adfDoc(text string) map[string]any {
	return map[string]any{
		"type":    "doc",
		"version": 1,
		"content": []any{
			map[string]any{
				"type": "paragraph",
				"content": []any{
					map[string]any{"type": "text", "text": text},
				},
			},
		},
	}
}

// richText extracts plain text from a field that is either a bare string
// (API v2) or an ADF document (API v3).
func richText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var node adfNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return ""
	}
	var b strings.Builder
	node.collect(&b)
	return strings.TrimRight(b.String(), "\n")
}

type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []adfNode `json:"content"`
}

func (n adfNode) collect(b *strings.Builder) {
	if n.Type == "text" {
		b.WriteString(n.Text)
		return
	}
	for _, child := range n.Content {
		child.collect(b)
	}
	switch n.Type {
	case "paragraph", "heading", "codeBlock", "blockquote", "listItem":
		b.WriteString("\n")
	case "hardBreak":
		b.WriteString("\n")
	}
}
