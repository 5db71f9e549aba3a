package jira

import (
	"strings"

	"github.com/jiratime/jiratime/pkg/model"
)

// BuildJQL renders a filter selection as a JQL query. Ordering is always
// part of the query so the server's declared order is authoritative; the
// client never re-sorts.
func BuildJQL(f model.IssueFilter) string {
	var clauses []string

	switch f.Assignee {
	case model.AssigneeMe:
		clauses = append(clauses, "assignee = currentUser()")
	case model.AssigneeUnassigned:
		clauses = append(clauses, "assignee is EMPTY")
	case model.AssigneeAll:
		// no clause
	}

	switch f.Status {
	case model.StatusFilterToDo:
		clauses = append(clauses, `statusCategory = "To Do"`)
	case model.StatusFilterInProgress:
		clauses = append(clauses, `statusCategory = "In Progress"`)
	case model.StatusFilterDone:
		clauses = append(clauses, `statusCategory = "Done"`)
	case model.StatusFilterAll:
		// no clause
	}

	jql := strings.Join(clauses, " AND ")

	order := "ORDER BY updated DESC"
	if f.Sort == model.SortCreatedDesc {
		order = "ORDER BY created DESC"
	}
	if jql == "" {
		return order
	}
	return jql + " " + order
}
