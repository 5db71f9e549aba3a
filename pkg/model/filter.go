package model

// AssigneeFilter narrows issues by assignee.
type AssigneeFilter int

const (
	AssigneeMe AssigneeFilter = iota
	AssigneeUnassigned
	AssigneeAll
)

// String returns the display name for the assignee filter
func (a AssigneeFilter) String() string {
	switch a {
	case AssigneeMe:
		return "Me"
	case AssigneeUnassigned:
		return "Unassigned"
	default:
		return "All"
	}
}

// Next cycles to the following assignee option.
func (a AssigneeFilter) Next() AssigneeFilter {
	switch a {
	case AssigneeMe:
		return AssigneeUnassigned
	case AssigneeUnassigned:
		return AssigneeAll
	default:
		return AssigneeMe
	}
}

// StatusFilter narrows issues by workflow state.
type StatusFilter int

const (
	StatusFilterAll StatusFilter = iota
	StatusFilterToDo
	StatusFilterInProgress
	StatusFilterDone
)

// String returns the display name for the status filter
func (s StatusFilter) String() string {
	switch s {
	case StatusFilterToDo:
		return "To Do"
	case StatusFilterInProgress:
		return "In Progress"
	case StatusFilterDone:
		return "Done"
	default:
		return "All"
	}
}

// Next cycles to the following status option.
func (s StatusFilter) Next() StatusFilter {
	switch s {
	case StatusFilterAll:
		return StatusFilterToDo
	case StatusFilterToDo:
		return StatusFilterInProgress
	case StatusFilterInProgress:
		return StatusFilterDone
	default:
		return StatusFilterAll
	}
}

// SortOrder determines server-side ordering of the backlog.
type SortOrder int

const (
	SortUpdatedDesc SortOrder = iota
	SortCreatedDesc
)

// String returns the display name for the sort order
func (o SortOrder) String() string {
	switch o {
	case SortCreatedDesc:
		return "Created ↓"
	default:
		return "Updated ↓"
	}
}

// Next cycles to the following sort option.
func (o SortOrder) Next() SortOrder {
	if o == SortUpdatedDesc {
		return SortCreatedDesc
	}
	return SortUpdatedDesc
}

// IssueFilter is the full filter selection for a backlog query. The zero
// value is the default view: my issues, any status, most recently updated
// first.
type IssueFilter struct {
	Assignee AssigneeFilter
	Status   StatusFilter
	Sort     SortOrder
}
