package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View implements tea.Model. Rendering reads state only; no handler ever
// runs here.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	scr := m.screens.Current()

	var body string
	if scr.Kind.IsModal() {
		body = m.modalView(scr)
	} else {
		body = m.screenView(scr)
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.noticesView())
	b.WriteString(m.footerView(scr))
	return b.String()
}

func (m *Model) screenView(scr *Screen) string {
	switch scr.Kind {
	case ScreenBoards:
		return m.boardsView()
	case ScreenBacklog:
		return m.backlogView()
	case ScreenIssueDetail:
		return m.detailView()
	}
	return ""
}

func (m *Model) modalView(scr *Screen) string {
	var box string
	switch scr.Kind {
	case ScreenFilterModal:
		box = m.filterModalView(scr)
	case ScreenWorklogModal:
		box = m.worklogModalView(scr)
	case ScreenWorklogList:
		box = m.worklogListView(scr)
	}
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}
	return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, box)
}

// --- chrome --------------------------------------------------------------

func (m *Model) headerView() string {
	title := headerStyle.Render("jiratime")

	var crumbs []string
	if m.board != nil {
		crumbs = append(crumbs, m.board.Name)
	}
	if key := m.openIssueKey(); key != "" {
		crumbs = append(crumbs, key)
	}
	crumb := breadcrumbStyle.Render(strings.Join(crumbs, " › "))

	busy := ""
	if m.dispatch.Busy() {
		busy = m.spinner.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, crumb, busy)
}

func (m *Model) footerView(scr *Screen) string {
	var hints string
	switch scr.Kind {
	case ScreenBoards:
		hints = "j/k move · enter open · / search · r refresh · q quit"
	case ScreenBacklog:
		hints = "j/k move · enter detail · f filter · y copy key · esc boards · q quit"
	case ScreenIssueDetail:
		hints = "j/k scroll · w log work · l worklogs · y copy key · esc back"
	case ScreenFilterModal:
		hints = "tab field · h/l cycle · enter apply · esc cancel"
	case ScreenWorklogModal:
		hints = "tab field · digits edit · enter save · esc cancel"
	case ScreenWorklogList:
		hints = "j/k move · e edit · d delete · r refresh · esc close"
	}
	return footerStyle.Render(hints)
}

func (m *Model) noticesView() string {
	visible := m.notices.Visible()
	if len(visible) == 0 {
		return strings.Repeat("\n", visibleNotices)
	}
	var b strings.Builder
	for _, n := range visible {
		style := successNoticeStyle
		prefix := "✓"
		if n.Level == NoticeError {
			style = errorNoticeStyle
			prefix = "✗"
		}
		b.WriteString(style.Render(prefix + " " + n.Message))
		b.WriteString("\n")
	}
	for i := len(visible); i < visibleNotices; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

// --- boards --------------------------------------------------------------

func (m *Model) boardsView() string {
	var b strings.Builder

	if m.searching {
		b.WriteString(rowStyle.Render(m.searchInput.View()))
		b.WriteString("\n")
	} else {
		b.WriteString(titleStyle.Padding(0, 1).Render("Boards"))
		b.WriteString("\n")
	}

	vis := m.visibleBoardIndexes()
	if len(vis) == 0 {
		if m.dispatch.InFlight(BoardsKey()) {
			b.WriteString(mutedStyle.Padding(0, 1).Render("loading boards..."))
		} else {
			b.WriteString(mutedStyle.Padding(0, 1).Render("no boards"))
		}
		return b.String()
	}

	rows := m.contentRows() - 1
	start, end := window(clamp(m.boardCursor, len(vis)), len(vis), rows)
	for i := start; i < end; i++ {
		board := m.boards[vis[i]]
		line := fmt.Sprintf("%-10s %s  %s",
			board.ProjectKey,
			padCell(board.Name, 40),
			mutedStyle.Render(board.Type))
		if i == clamp(m.boardCursor, len(vis)) {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// --- backlog -------------------------------------------------------------

func (m *Model) backlogView() string {
	var b strings.Builder

	f := m.filter.Current
	summary := fmt.Sprintf("Backlog · assignee: %s · status: %s · sort: %s",
		f.Assignee, f.Status, f.Sort)
	b.WriteString(mutedStyle.Padding(0, 1).Render(summary))
	b.WriteString("\n")

	if len(m.issues) == 0 {
		if m.page.Loading {
			b.WriteString(mutedStyle.Padding(0, 1).Render("loading issues..."))
		} else {
			b.WriteString(mutedStyle.Padding(0, 1).Render("no issues match the filter"))
		}
		return b.String()
	}

	rows := m.contentRows() - 2
	start, end := window(m.issueCursor, len(m.issues), rows)
	for i := start; i < end; i++ {
		iss := m.issues[i]
		status := lipgloss.NewStyle().Foreground(statusColor(iss.Status)).Render(padCell(iss.Status.String(), 11))
		line := fmt.Sprintf("%s %s %s %s",
			padCell(iss.Key, 12),
			status,
			padCell(iss.Summary, m.summaryWidth()),
			mutedStyle.Render(padCell(iss.Assignee, 16)))
		if i == m.issueCursor {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.page.Loading {
		b.WriteString(mutedStyle.Padding(0, 1).Render("loading more..."))
	} else if !m.page.HasMore {
		b.WriteString(mutedStyle.Padding(0, 1).Render(fmt.Sprintf("%d issues", len(m.issues))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) summaryWidth() int {
	w := m.width - 12 - 11 - 16 - 8
	if w < 20 {
		w = 20
	}
	return w
}

// --- issue detail --------------------------------------------------------

func (m *Model) detailView() string {
	if m.detailIssue == nil {
		return mutedStyle.Padding(0, 1).Render("loading issue...")
	}
	return m.detail.View()
}

// detailContent renders the full issue text for the detail viewport.
func (m *Model) detailContent() string {
	iss := m.detailIssue
	var b strings.Builder

	b.WriteString(titleStyle.Render(iss.Key + "  " + iss.Summary))
	b.WriteString("\n\n")

	status := iss.StatusName
	if status == "" {
		status = iss.Status.String()
	}
	b.WriteString(labelStyle.Render("Status:   "))
	b.WriteString(lipgloss.NewStyle().Foreground(statusColor(iss.Status)).Render(status))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Assignee: "))
	b.WriteString(valueStyle.Render(orDash(iss.Assignee)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Priority: "))
	b.WriteString(valueStyle.Render(orDash(iss.Priority)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Updated:  "))
	b.WriteString(valueStyle.Render(iss.UpdatedAt.Local().Format("2006-01-02 15:04")))
	b.WriteString("\n\n")

	if iss.Description == "" {
		b.WriteString(mutedStyle.Render("(no description)"))
		return b.String()
	}
	if m.renderer != nil {
		if out, err := m.renderer.Render(iss.Description); err == nil {
			b.WriteString(out)
			return b.String()
		}
	}
	b.WriteString(iss.Description)
	return b.String()
}

// --- filter modal --------------------------------------------------------

func (m *Model) filterModalView(scr *Screen) string {
	d := scr.FilterDraft
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filter backlog"))
	b.WriteString("\n\n")

	rows := []struct {
		field FilterField
		label string
		value string
	}{
		{FieldAssignee, "Assignee", d.Filter.Assignee.String()},
		{FieldStatus, "Status", d.Filter.Status.String()},
		{FieldSort, "Sort", d.Filter.Sort.String()},
	}
	for _, row := range rows {
		label := labelStyle
		if row.field == d.Field {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(padCell(row.label, 10)))
		b.WriteString(valueStyle.Render("‹ " + row.value + " ›"))
		b.WriteString("\n")
	}
	return modalStyle.Render(b.String())
}

// --- worklog modal -------------------------------------------------------

func (m *Model) worklogModalView(scr *Screen) string {
	form := scr.Form
	var b strings.Builder

	title := "Log work on " + scr.IssueKey
	if form.EditingID != "" {
		title = "Edit worklog on " + scr.IssueKey
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	writeField := func(field WorklogField, value string) {
		label := labelStyle
		if form.Focus == field {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(padCell(field.Label(), 15)))
		if value == "" {
			value = "··"
		}
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	writeField(FieldDay, form.Day)
	writeField(FieldMonth, form.Month)
	writeField(FieldYear, form.Year)
	writeField(FieldHour, form.Hour)
	writeField(FieldMinute, form.Minute)
	writeField(FieldDurHours, form.DurHours)
	writeField(FieldDurMinutes, form.DurMinutes)

	label := labelStyle
	if form.Focus == FieldComment {
		label = focusedLabelStyle
	}
	b.WriteString(label.Render(padCell("Comment", 15)))
	b.WriteString(form.Comment.View())
	return modalStyle.Render(b.String())
}

// --- worklog list modal --------------------------------------------------

func (m *Model) worklogListView(scr *Screen) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Worklogs · " + scr.IssueKey))
	b.WriteString("\n\n")

	if len(m.worklogs) == 0 {
		if m.dispatch.InFlight(WorklogsKey(scr.IssueKey)) {
			b.WriteString(mutedStyle.Render("loading worklogs..."))
		} else {
			b.WriteString(mutedStyle.Render("no worklogs recorded"))
		}
		return modalStyle.Render(b.String())
	}

	var total time.Duration
	for i, w := range m.worklogs {
		total += w.Duration()
		line := fmt.Sprintf("%s  %s  %s  %s",
			w.StartedAt.Local().Format("2006-01-02 15:04"),
			padCell(formatDuration(w.Duration()), 7),
			padCell(orDash(w.Author), 18),
			padCell(w.Comment, 30))
		if pendingID(w.ID) {
			line += mutedStyle.Render(" …")
		}
		if i == m.worklogCursor {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d entries · total %s", m.worklogTotal, formatDuration(total))))
	return modalStyle.Render(b.String())
}

// --- small helpers -------------------------------------------------------

// pendingID reports whether a worklog id is an optimistic placeholder not
// yet confirmed by the server.
func pendingID(id string) bool {
	return strings.HasPrefix(id, "pending-")
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// padCell truncates or pads s to exactly w display columns.
func padCell(s string, w int) string {
	if runewidth.StringWidth(s) > w {
		return runewidth.Truncate(s, w, "…")
	}
	return runewidth.FillRight(s, w)
}

// window returns the [start, end) slice of rows to render so the cursor
// stays visible in a viewport of the given height.
func window(cursor, total, height int) (int, int) {
	if height < 1 {
		height = 1
	}
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

// contentRows is the number of list rows available between the chrome.
func (m *Model) contentRows() int {
	rows := m.height - chromeHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}
