package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"github.com/jiratime/jiratime/pkg/model"
)

// worklogPageSize is how many worklog entries one list load fetches.
const worklogPageSize = 50

// Model is the single mutable application state. It owns the screen
// stack, filter/pagination state, the dispatcher and the mutation
// tracker; every event (input or network completion) is applied to it by
// the update loop, one at a time.
type Model struct {
	src Source
	log zerolog.Logger

	width  int
	height int

	screens  ScreenStack
	dispatch Dispatcher
	tracker  MutationTracker
	notices  NoticeQueue

	// Boards screen
	boards      []model.Board
	boardCursor int
	searching   bool
	searchInput textinput.Model

	// Backlog screen
	board       *model.Board
	filter      FilterState
	page        PageCursor
	issuesKey   ResourceKey
	issues      []model.Issue
	issueCursor int

	// Issue detail screen
	detailIssue *model.Issue
	detail      viewport.Model
	detailReady bool
	renderer    *glamour.TermRenderer

	// Worklog list modal
	worklogs      []model.Worklog
	worklogCursor int
	worklogTotal  int

	spinner  spinner.Model
	quitting bool

	// Overridable in tests.
	now func() time.Time
}

// NewModel builds the initial application state.
func NewModel(src Source, pageSize int, log zerolog.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	search := textinput.New()
	search.Placeholder = "search boards"
	search.Prompt = "/"
	search.CharLimit = 60

	return &Model{
		src:         src,
		log:         log,
		screens:     NewScreenStack(),
		dispatch:    NewDispatcher(),
		tracker:     NewMutationTracker(),
		page:        NewPageCursor(pageSize),
		searchInput: search,
		spinner:     sp,
		now:         time.Now,
	}
}

// Init implements tea.Model. Kicks off the boards load.
func (m *Model) Init() tea.Cmd {
	tok := m.dispatch.Dispatch(BoardsKey())
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		loadBoardsCmd(m.src, tok),
	)
}

// Update implements tea.Model. Exactly one message is processed at a
// time; screens and sub-components mutate state only through the
// operations defined on them.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.notices.Expire(m.now())
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case boardsLoadedMsg:
		return m.handleBoardsLoaded(msg)

	case issuesLoadedMsg:
		return m.handleIssuesLoaded(msg)

	case issueLoadedMsg:
		return m.handleIssueLoaded(msg)

	case worklogsLoadedMsg:
		return m.handleWorklogsLoaded(msg)

	case mutationDoneMsg:
		return m.handleMutationDone(msg)
	}

	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width = w
	m.height = h

	contentHeight := h - chromeHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	if !m.detailReady {
		m.detail = viewport.New(w, contentHeight)
		m.detailReady = true
	} else {
		m.detail.Width = w
		m.detail.Height = contentHeight
	}

	wrap := w - 8
	if wrap > 100 {
		wrap = 100
	}
	if wrap > 0 {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap)); err == nil {
			m.renderer = r
		}
	}
	if m.detailIssue != nil {
		m.detail.SetContent(m.detailContent())
	}
}

// --- input routing -------------------------------------------------------

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scr := m.screens.Current()

	// Free-text contexts swallow raw keys before the router sees them.
	if scr.Kind == ScreenWorklogModal {
		return m.updateWorklogModal(msg, scr)
	}
	if scr.Kind == ScreenBoards && m.searching {
		return m.updateBoardSearch(msg)
	}

	return m.handleCommand(commandFor(msg, scr))
}

func (m *Model) handleCommand(cmd Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case CmdQuit:
		m.quitting = true
		return m, tea.Quit

	case CmdBack:
		return m, m.goBack()

	case CmdUp:
		m.moveCursor(-1)
		return m, m.maybeLoadMore()

	case CmdDown:
		m.moveCursor(1)
		return m, m.maybeLoadMore()

	case CmdSelect:
		switch m.screens.Current().Kind {
		case ScreenBoards:
			return m, m.openBacklog()
		case ScreenBacklog:
			return m, m.openDetail()
		}

	case CmdOpenFilter:
		m.openFilterModal()

	case CmdOpenWorklogForm:
		m.openWorklogForm()

	case CmdOpenWorklogList:
		return m, m.openWorklogList()

	case CmdNextField:
		if d := m.screens.Current().FilterDraft; d != nil {
			d.Field = d.Field.Next()
		}

	case CmdPrevField:
		if d := m.screens.Current().FilterDraft; d != nil {
			d.Field = d.Field.Next().Next()
		}

	case CmdCycleValue:
		m.cycleFilterValue()

	case CmdSubmit:
		if m.screens.Current().Kind == ScreenFilterModal {
			return m, m.applyFilter()
		}

	case CmdEdit:
		m.editSelectedWorklog()

	case CmdDelete:
		return m, m.deleteSelectedWorklog()

	case CmdRefresh:
		return m, m.refresh()

	case CmdCopyKey:
		m.copyIssueKey()

	case CmdSearch:
		m.searching = true
		m.searchInput.Focus()
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.screens.Current().Kind {
	case ScreenBoards:
		vis := m.visibleBoardIndexes()
		m.boardCursor = clamp(m.boardCursor+delta, len(vis))
	case ScreenBacklog:
		m.issueCursor = clamp(m.issueCursor+delta, len(m.issues))
	case ScreenIssueDetail:
		if delta > 0 {
			m.detail.LineDown(1)
		} else {
			m.detail.LineUp(1)
		}
	case ScreenWorklogList:
		m.worklogCursor = clamp(m.worklogCursor+delta, len(m.worklogs))
	}
}

func clamp(v, n int) int {
	if n == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// --- navigation ----------------------------------------------------------

// goBack pops the active screen. Requests scoped to the popped screen are
// cancelled: their results, if they ever arrive, are discarded.
func (m *Model) goBack() tea.Cmd {
	top, ok := m.screens.Pop()
	if !ok {
		// Root screen: pop is a no-op. Exit is an explicit quit.
		return nil
	}

	switch top.Kind {
	case ScreenWorklogList:
		m.dispatch.Cancel(WorklogsKey(top.IssueKey))

	case ScreenWorklogModal:
		if top.Form != nil && top.Form.ReturnToList {
			m.screens.Push(Screen{Kind: ScreenWorklogList, IssueKey: top.IssueKey})
		}

	case ScreenIssueDetail:
		m.dispatch.Cancel(IssueKey(top.IssueKey))
		m.dispatch.Cancel(WorklogsKey(top.IssueKey))
		m.detailIssue = nil
		m.worklogs = nil
		m.worklogCursor = 0

	case ScreenBacklog:
		m.dispatch.Cancel(m.issuesKey)
		m.board = nil
		m.issues = nil
		m.issueCursor = 0
		m.page.Reset()
	}
	return nil
}

func (m *Model) openBacklog() tea.Cmd {
	b := m.selectedBoard()
	if b == nil {
		return nil
	}
	cp := *b
	m.board = &cp
	m.screens.Push(Screen{Kind: ScreenBacklog})

	m.issues = nil
	m.issueCursor = 0
	m.page.Reset()
	m.issuesKey = IssuesKey(cp.ID, m.filter.Generation)

	tok := m.dispatch.Dispatch(m.issuesKey)
	startAt := m.page.BeginLoad()
	m.log.Debug().Int64("board", int64(cp.ID)).Msg("opening backlog")
	return loadIssuesCmd(m.src, m.issuesKey, tok, cp.ID, m.filter.Current, startAt, m.page.PageSize)
}

func (m *Model) openDetail() tea.Cmd {
	iss := m.selectedIssue()
	if iss == nil {
		return nil
	}
	m.screens.Push(Screen{Kind: ScreenIssueDetail, IssueKey: iss.Key})

	cp := *iss
	m.detailIssue = &cp
	if m.detailReady {
		m.detail.SetContent(m.detailContent())
		m.detail.GotoTop()
	}

	tok := m.dispatch.Dispatch(IssueKey(iss.Key))
	return loadIssueCmd(m.src, tok, iss.Key)
}

func (m *Model) openFilterModal() {
	if m.screens.Current().Kind != ScreenBacklog {
		return
	}
	m.screens.Push(Screen{
		Kind:        ScreenFilterModal,
		FilterDraft: &FilterDraft{Filter: m.filter.Current},
	})
}

func (m *Model) openWorklogForm() {
	scr := m.screens.Current()
	if scr.Kind != ScreenIssueDetail {
		return
	}
	m.screens.Push(Screen{
		Kind:     ScreenWorklogModal,
		IssueKey: scr.IssueKey,
		Form:     NewWorklogForm(m.now()),
	})
}

func (m *Model) openWorklogList() tea.Cmd {
	scr := m.screens.Current()
	if scr.Kind != ScreenIssueDetail {
		return nil
	}
	m.screens.Push(Screen{Kind: ScreenWorklogList, IssueKey: scr.IssueKey})
	m.worklogs = nil
	m.worklogCursor = 0
	m.worklogTotal = 0

	tok := m.dispatch.Dispatch(WorklogsKey(scr.IssueKey))
	return loadWorklogsCmd(m.src, tok, scr.IssueKey, 0, worklogPageSize)
}

// --- filter --------------------------------------------------------------

func (m *Model) cycleFilterValue() {
	d := m.screens.Current().FilterDraft
	if d == nil {
		return
	}
	switch d.Field {
	case FieldAssignee:
		d.Filter.Assignee = d.Filter.Assignee.Next()
	case FieldStatus:
		d.Filter.Status = d.Filter.Status.Next()
	case FieldSort:
		d.Filter.Sort = d.Filter.Sort.Next()
	}
}

// applyFilter commits the modal draft. A committed change invalidates the
// previous issues generation: its in-flight request is cancelled, the
// cursor resets, and accumulated entries are cleared before a fresh load.
func (m *Model) applyFilter() tea.Cmd {
	scr := m.screens.Current()
	if scr.FilterDraft == nil {
		return nil
	}
	draft := scr.FilterDraft.Filter
	m.screens.Pop()

	if !m.filter.Apply(draft) {
		return nil
	}
	if m.board == nil {
		return nil
	}

	m.dispatch.Cancel(m.issuesKey)
	m.issues = nil
	m.issueCursor = 0
	m.page.Reset()
	m.issuesKey = IssuesKey(m.board.ID, m.filter.Generation)

	tok := m.dispatch.Dispatch(m.issuesKey)
	startAt := m.page.BeginLoad()
	m.log.Debug().Int("generation", m.filter.Generation).Msg("filter applied")
	return loadIssuesCmd(m.src, m.issuesKey, tok, m.board.ID, m.filter.Current, startAt, m.page.PageSize)
}

// --- pagination ----------------------------------------------------------

// maybeLoadMore requests the next backlog page when the selection is near
// the end of the loaded rows. The Ensure call makes repeated scroll events
// while a page is in flight a no-op.
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.board == nil || m.screens.Current().Kind != ScreenBacklog {
		return nil
	}
	if !m.page.ShouldLoadMore(m.issueCursor, len(m.issues)) {
		return nil
	}
	tok, ok := m.dispatch.Ensure(m.issuesKey)
	if !ok {
		return nil
	}
	startAt := m.page.BeginLoad()
	return loadIssuesCmd(m.src, m.issuesKey, tok, m.board.ID, m.filter.Current, startAt, m.page.PageSize)
}

// --- worklog mutations ---------------------------------------------------

func (m *Model) updateWorklogModal(msg tea.KeyMsg, scr *Screen) (tea.Model, tea.Cmd) {
	form := scr.Form

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		return m, m.goBack()
	case "enter":
		return m, m.submitWorklog(scr)
	case "tab", "down":
		form.NextField()
		return m, nil
	case "shift+tab", "up":
		form.PrevField()
		return m, nil
	}

	if form.Focus == FieldComment {
		var cmd tea.Cmd
		form.Comment, cmd = form.Comment.Update(msg)
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyBackspace:
		form.Backspace()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			form.InputDigit(r)
		}
	}
	return m, nil
}

// submitWorklog validates the draft, applies the edit to the local list
// immediately, and dispatches the mutation. Validation failures and
// concurrent-mutation rejections never reach the network.
func (m *Model) submitWorklog(scr *Screen) tea.Cmd {
	form := scr.Form
	w, err := form.Validate(time.Local)
	if err != nil {
		m.notices.Push(NoticeError, err.Error(), m.now())
		return nil
	}
	issueKey := scr.IssueKey
	w.IssueKey = issueKey

	if form.EditingID != "" {
		return m.dispatchUpdate(scr, form.EditingID, w)
	}
	return m.dispatchCreate(scr, w)
}

func (m *Model) dispatchCreate(scr *Screen, w model.Worklog) tea.Cmd {
	key := MutationKey("")
	tok, ok := m.dispatch.Ensure(key)
	if !ok {
		m.notices.Push(NoticeError, "another worklog is still being saved", m.now())
		return nil
	}

	placeholder := w
	placeholder.ID = fmt.Sprintf("pending-%d", tok)
	m.tracker.Begin(tok, mutationCreate, placeholder.ID, w.IssueKey, m.worklogs)
	m.worklogs = append(m.worklogs, placeholder)
	m.worklogTotal++

	m.closeWorklogForm(scr)
	m.log.Debug().Str("issue", w.IssueKey).Msg("optimistic worklog create")
	return createWorklogCmd(m.src, key, tok, w.IssueKey, w)
}

func (m *Model) dispatchUpdate(scr *Screen, worklogID string, w model.Worklog) tea.Cmd {
	if m.tracker.PendingFor(worklogID) {
		m.notices.Push(NoticeError, model.ConcurrentMutationErr(worklogID).Error(), m.now())
		return nil
	}
	key := MutationKey(worklogID)
	tok, ok := m.dispatch.Ensure(key)
	if !ok {
		m.notices.Push(NoticeError, model.ConcurrentMutationErr(worklogID).Error(), m.now())
		return nil
	}

	m.tracker.Begin(tok, mutationUpdate, worklogID, w.IssueKey, m.worklogs)
	for i := range m.worklogs {
		if m.worklogs[i].ID == worklogID {
			upd := w
			upd.ID = worklogID
			upd.Author = m.worklogs[i].Author
			m.worklogs[i] = upd
			break
		}
	}

	m.closeWorklogForm(scr)
	m.log.Debug().Str("worklog", worklogID).Msg("optimistic worklog update")
	return updateWorklogCmd(m.src, key, tok, w.IssueKey, worklogID, w)
}

func (m *Model) closeWorklogForm(scr *Screen) {
	if scr.Form != nil && scr.Form.ReturnToList {
		m.screens.ReplaceTop(Screen{Kind: ScreenWorklogList, IssueKey: scr.IssueKey})
		return
	}
	m.screens.Pop()
}

func (m *Model) editSelectedWorklog() {
	scr := m.screens.Current()
	if scr.Kind != ScreenWorklogList {
		return
	}
	w := m.selectedWorklog()
	if w == nil {
		return
	}
	if m.tracker.PendingFor(w.ID) {
		m.notices.Push(NoticeError, model.ConcurrentMutationErr(w.ID).Error(), m.now())
		return
	}
	m.screens.ReplaceTop(Screen{
		Kind:     ScreenWorklogModal,
		IssueKey: scr.IssueKey,
		Form:     EditWorklogForm(*w),
	})
}

func (m *Model) deleteSelectedWorklog() tea.Cmd {
	scr := m.screens.Current()
	if scr.Kind != ScreenWorklogList {
		return nil
	}
	w := m.selectedWorklog()
	if w == nil {
		return nil
	}
	if m.tracker.PendingFor(w.ID) {
		m.notices.Push(NoticeError, model.ConcurrentMutationErr(w.ID).Error(), m.now())
		return nil
	}
	key := MutationKey(w.ID)
	tok, ok := m.dispatch.Ensure(key)
	if !ok {
		m.notices.Push(NoticeError, model.ConcurrentMutationErr(w.ID).Error(), m.now())
		return nil
	}

	m.tracker.Begin(tok, mutationDelete, w.ID, scr.IssueKey, m.worklogs)
	worklogID := w.ID
	kept := m.worklogs[:0:0]
	for _, entry := range m.worklogs {
		if entry.ID != worklogID {
			kept = append(kept, entry)
		}
	}
	m.worklogs = kept
	if m.worklogTotal > 0 {
		m.worklogTotal--
	}
	m.worklogCursor = clamp(m.worklogCursor, len(m.worklogs))

	m.log.Debug().Str("worklog", worklogID).Msg("optimistic worklog delete")
	return deleteWorklogCmd(m.src, key, tok, scr.IssueKey, worklogID)
}

// --- result handling -----------------------------------------------------

func (m *Model) handleBoardsLoaded(msg boardsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.dispatch.Accept(BoardsKey(), msg.token) {
		return m, nil
	}
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("boards load failed")
		m.notices.Push(NoticeError, noticeText(msg.err), m.now())
		return m, nil
	}
	m.boards = msg.boards
	m.boardCursor = clamp(m.boardCursor, len(m.boards))
	return m, nil
}

func (m *Model) handleIssuesLoaded(msg issuesLoadedMsg) (tea.Model, tea.Cmd) {
	// Results for a superseded generation or a cancelled request do not
	// match the latest token for their key and are dropped here, without
	// side effects.
	if !m.dispatch.Accept(msg.key, msg.token) {
		m.log.Debug().Str("key", string(msg.key)).Msg("stale issues page dropped")
		return m, nil
	}
	if msg.err != nil {
		m.page.FailLoad()
		m.log.Error().Err(msg.err).Msg("issues load failed")
		m.notices.Push(NoticeError, noticeText(msg.err), m.now())
		return m, nil
	}

	// Pages append in arrival order; the server's declared order is
	// preserved.
	m.issues = append(m.issues, msg.page.Items...)
	m.page.CommitPage(len(msg.page.Items), msg.page.Total)
	m.issueCursor = clamp(m.issueCursor, len(m.issues))

	// The selection may already sit near the end of the grown list.
	return m, m.maybeLoadMore()
}

func (m *Model) handleIssueLoaded(msg issueLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.dispatch.Accept(IssueKey(msg.issueKey), msg.token) {
		return m, nil
	}
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("issue", msg.issueKey).Msg("issue load failed")
		m.notices.Push(NoticeError, noticeText(msg.err), m.now())
		return m, nil
	}
	if m.openIssueKey() != msg.issueKey {
		return m, nil
	}
	iss := msg.issue
	m.detailIssue = &iss
	if m.detailReady {
		m.detail.SetContent(m.detailContent())
	}
	return m, nil
}

func (m *Model) handleWorklogsLoaded(msg worklogsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.dispatch.Accept(WorklogsKey(msg.issueKey), msg.token) {
		return m, nil
	}
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("issue", msg.issueKey).Msg("worklogs load failed")
		m.notices.Push(NoticeError, noticeText(msg.err), m.now())
		return m, nil
	}
	if m.openIssueKey() != msg.issueKey {
		return m, nil
	}
	m.worklogs = msg.page.Items
	m.worklogTotal = msg.page.Total
	m.worklogCursor = clamp(m.worklogCursor, len(m.worklogs))
	return m, nil
}

func (m *Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	pm, known := m.tracker.Resolve(msg.token)
	if !m.dispatch.Accept(msg.key, msg.token) {
		return m, nil
	}
	if !known {
		return m, nil
	}

	if msg.err != nil {
		// Exact rollback: restore the pre-mutation snapshot, but only
		// when the visible list still belongs to the same issue.
		if pm.issueKey == m.openIssueKey() {
			m.worklogs = pm.snapshot
			m.worklogTotal = len(pm.snapshot)
			m.worklogCursor = clamp(m.worklogCursor, len(m.worklogs))
		}
		m.log.Error().Err(msg.err).Str("worklog", pm.worklogID).Msg("worklog mutation failed")
		m.notices.Push(NoticeError, noticeText(msg.err), m.now())
		return m, nil
	}

	if pm.issueKey == m.openIssueKey() {
		switch pm.kind {
		case mutationCreate, mutationUpdate:
			// Full replace with the server payload: the authoritative id
			// and computed fields win over the optimistic copy.
			for i := range m.worklogs {
				if m.worklogs[i].ID == pm.worklogID {
					if msg.worklog.ID != "" {
						m.worklogs[i] = msg.worklog
					}
					break
				}
			}
		}
	}
	m.notices.Push(NoticeSuccess, "Worklog "+pm.kind.String(), m.now())
	return m, nil
}

// --- boards search -------------------------------------------------------

func (m *Model) updateBoardSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.searchInput.Reset()
		m.boardCursor = 0
		return m, nil
	case "enter":
		return m, m.openBacklog()
	case "down":
		m.moveCursor(1)
		return m, nil
	case "up":
		m.moveCursor(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.boardCursor = 0
	return m, cmd
}

// visibleBoardIndexes returns indexes into m.boards for the rows the
// boards screen shows, honoring the fuzzy search query.
func (m *Model) visibleBoardIndexes() []int {
	query := m.searchInput.Value()
	if !m.searching || query == "" {
		idx := make([]int, len(m.boards))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	names := make([]string, len(m.boards))
	for i, b := range m.boards {
		names[i] = b.Name + " " + b.ProjectKey
	}
	matches := fuzzy.Find(query, names)
	idx := make([]int, len(matches))
	for i, mt := range matches {
		idx[i] = mt.Index
	}
	return idx
}

// --- selection helpers ---------------------------------------------------

func (m *Model) selectedBoard() *model.Board {
	vis := m.visibleBoardIndexes()
	if len(vis) == 0 {
		return nil
	}
	return &m.boards[vis[clamp(m.boardCursor, len(vis))]]
}

func (m *Model) selectedIssue() *model.Issue {
	if len(m.issues) == 0 {
		return nil
	}
	return &m.issues[clamp(m.issueCursor, len(m.issues))]
}

func (m *Model) selectedWorklog() *model.Worklog {
	if len(m.worklogs) == 0 {
		return nil
	}
	return &m.worklogs[clamp(m.worklogCursor, len(m.worklogs))]
}

// openIssueKey returns the issue key the current screen context is
// scoped to, or "" outside the detail flow.
func (m *Model) openIssueKey() string {
	if scr := m.screens.Current(); scr.IssueKey != "" {
		return scr.IssueKey
	}
	if base := m.screens.Base(); base.Kind == ScreenIssueDetail {
		return base.IssueKey
	}
	return ""
}

// --- misc ----------------------------------------------------------------

func (m *Model) refresh() tea.Cmd {
	switch m.screens.Current().Kind {
	case ScreenBoards:
		tok := m.dispatch.Dispatch(BoardsKey())
		return loadBoardsCmd(m.src, tok)
	case ScreenWorklogList:
		key := m.screens.Current().IssueKey
		tok := m.dispatch.Dispatch(WorklogsKey(key))
		return loadWorklogsCmd(m.src, tok, key, 0, worklogPageSize)
	}
	return nil
}

func (m *Model) copyIssueKey() {
	var key string
	switch m.screens.Current().Kind {
	case ScreenBacklog:
		if iss := m.selectedIssue(); iss != nil {
			key = iss.Key
		}
	case ScreenIssueDetail:
		key = m.screens.Current().IssueKey
	}
	if key == "" {
		return
	}
	if err := clipboard.WriteAll(key); err != nil {
		m.log.Warn().Err(err).Msg("clipboard write failed")
		return
	}
	m.notices.Push(NoticeSuccess, "Copied "+key, m.now())
}

// noticeText condenses an error for the notification line.
func noticeText(err error) string {
	switch model.KindOf(err) {
	case model.KindTransport:
		return "Network error, try again"
	default:
		return err.Error()
	}
}
