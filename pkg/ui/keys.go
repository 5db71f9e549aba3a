package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Command is the enumerated input-command set understood by the screens.
// The router maps raw key events to commands based on the active screen;
// everything else in the update loop works in terms of commands.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdBack
	CmdUp
	CmdDown
	CmdSelect
	CmdOpenFilter
	CmdOpenWorklogForm
	CmdOpenWorklogList
	CmdNextField
	CmdPrevField
	CmdCycleValue
	CmdSubmit
	CmdEdit
	CmdDelete
	CmdRefresh
	CmdCopyKey
	CmdSearch
)

// commandFor routes a key event to a command for the active screen.
// The worklog modal and active text inputs are handled before this is
// consulted, so free-form character input never reaches the router.
func commandFor(msg tea.KeyMsg, scr *Screen) Command {
	key := msg.String()

	switch scr.Kind {
	case ScreenBoards:
		switch key {
		case "q", "ctrl+c":
			return CmdQuit
		case "j", "down":
			return CmdDown
		case "k", "up":
			return CmdUp
		case "enter":
			return CmdSelect
		case "r":
			return CmdRefresh
		case "/":
			return CmdSearch
		}

	case ScreenBacklog:
		switch key {
		case "q", "ctrl+c":
			return CmdQuit
		case "esc", "b":
			return CmdBack
		case "j", "down":
			return CmdDown
		case "k", "up":
			return CmdUp
		case "enter":
			return CmdSelect
		case "f":
			return CmdOpenFilter
		case "y":
			return CmdCopyKey
		}

	case ScreenIssueDetail:
		switch key {
		case "q", "ctrl+c":
			return CmdQuit
		case "esc":
			return CmdBack
		case "j", "down":
			return CmdDown
		case "k", "up":
			return CmdUp
		case "w":
			return CmdOpenWorklogForm
		case "l":
			return CmdOpenWorklogList
		case "y":
			return CmdCopyKey
		}

	case ScreenFilterModal:
		switch key {
		case "ctrl+c":
			return CmdQuit
		case "esc":
			return CmdBack
		case "enter":
			return CmdSubmit
		case "tab", "j", "down":
			return CmdNextField
		case "shift+tab", "k", "up":
			return CmdPrevField
		case "h", "left", "l", "right", " ":
			return CmdCycleValue
		}

	case ScreenWorklogList:
		switch key {
		case "q", "ctrl+c":
			return CmdQuit
		case "esc":
			return CmdBack
		case "j", "down":
			return CmdDown
		case "k", "up":
			return CmdUp
		case "enter", "e":
			return CmdEdit
		case "d":
			return CmdDelete
		case "r":
			return CmdRefresh
		}

	case ScreenWorklogModal:
		// Handled in updateWorklogModal; only the panic exit routes here.
		if key == "ctrl+c" {
			return CmdQuit
		}
	}

	return CmdNone
}
