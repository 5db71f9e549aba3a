package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jiratime/jiratime/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired with extended semantic colors
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	// Accent colors
	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorDanger  = lipgloss.Color("#FF5555")

	// Status colors
	ColorStatusToDo       = lipgloss.Color("#FFB86C")
	ColorStatusInProgress = lipgloss.Color("#8BE9FD")
	ColorStatusDone       = lipgloss.Color("#50FA7B")
	ColorStatusOther      = lipgloss.Color("#6272A4")
)

// chromeHeight is the vertical space consumed by the header, footer and
// notification area around the main content.
const chromeHeight = 6

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgHighlight).
				Bold(true).
				Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	titleStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	successNoticeStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Padding(0, 1)

	errorNoticeStyle = lipgloss.NewStyle().
				Foreground(ColorDanger).
				Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// statusColor returns the badge color for an issue status.
func statusColor(s model.Status) lipgloss.Color {
	switch s {
	case model.StatusToDo:
		return ColorStatusToDo
	case model.StatusInProgress:
		return ColorStatusInProgress
	case model.StatusDone:
		return ColorStatusDone
	default:
		return ColorStatusOther
	}
}
