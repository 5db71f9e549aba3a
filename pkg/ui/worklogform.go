package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jiratime/jiratime/pkg/model"
)

// WorklogField is the focused input inside the worklog modal.
type WorklogField int

const (
	FieldDay WorklogField = iota
	FieldMonth
	FieldYear
	FieldHour
	FieldMinute
	FieldDurHours
	FieldDurMinutes
	FieldComment
)

// fieldCount is the number of cycleable fields.
const fieldCount = 8

// Label returns the caption rendered next to the field
func (f WorklogField) Label() string {
	switch f {
	case FieldDay:
		return "Day"
	case FieldMonth:
		return "Month"
	case FieldYear:
		return "Year"
	case FieldHour:
		return "Hour"
	case FieldMinute:
		return "Minute"
	case FieldDurHours:
		return "Hours spent"
	case FieldDurMinutes:
		return "Minutes spent"
	default:
		return "Comment"
	}
}

// maxLen is the digit budget for a numeric field.
func (f WorklogField) maxLen() int {
	if f == FieldYear {
		return 4
	}
	return 2
}

// WorklogForm is the draft state of the worklog modal. It exists only
// while the modal is open and is discarded on cancel or save.
type WorklogForm struct {
	// EditingID is empty in create mode, the worklog id in edit mode.
	EditingID string

	// ReturnToList is set when the form was opened from the worklog list
	// modal, so closing it goes back there instead of the detail screen.
	ReturnToList bool

	Day, Month, Year string
	Hour, Minute     string
	DurHours         string
	DurMinutes       string
	Comment          textinput.Model

	Focus WorklogField
}

func newCommentInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "What did you work on?"
	ti.CharLimit = 250
	ti.Prompt = ""
	return ti
}

// NewWorklogForm returns a create-mode form prefilled with the current
// date and time.
func NewWorklogForm(now time.Time) *WorklogForm {
	return &WorklogForm{
		Day:     fmt.Sprintf("%02d", now.Day()),
		Month:   fmt.Sprintf("%02d", int(now.Month())),
		Year:    strconv.Itoa(now.Year()),
		Hour:    fmt.Sprintf("%02d", now.Hour()),
		Minute:  fmt.Sprintf("%02d", now.Minute()),
		Comment: newCommentInput(),
	}
}

// EditWorklogForm returns an edit-mode form prefilled from an existing
// entry. Times render in the local zone.
func EditWorklogForm(w model.Worklog) *WorklogForm {
	started := w.StartedAt.Local()
	dur := w.TimeSpentSeconds
	f := &WorklogForm{
		EditingID:    w.ID,
		ReturnToList: true,
		Day:          fmt.Sprintf("%02d", started.Day()),
		Month:        fmt.Sprintf("%02d", int(started.Month())),
		Year:         strconv.Itoa(started.Year()),
		Hour:         fmt.Sprintf("%02d", started.Hour()),
		Minute:       fmt.Sprintf("%02d", started.Minute()),
		DurHours:     strconv.Itoa(dur / 3600),
		DurMinutes:   strconv.Itoa(dur % 3600 / 60),
		Comment:      newCommentInput(),
	}
	f.Comment.SetValue(w.Comment)
	return f
}

// NextField moves focus to the following field, wrapping around.
func (f *WorklogForm) NextField() {
	f.setFocus((f.Focus + 1) % fieldCount)
}

// PrevField moves focus to the preceding field, wrapping around.
func (f *WorklogForm) PrevField() {
	f.setFocus((f.Focus + fieldCount - 1) % fieldCount)
}

func (f *WorklogForm) setFocus(field WorklogField) {
	f.Focus = field
	if field == FieldComment {
		f.Comment.Focus()
	} else {
		f.Comment.Blur()
	}
}

// buffer returns the numeric buffer for the focused field, or nil when
// the comment input has focus.
func (f *WorklogForm) buffer() *string {
	switch f.Focus {
	case FieldDay:
		return &f.Day
	case FieldMonth:
		return &f.Month
	case FieldYear:
		return &f.Year
	case FieldHour:
		return &f.Hour
	case FieldMinute:
		return &f.Minute
	case FieldDurHours:
		return &f.DurHours
	case FieldDurMinutes:
		return &f.DurMinutes
	default:
		return nil
	}
}

// InputDigit appends a digit to the focused numeric field.
func (f *WorklogForm) InputDigit(r rune) {
	buf := f.buffer()
	if buf == nil || r < '0' || r > '9' {
		return
	}
	if len(*buf) >= f.Focus.maxLen() {
		*buf = ""
	}
	*buf += string(r)
}

// Backspace removes the last digit from the focused numeric field.
func (f *WorklogForm) Backspace() {
	buf := f.buffer()
	if buf == nil || len(*buf) == 0 {
		return
	}
	*buf = (*buf)[:len(*buf)-1]
}

// Validate checks the draft structurally and converts it to a worklog.
// Nothing is dispatched when this fails; the error is a local
// Validation error and never reaches the network.
func (f *WorklogForm) Validate(loc *time.Location) (model.Worklog, error) {
	day, err := fieldInt(f.Day)
	if err != nil {
		return model.Worklog{}, model.ValidationErr("day is not a number")
	}
	month, err := fieldInt(f.Month)
	if err != nil {
		return model.Worklog{}, model.ValidationErr("month is not a number")
	}
	year, err := fieldInt(f.Year)
	if err != nil {
		return model.Worklog{}, model.ValidationErr("year is not a number")
	}
	hour, err := fieldInt(f.Hour)
	if err != nil {
		return model.Worklog{}, model.ValidationErr("hour is not a number")
	}
	minute, err := fieldInt(f.Minute)
	if err != nil {
		return model.Worklog{}, model.ValidationErr("minute is not a number")
	}

	started := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if started.Year() != year || started.Month() != time.Month(month) ||
		started.Day() != day || started.Hour() != hour || started.Minute() != minute {
		return model.Worklog{}, model.ValidationErr("invalid date or time")
	}

	durHours := 0
	if f.DurHours != "" {
		if durHours, err = fieldInt(f.DurHours); err != nil {
			return model.Worklog{}, model.ValidationErr("hours spent is not a number")
		}
	}
	durMinutes := 0
	if f.DurMinutes != "" {
		if durMinutes, err = fieldInt(f.DurMinutes); err != nil {
			return model.Worklog{}, model.ValidationErr("minutes spent is not a number")
		}
	}
	seconds := durHours*3600 + durMinutes*60
	if seconds <= 0 {
		return model.Worklog{}, model.ValidationErr("duration must be greater than zero")
	}

	return model.Worklog{
		ID:               f.EditingID,
		TimeSpentSeconds: seconds,
		Comment:          f.Comment.Value(),
		StartedAt:        started,
	}, nil
}

func fieldInt(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}
