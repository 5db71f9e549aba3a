package ui

import (
	"time"
)

const (
	// visibleNotices caps how many notices render at once.
	visibleNotices = 3

	successTTL = 3 * time.Second
	errorTTL   = 5 * time.Second
)

// NoticeLevel is the severity of a transient notification.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeError
)

// Notice is one transient message shown in the status area.
type Notice struct {
	Level     NoticeLevel
	Message   string
	CreatedAt time.Time
}

func (n Notice) ttl() time.Duration {
	if n.Level == NoticeError {
		return errorTTL
	}
	return successTTL
}

// NoticeQueue holds pending notifications in FIFO order. The oldest
// expires first; at most visibleNotices are rendered.
type NoticeQueue struct {
	items []Notice
}

// Push appends a notification.
func (q *NoticeQueue) Push(level NoticeLevel, message string, now time.Time) {
	q.items = append(q.items, Notice{Level: level, Message: message, CreatedAt: now})
}

// Expire drops notices from the front whose display time has elapsed.
func (q *NoticeQueue) Expire(now time.Time) {
	i := 0
	for i < len(q.items) && now.Sub(q.items[i].CreatedAt) > q.items[i].ttl() {
		i++
	}
	if i > 0 {
		q.items = q.items[i:]
	}
}

// Visible returns the notices to render, oldest first.
func (q *NoticeQueue) Visible() []Notice {
	if len(q.items) > visibleNotices {
		return q.items[:visibleNotices]
	}
	return q.items
}

// Dismiss drops the oldest notice, if any.
func (q *NoticeQueue) Dismiss() {
	if len(q.items) > 0 {
		q.items = q.items[1:]
	}
}

// Len returns the number of queued notices, including ones beyond the
// visible cap.
func (q *NoticeQueue) Len() int {
	return len(q.items)
}
