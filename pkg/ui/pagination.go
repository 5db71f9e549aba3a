package ui

// loadMoreThreshold is how close (in rows) the cursor must be to the end
// of the loaded list before the next page is requested.
const loadMoreThreshold = 5

// PageCursor tracks offset pagination for one remote list. It is pure
// bookkeeping: the owning screen appends items and asks the cursor when
// to fetch more.
type PageCursor struct {
	StartAt  int
	PageSize int
	HasMore  bool
	Loading  bool
}

// NewPageCursor returns a cursor at the initial empty position.
func NewPageCursor(pageSize int) PageCursor {
	return PageCursor{PageSize: pageSize, HasMore: true}
}

// ShouldLoadMore reports whether the next page should be requested given
// the selection position and the number of rows currently loaded. True
// only when the cursor is within loadMoreThreshold rows of the end, more
// pages exist, and no load is already running.
func (c *PageCursor) ShouldLoadMore(cursor, loaded int) bool {
	return c.HasMore && !c.Loading && loaded-cursor <= loadMoreThreshold
}

// BeginLoad marks a page request as in flight and returns the offset the
// request should carry.
func (c *PageCursor) BeginLoad() int {
	c.Loading = true
	return c.StartAt
}

// CommitPage advances past a received page. count is the number of items
// in the page, total the server-reported total.
func (c *PageCursor) CommitPage(count, total int) {
	c.Loading = false
	c.StartAt += count
	c.HasMore = c.StartAt < total
}

// FailLoad clears the loading flag after a failed page request so a later
// scroll can retry.
func (c *PageCursor) FailLoad() {
	c.Loading = false
}

// Reset returns the cursor to its initial empty position. Called on
// filter change and on screen re-entry.
func (c *PageCursor) Reset() {
	c.StartAt = 0
	c.HasMore = true
	c.Loading = false
}
