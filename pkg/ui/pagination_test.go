package ui

import (
	"testing"
)

func TestPageCursor_ShouldLoadMoreThreshold(t *testing.T) {
	c := NewPageCursor(20)

	// 20 rows loaded, cursor far from the end.
	if c.ShouldLoadMore(0, 20) {
		t.Error("Should not load with the cursor far from the end")
	}
	// Within the threshold.
	if !c.ShouldLoadMore(15, 20) {
		t.Error("Should load within threshold of the end")
	}
	if !c.ShouldLoadMore(19, 20) {
		t.Error("Should load at the end")
	}
}

func TestPageCursor_NoLoadWhileLoading(t *testing.T) {
	c := NewPageCursor(20)
	c.BeginLoad()
	if c.ShouldLoadMore(19, 20) {
		t.Error("Should not load while a request is in flight")
	}
}

func TestPageCursor_NoLoadWhenExhausted(t *testing.T) {
	c := NewPageCursor(20)
	c.BeginLoad()
	c.CommitPage(12, 12) // 12 of 12 loaded
	if c.HasMore {
		t.Fatal("Expected exhaustion after the last page")
	}
	if c.ShouldLoadMore(11, 12) {
		t.Error("Should not load past the last page")
	}
}

func TestPageCursor_CommitAdvancesOffset(t *testing.T) {
	c := NewPageCursor(20)

	if got := c.BeginLoad(); got != 0 {
		t.Fatalf("Expected first load at offset 0, got %d", got)
	}
	c.CommitPage(20, 50)
	if c.Loading {
		t.Error("Commit must clear the loading flag")
	}
	if !c.HasMore {
		t.Error("Expected more pages (20 of 50)")
	}
	if got := c.BeginLoad(); got != 20 {
		t.Fatalf("Expected second load at offset 20, got %d", got)
	}
}

func TestPageCursor_FailLoadAllowsRetry(t *testing.T) {
	c := NewPageCursor(20)
	c.BeginLoad()
	c.FailLoad()
	if !c.ShouldLoadMore(0, 0) {
		t.Error("A failed load should be retryable")
	}
	if c.StartAt != 0 {
		t.Error("A failed load must not advance the offset")
	}
}

func TestPageCursor_ResetReturnsToInitialState(t *testing.T) {
	c := NewPageCursor(20)
	c.BeginLoad()
	c.CommitPage(20, 20)

	c.Reset()
	if c.StartAt != 0 || !c.HasMore || c.Loading {
		t.Errorf("Reset should restore the initial state, got %+v", c)
	}
}
