package state

import (
	"testing"

	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
)

func newTestMenu(labels ...string) *Menu {
	items := make([]candidate.Candidate, len(labels))
	for i, label := range labels {
		items[i] = candidate.Candidate{ID: label, Label: label}
	}
	m := &Menu{}
	m.Open(items, Point{})
	return m
}

func TestMoveCursorHome(t *testing.T) {
	m := newTestMenu("a", "b", "c")
	m.Cursor = 2
	if !m.MoveCursorHome() {
		t.Fatalf("expected move when items exist")
	}
	if m.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor)
	}

	empty := &Menu{}
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty menu")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorEnd(t *testing.T) {
	m := newTestMenu("a", "b", "c")
	if !m.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if m.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", m.Cursor)
	}
	if m.MoveCursorEnd() {
		t.Fatalf("expected no movement when already at end")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	m := newTestMenu("a", "b", "c", "d", "e")
	if !m.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if m.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", m.Cursor)
	}
	if !m.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on second page down")
	}
	if m.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", m.Cursor)
	}
	if m.MoveCursorPageDown(2) {
		t.Fatalf("expected paging to stop at the last row")
	}
	if !m.MoveCursorPageUp(2) {
		t.Fatalf("expected movement on page up")
	}
	if m.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page up, got %d", m.Cursor)
	}
	if !m.MoveCursorPageUp(10) {
		t.Fatalf("expected oversized page to reach the top")
	}
	if m.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor)
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	m := newTestMenu("a", "b", "c", "d", "e", "f", "g", "h")
	m.Cursor = 7
	m.EnsureCursorVisible(3)
	if m.ViewportOffset != 5 {
		t.Fatalf("expected offset 5 to show last row, got %d", m.ViewportOffset)
	}
	m.Cursor = 1
	m.EnsureCursorVisible(3)
	if m.ViewportOffset != 1 {
		t.Fatalf("expected offset 1 after moving up, got %d", m.ViewportOffset)
	}
	m.Cursor = 2
	m.EnsureCursorVisible(3)
	if m.ViewportOffset != 1 {
		t.Fatalf("expected offset unchanged while row is visible, got %d", m.ViewportOffset)
	}
	m.EnsureCursorVisible(0)
	if m.ViewportOffset != 0 {
		t.Fatalf("expected offset reset without a viewport limit, got %d", m.ViewportOffset)
	}
}

func TestEnsureCursorVisibleAfterWrap(t *testing.T) {
	m := newTestMenu("a", "b", "c", "d", "e")
	m.MoveUp()
	m.EnsureCursorVisible(2)
	if m.Cursor != 4 || m.ViewportOffset != 3 {
		t.Fatalf("expected wrapped cursor 4 at offset 3, got %d/%d", m.Cursor, m.ViewportOffset)
	}
	m.MoveDown()
	m.EnsureCursorVisible(2)
	if m.Cursor != 0 || m.ViewportOffset != 0 {
		t.Fatalf("expected wrapped cursor 0 at offset 0, got %d/%d", m.Cursor, m.ViewportOffset)
	}
}

func TestVisibleRange(t *testing.T) {
	m := newTestMenu("a", "b", "c", "d")
	m.ViewportOffset = 3
	start, end := m.VisibleRange(2)
	if start != 2 || end != 4 {
		t.Fatalf("expected clamped range [2,4), got [%d,%d)", start, end)
	}
	start, end = m.VisibleRange(10)
	if start != 0 || end != 4 {
		t.Fatalf("expected full range, got [%d,%d)", start, end)
	}
}
