package state

import "github.com/atomicstack/tmux-popup-compose/internal/candidate"

// Point is a cell coordinate on screen.
type Point struct {
	X int
	Y int
}

// Menu holds the candidate menu: its items, the highlighted row, the scroll
// offset and the screen position it was opened at. A closed menu has no
// items and no highlight.
type Menu struct {
	Items          []candidate.Candidate
	Cursor         int
	ViewportOffset int
	Position       Point

	open bool
}

// Open shows items at pos with the first row highlighted. Opening with no
// items leaves the menu closed.
func (m *Menu) Open(items []candidate.Candidate, pos Point) bool {
	if len(items) == 0 {
		m.Close()
		return false
	}
	m.Items = candidate.Clone(items)
	m.Cursor = 0
	m.ViewportOffset = 0
	m.Position = pos
	m.open = true
	return true
}

// IsOpen reports whether the menu is showing.
func (m *Menu) IsOpen() bool {
	return m.open
}

// Close hides the menu and forgets its items.
func (m *Menu) Close() {
	m.Items = nil
	m.Cursor = 0
	m.ViewportOffset = 0
	m.open = false
}

// SetItems replaces the items of an open menu. The highlighted candidate
// stays highlighted when it is still present; otherwise the highlight is
// clamped to the new list. It returns false, closing the menu, when items is
// empty.
func (m *Menu) SetItems(items []candidate.Candidate) bool {
	if !m.open {
		return false
	}
	if len(items) == 0 {
		m.Close()
		return false
	}
	prev, hadPrev := m.Selected()
	m.Items = candidate.Clone(items)
	if hadPrev {
		if idx := m.IndexOf(prev.Key()); idx >= 0 {
			m.Cursor = idx
			return true
		}
	}
	if m.Cursor >= len(m.Items) {
		m.Cursor = len(m.Items) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return true
}

// IndexOf returns the row holding the candidate with the given key, or -1.
func (m *Menu) IndexOf(key string) int {
	if key == "" {
		return -1
	}
	for i, item := range m.Items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

// Selected returns the highlighted candidate.
func (m *Menu) Selected() (candidate.Candidate, bool) {
	if !m.open || m.Cursor < 0 || m.Cursor >= len(m.Items) {
		return candidate.Candidate{}, false
	}
	return m.Items[m.Cursor], true
}

// MoveDown highlights the next row, wrapping from the last row to the first.
func (m *Menu) MoveDown() bool {
	n := len(m.Items)
	if !m.open || n == 0 {
		return false
	}
	old := m.Cursor
	m.Cursor = (m.Cursor + 1) % n
	return old != m.Cursor
}

// MoveUp highlights the previous row, wrapping from the first row to the last.
func (m *Menu) MoveUp() bool {
	n := len(m.Items)
	if !m.open || n == 0 {
		return false
	}
	old := m.Cursor
	m.Cursor = (m.Cursor - 1 + n) % n
	return old != m.Cursor
}

// Hover highlights row idx.
func (m *Menu) Hover(idx int) bool {
	if !m.open || idx < 0 || idx >= len(m.Items) || idx == m.Cursor {
		return false
	}
	m.Cursor = idx
	return true
}

// VisibleRange returns the half-open range of rows currently in view.
func (m *Menu) VisibleRange(maxVisible int) (int, int) {
	n := len(m.Items)
	if maxVisible <= 0 || maxVisible > n {
		return 0, n
	}
	start := m.ViewportOffset
	if start < 0 {
		start = 0
	}
	if start > n-maxVisible {
		start = n - maxVisible
	}
	return start, start + maxVisible
}
