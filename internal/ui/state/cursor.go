package state

// MoveCursorHome highlights the first row.
func (m *Menu) MoveCursorHome() bool {
	if len(m.Items) == 0 {
		m.Cursor = 0
		return false
	}
	old := m.Cursor
	m.Cursor = 0
	return old != m.Cursor
}

// MoveCursorEnd highlights the last row.
func (m *Menu) MoveCursorEnd() bool {
	n := len(m.Items)
	if n == 0 {
		m.Cursor = 0
		return false
	}
	old := m.Cursor
	m.Cursor = n - 1
	return old != m.Cursor
}

// MoveCursorPageUp moves the highlight up by the given page size.
func (m *Menu) MoveCursorPageUp(maxVisible int) bool {
	return m.moveCursorBy(-m.pageSize(maxVisible))
}

// MoveCursorPageDown moves the highlight down by the given page size.
func (m *Menu) MoveCursorPageDown(maxVisible int) bool {
	return m.moveCursorBy(m.pageSize(maxVisible))
}

// paging clamps instead of wrapping
func (m *Menu) moveCursorBy(delta int) bool {
	if len(m.Items) == 0 {
		m.Cursor = 0
		return false
	}
	old := m.Cursor
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(m.Items) {
		m.Cursor = len(m.Items) - 1
	}
	return m.Cursor != old
}

func (m *Menu) pageSize(maxVisible int) int {
	total := len(m.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the highlight stays visible.
func (m *Menu) EnsureCursorVisible(maxVisible int) {
	if len(m.Items) == 0 {
		m.Cursor = 0
		m.ViewportOffset = 0
		return
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(m.Items) {
		m.Cursor = len(m.Items) - 1
	}
	if maxVisible <= 0 {
		m.ViewportOffset = 0
		return
	}
	maxOffset := len(m.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.ViewportOffset > maxOffset {
		m.ViewportOffset = maxOffset
	}
	if m.ViewportOffset < 0 {
		m.ViewportOffset = 0
	}
	if m.Cursor < m.ViewportOffset {
		m.ViewportOffset = m.Cursor
	}
	if upper := m.ViewportOffset + maxVisible - 1; m.Cursor > upper {
		m.ViewportOffset = m.Cursor - maxVisible + 1
	}
}
