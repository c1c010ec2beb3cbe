package ui

import (
	"github.com/atomicstack/tmux-popup-compose/internal/logging/events"
	"github.com/atomicstack/tmux-popup-compose/internal/mouse"
	"github.com/atomicstack/tmux-popup-compose/internal/surface"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	regionSurface = "surface"
	regionMenu    = "menu"
	regionMenuRow = "menu-row"
)

// pointerListener observes mouse presses before the model routes them. It
// returns true to consume the press.
type pointerListener func(tea.MouseMsg) bool

func (m *Model) addPointerListener(l pointerListener) int {
	m.nextListener++
	m.listeners[m.nextListener] = l
	return m.nextListener
}

func (m *Model) removePointerListener(id int) {
	delete(m.listeners, id)
}

// PointerListeners returns how many pointer listeners are attached.
func (m *Model) PointerListeners() int {
	return len(m.listeners)
}

// acquireDismissal attaches the outside-press listener for the open menu.
// Only one is ever attached.
func (m *Model) acquireDismissal() {
	if m.dismissal != 0 {
		return
	}
	m.dismissal = m.addPointerListener(m.dismissOnOutsidePress)
}

func (m *Model) releaseDismissal() {
	if m.dismissal == 0 {
		return
	}
	m.removePointerListener(m.dismissal)
	m.dismissal = 0
}

// dismissOnOutsidePress closes the menu and disarms the trigger when a press
// lands outside both the surface and the menu. Text is left alone.
func (m *Model) dismissOnOutsidePress(ev tea.MouseMsg) bool {
	if !m.menu.IsOpen() {
		return false
	}
	if m.buffer.Contains(ev.X, ev.Y) || m.menuRect().Contains(ev.X, ev.Y) {
		return false
	}
	m.dismiss(events.TriggerReasonOutside, events.MenuReasonOutside)
	return true
}

func (m *Model) notifyPointerListeners(ev tea.MouseMsg) bool {
	if len(m.listeners) == 0 {
		return false
	}
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	consumed := false
	for _, id := range ids {
		l, ok := m.listeners[id]
		if !ok {
			continue
		}
		if l(ev) {
			consumed = true
		}
	}
	return consumed
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch {
	case ev.Action == tea.MouseActionPress && !tea.MouseEvent(ev).IsWheel():
		return m.handlePress(ev)
	case ev.Action == tea.MouseActionMotion:
		if region := m.hits.Test(ev.X, ev.Y); region != nil && region.ID == regionMenuRow {
			if idx, ok := region.Data.(int); ok && m.menu.Hover(idx) {
				events.Menu.Cursor(m.menu.Cursor)
			}
		}
	case ev.Button == tea.MouseButtonWheelUp:
		if m.menu.IsOpen() && m.menuRect().Contains(ev.X, ev.Y) && m.menu.MoveUp() {
			m.noteMenuCursor()
		}
	case ev.Button == tea.MouseButtonWheelDown:
		if m.menu.IsOpen() && m.menuRect().Contains(ev.X, ev.Y) && m.menu.MoveDown() {
			m.noteMenuCursor()
		}
	}
	return nil
}

func (m *Model) handlePress(ev tea.MouseMsg) tea.Cmd {
	if m.notifyPointerListeners(ev) {
		return nil
	}
	if ev.Button != tea.MouseButtonLeft {
		return nil
	}
	region := m.hits.Test(ev.X, ev.Y)
	if region == nil {
		return nil
	}
	switch region.ID {
	case regionMenuRow:
		idx, ok := region.Data.(int)
		if !ok || idx < 0 || idx >= len(m.menu.Items) {
			return nil
		}
		m.menu.Hover(idx)
		return m.commit(m.menu.Items[idx])
	case regionSurface:
		m.buffer.Focus()
		if !m.placeCursor(ev.X, ev.Y) {
			return nil
		}
		m.caretDirty = true
		return m.refreshTrigger()
	}
	return nil
}

// syncLayout records where the surface and menu are drawn so presses can be
// hit tested against the last rendered frame.
func (m *Model) syncLayout() {
	layout := m.buffer.Layout(m.width)
	rows := m.scrollToCaret(layout)
	if rows == 0 {
		rows = len(layout.Lines)
	}
	m.buffer.SetBounds(mouse.Rect{X: 0, Y: 0, W: m.width, H: rows})

	m.hits.Clear()
	m.hits.Add(regionSurface, m.buffer.Bounds(), nil)
	if !m.menu.IsOpen() {
		return
	}
	rect := m.menuRect()
	m.hits.Add(regionMenu, rect, nil)
	start, end := m.menu.VisibleRange(m.maxVisible)
	for i := start; i < end; i++ {
		m.hits.Add(regionMenuRow, mouse.Rect{X: rect.X, Y: rect.Y + i - start, W: rect.W, H: 1}, i)
	}
}

// scrollToCaret keeps the caret row inside the visible surface rows and
// returns that row count, or 0 when the surface height is unbounded.
func (m *Model) scrollToCaret(layout surface.Layout) int {
	rows := m.surfaceRows()
	if rows <= 0 {
		m.scroll = 0
		return 0
	}
	if layout.CaretY < m.scroll {
		m.scroll = layout.CaretY
	}
	if layout.CaretY >= m.scroll+rows {
		m.scroll = layout.CaretY - rows + 1
	}
	return rows
}
