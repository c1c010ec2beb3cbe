package ui

import (
	"unicode"

	"github.com/atomicstack/tmux-popup-compose/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit()
	case key.Matches(keyMsg, m.keys.Submit):
		return m.submit()
	}
	if m.menu.IsOpen() {
		if handled, cmd := m.handleMenuKey(keyMsg); handled {
			return cmd
		}
	}
	if key.Matches(keyMsg, m.keys.Dismiss) {
		if m.armed != nil {
			m.dismiss(events.TriggerReasonDismiss, events.MenuReasonEscape)
			return nil
		}
		return m.quit()
	}
	if !m.buffer.Focused() {
		return nil
	}
	return m.handleTextInput(keyMsg)
}

// handleMenuKey consumes the keys the open menu owns. It always reads the
// live menu so a re-filtered list is what gets navigated or committed.
func (m *Model) handleMenuKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.MenuDown):
		if m.menu.MoveDown() {
			m.noteMenuCursor()
		}
		return true, nil
	case key.Matches(msg, m.keys.MenuUp):
		if m.menu.MoveUp() {
			m.noteMenuCursor()
		}
		return true, nil
	case key.Matches(msg, m.keys.MenuPageDown):
		if m.menu.MoveCursorPageDown(m.maxVisible) {
			m.noteMenuCursor()
		}
		return true, nil
	case key.Matches(msg, m.keys.MenuPageUp):
		if m.menu.MoveCursorPageUp(m.maxVisible) {
			m.noteMenuCursor()
		}
		return true, nil
	case key.Matches(msg, m.keys.MenuFirst):
		if m.menu.MoveCursorHome() {
			m.noteMenuCursor()
		}
		return true, nil
	case key.Matches(msg, m.keys.MenuLast):
		if m.menu.MoveCursorEnd() {
			m.noteMenuCursor()
		}
		return true, nil
	case key.Matches(msg, m.keys.Commit), key.Matches(msg, m.keys.Complete):
		return true, m.commitHighlighted()
	case key.Matches(msg, m.keys.Dismiss):
		m.dismiss(events.TriggerReasonDismiss, events.MenuReasonEscape)
		return true, nil
	}
	return false, nil
}

func (m *Model) noteMenuCursor() {
	m.menu.EnsureCursorVisible(m.maxVisible)
	events.Menu.Cursor(m.menu.Cursor)
}

// handleTextInput applies an editing key to the surface and re-runs trigger
// detection when the content or cursor changed.
func (m *Model) handleTextInput(msg tea.KeyMsg) tea.Cmd {
	changed := false
	switch {
	case key.Matches(msg, m.keys.Left):
		changed = m.buffer.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		changed = m.buffer.MoveRight()
	case key.Matches(msg, m.keys.LineUp):
		changed = m.moveLine(-1)
	case key.Matches(msg, m.keys.LineDown):
		changed = m.moveLine(1)
	case key.Matches(msg, m.keys.Home):
		changed = m.buffer.MoveHome()
	case key.Matches(msg, m.keys.End):
		changed = m.buffer.MoveEnd()
	case key.Matches(msg, m.keys.Backspace):
		changed = m.buffer.DeleteBackward()
	case key.Matches(msg, m.keys.Delete):
		changed = m.buffer.DeleteForward()
	case key.Matches(msg, m.keys.DeleteWord):
		changed = m.buffer.DeleteWordBackward()
	case key.Matches(msg, m.keys.Newline):
		changed = m.buffer.InsertText("\n")
	default:
		changed = m.insertKeyText(msg)
	}
	if !changed {
		return nil
	}
	m.errMsg = ""
	m.caretDirty = true
	return m.refreshTrigger()
}

func (m *Model) insertKeyText(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeySpace:
		return m.buffer.InsertText(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		runes := make([]rune, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == '\r' {
				r = '\n'
			}
			if unicode.IsControl(r) && r != '\n' && r != '\t' {
				continue
			}
			runes = append(runes, r)
		}
		return m.buffer.InsertText(string(runes))
	}
	return false
}

// moveLine moves the cursor to the same column on an adjacent wrapped line.
func (m *Model) moveLine(delta int) bool {
	layout := m.buffer.Layout(m.width)
	target := layout.CaretY + delta
	if target < 0 || target >= len(layout.Lines) {
		return false
	}
	before, _ := m.buffer.Cursor()
	pos := layout.PositionAt(layout.CaretX, target)
	if pos == before {
		return false
	}
	return m.buffer.SetCursor(pos)
}

// placeCursor moves the cursor to the surface cell under a click.
func (m *Model) placeCursor(x, y int) bool {
	bounds := m.buffer.Bounds()
	layout := m.buffer.Layout(m.width)
	pos := layout.PositionAt(x-bounds.X, y-bounds.Y+m.scroll)
	before, ok := m.buffer.Cursor()
	if ok && before == pos {
		return false
	}
	return m.buffer.SetCursor(pos)
}
