package ui

import (
	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
	"github.com/atomicstack/tmux-popup-compose/internal/logging/events"
	"github.com/atomicstack/tmux-popup-compose/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-compose/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// refreshTrigger re-derives the trigger from the live surface and brings the
// armed state and the menu in line with it. Every content or cursor change
// ends here.
func (m *Model) refreshTrigger() tea.Cmd {
	st, ok := m.detector.DetectSurface(m.buffer)
	if !ok {
		m.suppressed = nil
		if m.armed != nil {
			m.disarm(events.TriggerReasonGone, events.MenuReasonDisarm)
		}
		return nil
	}
	if m.suppressed != nil {
		if st.SameOccurrence(*m.suppressed) {
			events.Trigger.Suppressed(st.Anchor.Node, st.Anchor.Start)
			return nil
		}
		m.suppressed = nil
	}
	prev := m.armed
	if prev != nil && !prev.SameOccurrence(st) {
		m.disarm(events.TriggerReasonReplaced, events.MenuReasonDisarm)
		prev = nil
	}
	if prev != nil && *prev == st {
		return nil
	}
	m.armed = &st
	if prev == nil {
		events.Trigger.Arm(st.Anchor.Node, st.Anchor.Start, st.Query)
	} else {
		events.Trigger.Query(st.Query)
	}
	return m.requestCandidates()
}

// requestCandidates filters the store for the armed query, or starts a lookup
// when a fetcher is configured.
func (m *Model) requestCandidates() tea.Cmd {
	if m.armed == nil {
		return nil
	}
	if m.fetcher != nil {
		m.fetchGen++
		return m.bus.Fetch(command.Request{Gen: m.fetchGen, Query: m.armed.Query, Fetcher: m.fetcher})
	}
	m.showCandidates(uistate.FilterCandidates(m.candidates.Candidates(), m.armed.Query, m.match))
	return nil
}

// showCandidates opens, updates or closes the menu for items. An empty list
// closes the menu but keeps the trigger armed.
func (m *Model) showCandidates(items []candidate.Candidate) {
	if m.armed == nil {
		return
	}
	if len(items) == 0 {
		if m.menu.IsOpen() {
			m.closeMenu(events.MenuReasonEmpty)
		}
		return
	}
	if m.menu.IsOpen() {
		m.menu.SetItems(items)
		m.menu.EnsureCursorVisible(m.maxVisible)
		events.Menu.Update(len(m.menu.Items), m.menu.Cursor)
		return
	}
	m.openMenu(items)
}

func (m *Model) openMenu(items []candidate.Candidate) {
	if m.menuPos == nil {
		pos := m.placeMenu(len(items))
		m.menuPos = &pos
	}
	if !m.menu.Open(items, *m.menuPos) {
		return
	}
	m.acquireDismissal()
	events.Menu.Open(len(items), m.menuPos.X, m.menuPos.Y)
}

// placeMenu computes the menu origin from the caret: directly below it, or
// above it when there is no room below. It runs once per trigger occurrence.
func (m *Model) placeMenu(count int) uistate.Point {
	layout := m.buffer.Layout(m.width)
	m.scrollToCaret(layout)
	bounds := m.buffer.Bounds()
	x := bounds.X + layout.CaretX
	caretY := bounds.Y + layout.CaretY - m.scroll
	rows := count
	if rows > m.maxVisible {
		rows = m.maxVisible
	}
	y := caretY + 1
	if m.height > 0 && y+rows > m.height && caretY-rows >= 0 {
		y = caretY - rows
	}
	return uistate.Point{X: x, Y: y}
}

func (m *Model) closeMenu(reason events.MenuReason) {
	m.releaseDismissal()
	if !m.menu.IsOpen() {
		return
	}
	m.menu.Close()
	events.Menu.Close(reason)
}

// disarm drops the armed trigger and everything that hangs off it.
func (m *Model) disarm(tr events.TriggerReason, mr events.MenuReason) {
	m.closeMenu(mr)
	if m.armed != nil {
		events.Trigger.Disarm(tr)
	}
	m.armed = nil
	m.menuPos = nil
	m.fetchGen++
}

// dismiss disarms and keeps the same occurrence from re-arming until the
// user edits their way to a different one.
func (m *Model) dismiss(tr events.TriggerReason, mr events.MenuReason) {
	if m.armed != nil {
		st := *m.armed
		m.suppressed = &st
	}
	m.disarm(tr, mr)
}

func (m *Model) commitHighlighted() tea.Cmd {
	c, ok := m.menu.Selected()
	if !ok {
		return nil
	}
	return m.commit(c)
}

// commit swaps the armed span for a chip. A stale span is abandoned without
// touching the surface.
func (m *Model) commit(c candidate.Candidate) tea.Cmd {
	if m.armed == nil {
		m.closeMenu(events.MenuReasonDisarm)
		return nil
	}
	st := *m.armed
	pos, err := m.detector.Commit(m.buffer, st, c)
	if err != nil {
		events.Commit.Stale(err)
		m.disarm(events.TriggerReasonGone, events.MenuReasonStale)
		return nil
	}
	if nodes := m.buffer.Nodes(); pos.Node >= 1 && pos.Node-1 < len(nodes) {
		chip := nodes[pos.Node-1].Chip
		events.Commit.Insert(chip.CandidateID, chip.Label, chip.InstanceID)
	}
	m.disarm(events.TriggerReasonCommit, events.MenuReasonCommit)
	m.buffer.Focus()
	m.caretDirty = true
	return m.refreshTrigger()
}

func (m *Model) handleCandidatesMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if res.Gen != m.fetchGen || m.armed == nil || m.armed.Query != res.Query {
		events.Candidates.Stale(res.Gen, m.fetchGen)
		return nil
	}
	if res.Err != nil {
		m.errMsg = res.Err.Error()
		return nil
	}
	m.showCandidates(res.Items)
	return nil
}
