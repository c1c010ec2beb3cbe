package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-compose/internal/backend"
	"github.com/atomicstack/tmux-popup-compose/internal/logging"
	"github.com/atomicstack/tmux-popup-compose/internal/logging/events"
	uistate "github.com/atomicstack/tmux-popup-compose/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent stores a reloaded candidate list and re-filters the open
// trigger against it.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		logging.Error(fmt.Errorf("reload candidates: %w", evt.Err))
		events.Candidates.Error(evt.Err)
		m.errMsg = fmt.Sprintf("reload failed: %v", evt.Err)
		return
	}
	res := m.dispatcher.Handle(evt)
	if !res.CandidatesUpdated {
		return
	}
	events.Candidates.Reload(evt.Path, res.Count)
	m.errMsg = ""
	m.infoMsg = fmt.Sprintf("Loaded %d candidates", res.Count)
	if m.armed != nil && m.fetcher == nil {
		m.showCandidates(uistate.FilterCandidates(m.candidates.Candidates(), m.armed.Query, m.match))
	}
}
