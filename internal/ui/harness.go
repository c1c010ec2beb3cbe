package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultHarnessStep = time.Second

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
	step  time.Duration
	quit  bool
}

// NewHarness creates a harness for the provided model. The caret is made
// static so no blink timers are scheduled.
func NewHarness(model *Model) *Harness {
	if model != nil {
		model.caret.SetMode(cursor.CursorStatic)
	}
	return &Harness{model: model, step: defaultHarnessStep}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	h.deliver(msg)
}

// Type sends each rune of text as a key press.
func (h *Harness) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends a single key of the given type.
func (h *Harness) Press(t tea.KeyType) {
	h.Send(tea.KeyMsg{Type: t})
}

// Click sends a left button press at (x, y).
func (h *Harness) Click(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// Hover sends pointer motion at (x, y).
func (h *Harness) Hover(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
}

func (h *Harness) deliver(msg tea.Msg) {
	if h.model == nil || msg == nil {
		return
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, cmd := range msg {
			h.run(cmd)
		}
		return
	case tea.QuitMsg:
		h.quit = true
		return
	case cursor.BlinkMsg:
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.run(cmd)
}

// run executes cmd and feeds its message back into the model. Commands that
// block longer than one step (timers, channel waits) are abandoned.
func (h *Harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		h.deliver(msg)
	case <-time.After(h.step):
	}
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
