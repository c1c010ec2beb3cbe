package ui

import (
	"reflect"

	"github.com/atomicstack/tmux-popup-compose/internal/backend"
	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
	"github.com/atomicstack/tmux-popup-compose/internal/data/dispatcher"
	"github.com/atomicstack/tmux-popup-compose/internal/logging/events"
	"github.com/atomicstack/tmux-popup-compose/internal/mouse"
	"github.com/atomicstack/tmux-popup-compose/internal/state"
	"github.com/atomicstack/tmux-popup-compose/internal/surface"
	"github.com/atomicstack/tmux-popup-compose/internal/theme"
	"github.com/atomicstack/tmux-popup-compose/internal/trigger"
	"github.com/atomicstack/tmux-popup-compose/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-compose/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultMaxVisible = 6

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Trigger         rune
	RequireBoundary bool
	Match           uistate.MatchMode
	MaxVisible      int
	Width           int
	Height          int
	ShowFooter      bool
	// Candidates seeds the candidate store. Ignored when Fetcher is set.
	Candidates []candidate.Candidate
	// Fetcher looks candidates up per query instead of filtering the store.
	Fetcher candidate.Fetcher
	// Watcher feeds reloaded candidate files into the store.
	Watcher *backend.Watcher
	// ChipText renders chips in the submitted text. Defaults to the label.
	ChipText func(surface.Chip) string
}

// Result is what the user submitted.
type Result struct {
	Text      string
	Chips     []surface.Chip
	Submitted bool
}

// Model implements the Bubble Tea model for the composer.
type Model struct {
	buffer   *surface.Buffer
	detector trigger.Detector

	// armed is the live trigger occurrence, nil when none.
	armed *trigger.State
	// suppressed is an occurrence the user dismissed; it stays quiet until
	// detection moves on to something else.
	suppressed *trigger.State
	menu       uistate.Menu
	menuPos    *uistate.Point
	match      uistate.MatchMode
	maxVisible int

	candidates state.CandidateStore
	dispatcher *dispatcher.Dispatcher
	fetcher    candidate.Fetcher
	fetchGen   uint64
	bus        *command.Bus
	backend    *backend.Watcher

	listeners    map[int]pointerListener
	nextListener int
	dismissal    int
	hits         *mouse.HitMap

	scroll      int
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	errMsg      string
	infoMsg     string

	keys       KeyMap
	caret      cursor.Model
	caretDirty bool

	chipText func(surface.Chip) string
	result   Result
	closed   bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the composer with an empty, focused surface.
func NewModel(opts Options) *Model {
	store := state.NewCandidateStore(opts.Candidates)
	maxVisible := opts.MaxVisible
	if maxVisible <= 0 {
		maxVisible = defaultMaxVisible
	}
	detector := trigger.NewDetector(opts.Trigger)
	detector.RequireBoundary = opts.RequireBoundary
	m := &Model{
		buffer:     surface.NewBuffer(),
		detector:   detector,
		match:      opts.Match,
		maxVisible: maxVisible,
		candidates: store,
		dispatcher: dispatcher.New(store),
		fetcher:    opts.Fetcher,
		bus:        command.New(),
		backend:    opts.Watcher,
		listeners:  make(map[int]pointerListener),
		hits:       mouse.NewHitMap(),
		showFooter: opts.ShowFooter,
		keys:       DefaultKeyMap(),
		chipText:   opts.ChipText,
	}
	if m.backend != nil {
		m.candidates.SetOrigin(m.backend.Path())
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Text != nil {
		c.TextStyle = styles.Text.Copy()
	}
	c.SetChar(" ")
	m.caret = c
	m.registerHandlers()
	m.syncLayout()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.caret.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateCaretModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.closed {
		return m, m.finishUpdate(cmds)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.FocusMsg{}):      m.handleFocusMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
		reflect.TypeOf(command.Result{}):    m.handleCandidatesMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncLayout()
	if m.caretDirty {
		m.caretDirty = false
		m.caret.Blink = false
		if cmd := m.caret.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateCaretModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) handleFocusMsg(tea.Msg) tea.Cmd {
	m.buffer.Focus()
	m.caretDirty = true
	return m.refreshTrigger()
}

func (m *Model) handleBlurMsg(tea.Msg) tea.Cmd {
	m.dismiss(events.TriggerReasonBlur, events.MenuReasonDisarm)
	m.buffer.Blur()
	return nil
}

// Close releases the dismissal guard, closes the menu and stops the
// candidate watcher. It is safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.disarm(events.TriggerReasonDismiss, events.MenuReasonQuit)
	for id := range m.listeners {
		delete(m.listeners, id)
	}
	m.dismissal = 0
	if m.backend != nil {
		m.backend.Stop()
	}
	m.closed = true
}

func (m *Model) quit() tea.Cmd {
	events.App.Quit()
	m.Close()
	return tea.Quit
}

func (m *Model) submit() tea.Cmd {
	text := m.buffer.Serialize(m.chipText)
	chips := m.buffer.Chips()
	m.result = Result{Text: text, Chips: chips, Submitted: true}
	events.App.Submit(len(chips), len(text))
	m.Close()
	return tea.Quit
}

// Result returns what was submitted, if anything.
func (m *Model) Result() Result {
	return m.result
}

// Buffer exposes the text surface.
func (m *Model) Buffer() *surface.Buffer {
	return m.buffer
}

// Menu returns a snapshot of the candidate menu.
func (m *Model) Menu() uistate.Menu {
	snapshot := m.menu
	snapshot.Items = candidate.Clone(m.menu.Items)
	return snapshot
}

// Armed returns the armed trigger occurrence.
func (m *Model) Armed() (trigger.State, bool) {
	if m.armed == nil {
		return trigger.State{}, false
	}
	return *m.armed, true
}

// Keys returns the active key bindings.
func (m *Model) Keys() KeyMap {
	return m.keys
}
