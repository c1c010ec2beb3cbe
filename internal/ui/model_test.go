package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
	"github.com/atomicstack/tmux-popup-compose/internal/surface"
	uistate "github.com/atomicstack/tmux-popup-compose/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestHarness(t *testing.T, opts Options) *Harness {
	t.Helper()
	if opts.Candidates == nil && opts.Fetcher == nil {
		opts.Candidates = candidate.Defaults()
	}
	if opts.Width == 0 {
		opts.Width = 60
	}
	if opts.Height == 0 {
		opts.Height = 12
	}
	return NewHarness(NewModel(opts))
}

func menuOpen(h *Harness) bool {
	menu := h.Model().Menu()
	return menu.IsOpen()
}

func menuLabels(m uistate.Menu) []string {
	labels := make([]string, 0, len(m.Items))
	for _, item := range m.Items {
		labels = append(labels, item.Label)
	}
	return labels
}

func TestTypingTriggerOpensFilteredMenu(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("Hello /Na")

	st, ok := h.Model().Armed()
	if !ok {
		t.Fatalf("expected armed trigger")
	}
	if st.Query != "Na" {
		t.Fatalf("expected query Na, got %q", st.Query)
	}
	if st.Anchor.Start != 6 || st.Anchor.End != 9 {
		t.Fatalf("unexpected anchor %+v", st.Anchor)
	}
	if !menuOpen(h) {
		t.Fatalf("expected menu open")
	}
	if got := menuLabels(h.Model().Menu()); len(got) != 1 || got[0] != "Name" {
		t.Fatalf("expected [Name], got %v", got)
	}
}

func TestEnterCommitsChipWithTrailingSpace(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("Hello /Na")
	h.Press(tea.KeyEnter)

	m := h.Model()
	nodes := m.Buffer().Nodes()
	if len(nodes) != 3 {
		t.Fatalf("expected text, chip, text; got %#v", nodes)
	}
	if nodes[0].Text != "Hello " {
		t.Fatalf("expected leading text preserved, got %q", nodes[0].Text)
	}
	if nodes[1].Kind != surface.KindChip || nodes[1].Chip.Label != "Name" || nodes[1].Chip.CandidateID != "name" {
		t.Fatalf("unexpected chip %#v", nodes[1])
	}
	if nodes[1].Chip.Payload != "John Doe" {
		t.Fatalf("expected payload carried, got %#v", nodes[1].Chip.Payload)
	}
	if nodes[2].Text != " " {
		t.Fatalf("expected exactly one trailing space, got %q", nodes[2].Text)
	}
	if pos, _ := m.Buffer().Cursor(); pos != (surface.Position{Node: 2, Offset: 1}) {
		t.Fatalf("expected cursor after the space, got %+v", pos)
	}
	if menuOpen(h) {
		t.Fatalf("expected menu closed after commit")
	}
	if _, ok := m.Armed(); ok {
		t.Fatalf("expected trigger disarmed after commit")
	}
	if !m.Buffer().Focused() {
		t.Fatalf("expected surface focused after commit")
	}
	if got := m.Buffer().String(); got != "Hello Name " {
		t.Fatalf("unexpected serialised text %q", got)
	}
}

func TestEnterWithoutMenuInsertsNewline(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("hi")
	h.Press(tea.KeyEnter)
	if got := h.Model().Buffer().String(); got != "hi\n" {
		t.Fatalf("expected newline inserted, got %q", got)
	}
}

func TestTabCommitsHighlighted(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("/")
	h.Press(tea.KeyDown)
	h.Press(tea.KeyTab)
	chips := h.Model().Buffer().Chips()
	if len(chips) != 1 || chips[0].Label != "Email" {
		t.Fatalf("expected Email chip, got %#v", chips)
	}
}

func TestDeletingTriggerClosesMenu(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("/N")
	if !menuOpen(h) {
		t.Fatalf("expected menu open")
	}
	h.Press(tea.KeyBackspace)
	if !menuOpen(h) {
		t.Fatalf("expected menu open while trigger remains")
	}
	h.Press(tea.KeyBackspace)
	if menuOpen(h) {
		t.Fatalf("expected menu closed once trigger deleted")
	}
	if _, ok := h.Model().Armed(); ok {
		t.Fatalf("expected trigger disarmed")
	}
	if h.Model().PointerListeners() != 0 {
		t.Fatalf("expected dismissal listener released")
	}
}

func TestWhitespaceEndsTrigger(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("/Na ")
	if _, ok := h.Model().Armed(); ok {
		t.Fatalf("expected whitespace to end the trigger")
	}
	if menuOpen(h) {
		t.Fatalf("expected menu closed")
	}
}

func TestArrowNavigationWrapsAndIsConsumed(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("/")
	before := h.Model().Buffer().String()

	h.Press(tea.KeyUp)
	if got := h.Model().Menu().Cursor; got != 2 {
		t.Fatalf("expected wrap to last item, got %d", got)
	}
	h.Press(tea.KeyDown)
	if got := h.Model().Menu().Cursor; got != 0 {
		t.Fatalf("expected wrap to first item, got %d", got)
	}
	if after := h.Model().Buffer().String(); after != before {
		t.Fatalf("navigation changed text: %q -> %q", before, after)
	}
	if pos, _ := h.Model().Buffer().Cursor(); pos.Offset != 1 {
		t.Fatalf("navigation moved the surface cursor: %+v", pos)
	}
}

func TestRefilterKeepsHighlightedCandidate(t *testing.T) {
	items := []candidate.Candidate{
		{ID: "a", Label: "alpha"},
		{ID: "b", Label: "alps"},
		{ID: "c", Label: "beta"},
	}
	h := newTestHarness(t, Options{Candidates: items})
	h.Type("/")
	h.Press(tea.KeyDown)
	menu := h.Model().Menu()
	if sel, _ := menu.Selected(); sel.ID != "b" {
		t.Fatalf("expected alps highlighted, got %+v", sel)
	}
	h.Type("al")
	menu = h.Model().Menu()
	if got := menuLabels(menu); len(got) != 2 {
		t.Fatalf("expected two matches, got %v", got)
	}
	if sel, _ := menu.Selected(); sel.ID != "b" {
		t.Fatalf("expected highlight to follow alps, got %+v", sel)
	}
}

func TestRefilterClampsHighlight(t *testing.T) {
	items := []candidate.Candidate{
		{ID: "a", Label: "apple"},
		{ID: "b", Label: "banana"},
		{ID: "c", Label: "cherry"},
	}
	h := newTestHarness(t, Options{Candidates: items})
	h.Type("/")
	h.Press(tea.KeyDown)
	h.Press(tea.KeyDown)
	h.Type("a")
	menu := h.Model().Menu()
	if got := menuLabels(menu); len(got) != 2 {
		t.Fatalf("expected apple and banana, got %v", got)
	}
	if menu.Cursor != 1 {
		t.Fatalf("expected highlight clamped to 1, got %d", menu.Cursor)
	}
}

func TestEmptyFilterClosesMenuKeepsTriggerArmed(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("/zz")
	m := h.Model()
	if menuOpen(h) {
		t.Fatalf("expected menu closed for empty results")
	}
	st, ok := m.Armed()
	if !ok || st.Query != "zz" {
		t.Fatalf("expected trigger still armed with zz, got %+v %v", st, ok)
	}
	if m.PointerListeners() != 0 {
		t.Fatalf("expected listener released with the menu")
	}
	h.Press(tea.KeyBackspace)
	h.Press(tea.KeyBackspace)
	if !menuOpen(h) {
		t.Fatalf("expected menu to reopen once matches return")
	}
}

func TestMenuPositionFixedPerOccurrence(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("ab /")
	first := h.Model().Menu().Position
	if first.X != 4 || first.Y != 1 {
		t.Fatalf("expected menu below trigger caret, got %+v", first)
	}
	h.Type("N")
	if got := h.Model().Menu().Position; got != first {
		t.Fatalf("expected position fixed at %+v, got %+v", first, got)
	}
	h.Type("zz")
	h.Press(tea.KeyBackspace)
	h.Press(tea.KeyBackspace)
	if got := h.Model().Menu().Position; got != first {
		t.Fatalf("expected reopened menu at %+v, got %+v", first, got)
	}
}

func TestMenuOpensAboveCaretWithoutRoom(t *testing.T) {
	h := newTestHarness(t, Options{Height: 5})
	h.Type("a\nb\nc\n/")
	pos := h.Model().Menu().Position
	if pos.Y != 0 {
		t.Fatalf("expected menu above caret row 3, got %+v", pos)
	}
}

func TestMenuAvoidsCaretRowAfterScroll(t *testing.T) {
	h := newTestHarness(t, Options{Width: 10, Height: 6})
	h.Type(strings.Repeat("a", 49) + "/")
	m := h.Model()
	if !menuOpen(h) {
		t.Fatalf("expected menu open")
	}
	layout := m.buffer.Layout(m.width)
	caretRow := layout.CaretY - m.scroll
	if m.scroll == 0 || caretRow < 0 || caretRow >= m.surfaceRows() {
		t.Fatalf("expected surface scrolled to caret, scroll=%d caretRow=%d", m.scroll, caretRow)
	}
	rect := m.menuRect()
	if caretRow >= rect.Y && caretRow < rect.Y+rect.H {
		t.Fatalf("menu rows %d..%d cover caret row %d", rect.Y, rect.Y+rect.H-1, caretRow)
	}
	if got := m.Menu().Position.Y; got != caretRow-rect.H && got != caretRow+1 {
		t.Fatalf("expected menu adjacent to caret row %d, got y=%d", caretRow, got)
	}
}

func TestEscapeDismissesAndSuppressesOccurrence(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("x /N")
	h.Press(tea.KeyEsc)
	m := h.Model()
	if menuOpen(h) {
		t.Fatalf("expected menu dismissed")
	}
	if _, ok := m.Armed(); ok {
		t.Fatalf("expected trigger disarmed")
	}
	if got := m.Buffer().String(); got != "x /N" {
		t.Fatalf("expected text untouched, got %q", got)
	}
	if h.Quit() {
		t.Fatalf("escape with an open menu must not quit")
	}
	h.Type("a")
	if _, ok := m.Armed(); ok {
		t.Fatalf("expected dismissed occurrence to stay quiet")
	}
	h.Type(" /")
	if _, ok := m.Armed(); !ok {
		t.Fatalf("expected a new occurrence to arm")
	}
}

func TestEscapeWithoutTriggerQuits(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("text")
	h.Press(tea.KeyEsc)
	if !h.Quit() {
		t.Fatalf("expected escape to quit")
	}
	if h.Model().Result().Submitted {
		t.Fatalf("expected nothing submitted")
	}
}

func TestCommitWithStaleAnchorLeavesTextAlone(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("/Na")
	m := h.Model()
	// mutate the surface behind the controller's back
	m.Buffer().SetText("changed /Na")

	h.Press(tea.KeyEnter)
	if got := m.Buffer().String(); got != "changed /Na" {
		t.Fatalf("expected no mutation, got %q", got)
	}
	if len(m.Buffer().Chips()) != 0 {
		t.Fatalf("expected no chip inserted")
	}
	if menuOpen(h) {
		t.Fatalf("expected menu closed after stale commit")
	}
	if m.PointerListeners() != 0 {
		t.Fatalf("expected listener released after stale commit")
	}
}

func TestBackspaceRemovesWholeChip(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("/Em")
	h.Press(tea.KeyEnter)
	h.Press(tea.KeyBackspace)
	h.Press(tea.KeyBackspace)
	m := h.Model()
	if len(m.Buffer().Chips()) != 0 {
		t.Fatalf("expected chip removed as a unit")
	}
	if got := m.Buffer().String(); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestBlurDisarmsTrigger(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("/")
	h.Send(tea.BlurMsg{})
	m := h.Model()
	if menuOpen(h) {
		t.Fatalf("expected menu closed on blur")
	}
	if _, ok := m.Armed(); ok {
		t.Fatalf("expected trigger disarmed on blur")
	}
	h.Send(tea.FocusMsg{})
	if _, ok := m.Armed(); ok {
		t.Fatalf("expected refocus not to revive a dismissed occurrence")
	}
}

func TestSubmitStoresResult(t *testing.T) {
	h := newTestHarness(t, Options{
		ChipText: func(c surface.Chip) string { return c.Label + "!" },
	})
	h.Type("to /Em")
	h.Press(tea.KeyEnter)
	h.Type("now")
	h.Press(tea.KeyCtrlD)

	res := h.Model().Result()
	if !res.Submitted {
		t.Fatalf("expected submitted result")
	}
	if res.Text != "to Email! now" {
		t.Fatalf("unexpected text %q", res.Text)
	}
	if len(res.Chips) != 1 || res.Chips[0].CandidateID != "email" {
		t.Fatalf("unexpected chips %#v", res.Chips)
	}
	if !h.Quit() {
		t.Fatalf("expected submit to quit")
	}
}

func TestCustomTriggerRune(t *testing.T) {
	h := newTestHarness(t, Options{Trigger: '@'})
	h.Type("/Na")
	if _, ok := h.Model().Armed(); ok {
		t.Fatalf("expected slash to be plain text")
	}
	h.Type(" @Na")
	if !menuOpen(h) {
		t.Fatalf("expected @ to open the menu")
	}
}

func TestFuzzyMatchMode(t *testing.T) {
	h := newTestHarness(t, Options{Match: uistate.MatchFuzzy})
	h.Type("/adr")
	if got := menuLabels(h.Model().Menu()); len(got) != 1 || got[0] != "Address" {
		t.Fatalf("expected fuzzy match on Address, got %v", got)
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("/")
	m := h.Model()
	m.Close()
	m.Close()
	if m.PointerListeners() != 0 {
		t.Fatalf("expected no listeners after close")
	}
	if menuOpen(h) {
		t.Fatalf("expected menu closed after close")
	}
}
