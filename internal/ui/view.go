package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
	"github.com/atomicstack/tmux-popup-compose/internal/format/table"
	"github.com/atomicstack/tmux-popup-compose/internal/mouse"
	"github.com/atomicstack/tmux-popup-compose/internal/surface"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	menuMinWidth  = 16
	menuChrome    = 4 // indicator, two pads, scroll mark
	menuIndicator = "▌"
	menuHintWidth = 24
)

// View implements tea.Model.
func (m *Model) View() string {
	lines := m.surfaceLines()
	lines = append(lines, m.statusLine())
	if m.showFooter {
		lines = append(lines, m.footerLine())
	}
	view := strings.Join(lines, "\n")
	if m.menu.IsOpen() {
		rect := m.menuRect()
		view = overlay(view, m.menuLines(rect.W), rect.X, rect.Y)
	}
	return view
}

// surfaceRows is the number of rows given to the text surface, or 0 when the
// height is unknown.
func (m *Model) surfaceRows() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - 1
	if m.showFooter {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) surfaceLines() []string {
	layout := m.buffer.Layout(m.width)
	rows := m.surfaceRows()
	if rows == 0 {
		rows = len(layout.Lines)
	}
	out := make([]string, 0, rows)
	for y := m.scroll; y < m.scroll+rows; y++ {
		if y >= len(layout.Lines) {
			out = append(out, "")
			continue
		}
		line := m.renderSurfaceLine(layout, y)
		if m.width > 0 && ansi.StringWidth(line) > m.width {
			line = ansi.Truncate(line, m.width, "")
		}
		out = append(out, line)
	}
	return out
}

type cellKind int

const (
	cellText cellKind = iota
	cellTrigger
	cellChip
)

func (m *Model) cellKind(c surface.Cell) cellKind {
	if c.Chip {
		return cellChip
	}
	if m.armed != nil {
		a := m.armed.Anchor
		if c.Pos.Node == a.Node && c.Pos.Offset >= a.Start && c.Pos.Offset < a.End {
			return cellTrigger
		}
	}
	return cellText
}

func styleFor(kind cellKind) *lipgloss.Style {
	switch kind {
	case cellChip:
		return styles.Chip
	case cellTrigger:
		return styles.Trigger
	default:
		return styles.Text
	}
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

// renderSurfaceLine renders one wrapped line, grouping neighbouring cells of
// the same kind and drawing the caret over the cell it sits on.
func (m *Model) renderSurfaceLine(layout surface.Layout, y int) string {
	var sb strings.Builder
	showCaret := m.buffer.Focused() && y == layout.CaretY
	var run strings.Builder
	runKind := cellText
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(render(styleFor(runKind), run.String()))
		run.Reset()
	}
	caretDrawn := false
	x := 0
	for _, c := range layout.Lines[y] {
		kind := m.cellKind(c)
		text := c.Text
		if showCaret && !caretDrawn && x == layout.CaretX {
			flush()
			// a chip starts with padding, so the caret can sit on it
			r := []rune(text)
			sb.WriteString(m.renderCaret(string(r[0])))
			caretDrawn = true
			text = string(r[1:])
		}
		if kind != runKind {
			flush()
			runKind = kind
		}
		run.WriteString(text)
		x += c.Width
	}
	flush()
	if showCaret && !caretDrawn {
		sb.WriteString(m.renderCaret(" "))
		if y == 0 && m.isEmpty() {
			sb.WriteString(render(styles.Placeholder, m.placeholder()))
		}
	}
	return sb.String()
}

func (m *Model) isEmpty() bool {
	nodes := m.buffer.Nodes()
	return len(nodes) == 1 && nodes[0].Text == ""
}

func (m *Model) placeholder() string {
	return fmt.Sprintf("type %c for suggestions", m.detector.Trigger)
}

func (m *Model) renderCaret(char string) string {
	if char == "" || char == "\n" {
		char = " "
	}
	m.caret.SetChar(char)

	base := m.caret.TextStyle.Copy()
	base = base.Inline(true)

	if m.caret.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}

func (m *Model) statusLine() string {
	if m.errMsg != "" {
		return render(styles.Error, truncateText(m.errMsg, m.width))
	}
	if m.infoMsg != "" {
		return render(styles.Info, truncateText(m.infoMsg, m.width))
	}
	if m.armed != nil && !m.menu.IsOpen() && m.fetcher == nil {
		msg := fmt.Sprintf("No matches for %q", m.armed.Query)
		return render(styles.Info, truncateText(msg, m.width))
	}
	return ""
}

func (m *Model) footerLine() string {
	bindings := m.keys.editorHelp()
	if m.menu.IsOpen() {
		bindings = m.keys.menuHelp()
	}
	parts := make([]string, 0, len(bindings)+1)
	if !m.menu.IsOpen() {
		parts = append(parts, fmt.Sprintf("%c suggestions", m.detector.Trigger))
	}
	for _, b := range bindings {
		parts = append(parts, helpText(b))
	}
	return render(styles.Footer, truncateText(strings.Join(parts, " · "), m.width))
}

func helpText(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}

// menuTexts lays the menu items out as a label column followed by a payload
// hint column.
func (m *Model) menuTexts() []string {
	rows := make([][]string, 0, len(m.menu.Items))
	for _, item := range m.menu.Items {
		rows = append(rows, []string{item.Label, payloadHint(item)})
	}
	return table.Format(rows, nil)
}

func payloadHint(c candidate.Candidate) string {
	if c.Payload == nil {
		return ""
	}
	hint := strings.Join(strings.Fields(fmt.Sprint(c.Payload)), " ")
	if hint == c.Label {
		return ""
	}
	if ansi.StringWidth(hint) > menuHintWidth {
		hint = truncate.StringWithTail(hint, menuHintWidth, "…")
	}
	return hint
}

func (m *Model) menuWidth() int {
	widest := 0
	for _, text := range m.menuTexts() {
		if w := ansi.StringWidth(text); w > widest {
			widest = w
		}
	}
	w := widest + menuChrome
	if w < menuMinWidth {
		w = menuMinWidth
	}
	return w
}

// menuRect is where the open menu is drawn: at its fixed origin, shifted only
// as far as needed to stay on screen.
func (m *Model) menuRect() mouse.Rect {
	if !m.menu.IsOpen() {
		return mouse.Rect{}
	}
	w := m.menuWidth()
	start, end := m.menu.VisibleRange(m.maxVisible)
	h := end - start
	x, y := m.menu.Position.X, m.menu.Position.Y
	if m.width > 0 {
		if w > m.width {
			w = m.width
		}
		if x+w > m.width {
			x = m.width - w
		}
	}
	if m.height > 0 && y+h > m.height {
		y = m.height - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return mouse.Rect{X: x, Y: y, W: w, H: h}
}

func (m *Model) menuLines(width int) []string {
	start, end := m.menu.VisibleRange(m.maxVisible)
	inner := width - menuChrome
	if inner < 1 {
		inner = 1
	}
	texts := m.menuTexts()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.menuRow(texts[i], i, start, end, inner))
	}
	return lines
}

func (m *Model) menuRow(text string, idx, start, end, inner int) string {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.menu.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	label := text
	if ansi.StringWidth(label) > inner {
		label = truncate.StringWithTail(label, uint(inner), "…")
	}
	if pad := inner - ansi.StringWidth(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	mark := " "
	switch {
	case idx == start && start > 0:
		mark = "↑"
	case idx == end-1 && end < len(m.menu.Items):
		mark = "↓"
	}
	return render(indicatorStyle, menuIndicator) +
		render(lineStyle, " "+label+" ") +
		render(styles.MenuScroll, mark)
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
