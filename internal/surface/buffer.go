// Package surface implements the editable text area the composer reads from
// and mutates.
//
// Content is a sequence of nodes: text runs and chips. Text runs sit at even
// indices and chips at odd indices, so every chip is surrounded by (possibly
// empty) text runs and the cursor always rests inside a text run. A chip is
// atomic: cursor movement skips it and deletion removes it as one unit.
package surface

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/atomicstack/tmux-popup-compose/internal/mouse"
)

// ErrInvalidRange is returned when a replacement does not address a live text run.
var ErrInvalidRange = errors.New("range does not address a live text run")

// Kind distinguishes node types.
type Kind int

const (
	KindText Kind = iota
	KindChip
)

// Chip is a non-editable inline token representing a committed candidate.
type Chip struct {
	InstanceID  string
	CandidateID string
	Label       string
	Payload     any
}

// Node is either a text run or a chip.
type Node struct {
	Kind Kind
	Text string
	Chip Chip
}

// Position addresses a rune offset inside a text run.
type Position struct {
	Node   int
	Offset int
}

// Buffer is an in-memory text surface.
type Buffer struct {
	nodes   []Node
	cursor  Position
	focused bool
	bounds  mouse.Rect
}

// NewBuffer returns an empty, focused buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		nodes:   []Node{{Kind: KindText}},
		focused: true,
	}
}

// SetText replaces the content with a single text run and puts the cursor at
// the end.
func (b *Buffer) SetText(text string) {
	b.nodes = []Node{{Kind: KindText, Text: text}}
	b.cursor = Position{Node: 0, Offset: len([]rune(text))}
}

// Nodes returns a copy of the content.
func (b *Buffer) Nodes() []Node {
	dup := make([]Node, len(b.nodes))
	copy(dup, b.nodes)
	return dup
}

// Chips returns the chips in document order.
func (b *Buffer) Chips() []Chip {
	var chips []Chip
	for _, n := range b.nodes {
		if n.Kind == KindChip {
			chips = append(chips, n.Chip)
		}
	}
	return chips
}

// Cursor returns the live cursor. ok is false while the surface is unfocused.
func (b *Buffer) Cursor() (Position, bool) {
	if !b.focused {
		return Position{}, false
	}
	return b.cursor, true
}

// SetCursor moves the cursor when p addresses a valid text offset.
func (b *Buffer) SetCursor(p Position) bool {
	runes, ok := b.runRunes(p.Node)
	if !ok || p.Offset < 0 || p.Offset > len(runes) {
		return false
	}
	b.cursor = p
	return true
}

// Run returns the text of the run at node.
func (b *Buffer) Run(node int) (string, bool) {
	if node < 0 || node >= len(b.nodes) || b.nodes[node].Kind != KindText {
		return "", false
	}
	return b.nodes[node].Text, true
}

func (b *Buffer) runRunes(node int) ([]rune, bool) {
	text, ok := b.Run(node)
	if !ok {
		return nil, false
	}
	return []rune(text), true
}

// InsertText inserts text at the cursor and advances past it.
func (b *Buffer) InsertText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes, ok := b.runRunes(b.cursor.Node)
	if !ok {
		return false
	}
	pos := b.cursor.Offset
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	b.nodes[b.cursor.Node].Text = string(updated)
	b.cursor.Offset = pos + len(insert)
	return true
}

// DeleteBackward removes the rune before the cursor, or the whole chip when
// the cursor sits directly after one.
func (b *Buffer) DeleteBackward() bool {
	runes, ok := b.runRunes(b.cursor.Node)
	if !ok {
		return false
	}
	pos := b.cursor.Offset
	if pos > 0 {
		b.nodes[b.cursor.Node].Text = string(append(runes[:pos-1:pos-1], runes[pos:]...))
		b.cursor.Offset = pos - 1
		return true
	}
	if b.cursor.Node == 0 {
		return false
	}
	b.cursor = b.removeChip(b.cursor.Node - 1)
	return true
}

// DeleteForward removes the rune after the cursor, or the chip that follows it.
func (b *Buffer) DeleteForward() bool {
	runes, ok := b.runRunes(b.cursor.Node)
	if !ok {
		return false
	}
	pos := b.cursor.Offset
	if pos < len(runes) {
		b.nodes[b.cursor.Node].Text = string(append(runes[:pos:pos], runes[pos+1:]...))
		return true
	}
	if b.cursor.Node+1 >= len(b.nodes) {
		return false
	}
	b.cursor = b.removeChip(b.cursor.Node + 1)
	return true
}

// DeleteWordBackward removes trailing whitespace and the word before the
// cursor within the current run. At the start of a run it removes the
// preceding chip.
func (b *Buffer) DeleteWordBackward() bool {
	runes, ok := b.runRunes(b.cursor.Node)
	if !ok {
		return false
	}
	pos := b.cursor.Offset
	if pos == 0 {
		return b.DeleteBackward()
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	b.nodes[b.cursor.Node].Text = string(append(runes[:i:i], runes[pos:]...))
	b.cursor.Offset = i
	return true
}

// removeChip deletes the chip at index and merges its neighbouring runs. It
// returns the position at the join.
func (b *Buffer) removeChip(index int) Position {
	before := b.nodes[index-1].Text
	after := b.nodes[index+1].Text
	merged := Node{Kind: KindText, Text: before + after}
	nodes := make([]Node, 0, len(b.nodes)-2)
	nodes = append(nodes, b.nodes[:index-1]...)
	nodes = append(nodes, merged)
	nodes = append(nodes, b.nodes[index+2:]...)
	b.nodes = nodes
	return Position{Node: index - 1, Offset: len([]rune(before))}
}

// MoveLeft moves one rune left, jumping over a chip as a unit.
func (b *Buffer) MoveLeft() bool {
	if b.cursor.Offset > 0 {
		b.cursor.Offset--
		return true
	}
	if b.cursor.Node < 2 {
		return false
	}
	prev := b.cursor.Node - 2
	b.cursor = Position{Node: prev, Offset: len([]rune(b.nodes[prev].Text))}
	return true
}

// MoveRight moves one rune right, jumping over a chip as a unit.
func (b *Buffer) MoveRight() bool {
	runes, _ := b.runRunes(b.cursor.Node)
	if b.cursor.Offset < len(runes) {
		b.cursor.Offset++
		return true
	}
	if b.cursor.Node+2 >= len(b.nodes) {
		return false
	}
	b.cursor = Position{Node: b.cursor.Node + 2, Offset: 0}
	return true
}

// MoveHome moves the cursor to the start of the content.
func (b *Buffer) MoveHome() bool {
	if b.cursor == (Position{}) {
		return false
	}
	b.cursor = Position{}
	return true
}

// MoveEnd moves the cursor to the end of the content.
func (b *Buffer) MoveEnd() bool {
	last := len(b.nodes) - 1
	end := Position{Node: last, Offset: len([]rune(b.nodes[last].Text))}
	if b.cursor == end {
		return false
	}
	b.cursor = end
	return true
}

// Replace atomically swaps runes [start, end) of the run at node for chip
// followed by trailing text, and collapses the cursor after the trailing text.
// Nothing is modified when the range is invalid.
func (b *Buffer) Replace(node, start, end int, chip Chip, trailing string) (Position, error) {
	runes, ok := b.runRunes(node)
	if !ok {
		return Position{}, fmt.Errorf("%w: node %d", ErrInvalidRange, node)
	}
	if start < 0 || end < start || end > len(runes) {
		return Position{}, fmt.Errorf("%w: [%d,%d) of %d", ErrInvalidRange, start, end, len(runes))
	}
	before := Node{Kind: KindText, Text: string(runes[:start])}
	token := Node{Kind: KindChip, Chip: chip}
	after := Node{Kind: KindText, Text: trailing + string(runes[end:])}

	nodes := make([]Node, 0, len(b.nodes)+2)
	nodes = append(nodes, b.nodes[:node]...)
	nodes = append(nodes, before, token, after)
	nodes = append(nodes, b.nodes[node+1:]...)
	b.nodes = nodes
	b.cursor = Position{Node: node + 2, Offset: len([]rune(trailing))}
	return b.cursor, nil
}

// Focus gives the surface input focus.
func (b *Buffer) Focus() { b.focused = true }

// Blur removes input focus.
func (b *Buffer) Blur() { b.focused = false }

// Focused reports whether the surface has input focus.
func (b *Buffer) Focused() bool { return b.focused }

// SetBounds records where the surface is drawn on screen.
func (b *Buffer) SetBounds(r mouse.Rect) { b.bounds = r }

// Bounds returns the on-screen rect of the surface.
func (b *Buffer) Bounds() mouse.Rect { return b.bounds }

// Contains reports whether the screen cell (x, y) is inside the surface.
func (b *Buffer) Contains(x, y int) bool { return b.bounds.Contains(x, y) }

// String renders chips as their labels.
func (b *Buffer) String() string {
	return b.Serialize(nil)
}

// Serialize renders the content, formatting chips with chipText. A nil
// chipText renders labels.
func (b *Buffer) Serialize(chipText func(Chip) string) string {
	if chipText == nil {
		chipText = func(c Chip) string { return c.Label }
	}
	var sb strings.Builder
	for _, n := range b.nodes {
		if n.Kind == KindChip {
			sb.WriteString(chipText(n.Chip))
			continue
		}
		sb.WriteString(n.Text)
	}
	return sb.String()
}
