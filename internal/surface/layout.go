package surface

import (
	"unicode"

	runewidth "github.com/mattn/go-runewidth"
)

// Cell is one rendered unit: a single rune, or a whole chip.
type Cell struct {
	Text  string
	Width int
	Chip  bool
	// Pos is the cursor position before the cell and After the one following it.
	Pos   Position
	After Position
}

// Layout is the wrapped, on-screen arrangement of the buffer relative to its
// top-left corner.
type Layout struct {
	Lines  [][]Cell
	Starts []Position
	CaretX int
	CaretY int
}

// ChipText is the display form of a chip.
func ChipText(c Chip) string {
	return " " + c.Label + " "
}

// Layout wraps the content to width cells. A width <= 0 disables wrapping.
// Newlines always break lines. Chips never split across lines.
func (b *Buffer) Layout(width int) Layout {
	out := Layout{Lines: [][]Cell{nil}, Starts: []Position{{}}}
	x, y := 0, 0
	newline := func(start Position) {
		out.Lines = append(out.Lines, nil)
		out.Starts = append(out.Starts, start)
		x = 0
		y++
	}
	place := func(c Cell) {
		if width > 0 && x > 0 && x+c.Width > width {
			newline(c.Pos)
		}
	}
	markCaret := func() {
		if width > 0 && x >= width {
			newline(b.cursor)
		}
		out.CaretX, out.CaretY = x, y
	}
	for i, n := range b.nodes {
		if n.Kind == KindChip {
			text := ChipText(n.Chip)
			cell := Cell{
				Text:  text,
				Width: runewidth.StringWidth(text),
				Chip:  true,
				Pos:   Position{Node: i - 1, Offset: len([]rune(b.nodes[i-1].Text))},
				After: Position{Node: i + 1},
			}
			place(cell)
			out.Lines[y] = append(out.Lines[y], cell)
			x += cell.Width
			continue
		}
		runes := []rune(n.Text)
		for j, r := range runes {
			if r == '\n' {
				if b.cursor == (Position{Node: i, Offset: j}) {
					markCaret()
				}
				newline(Position{Node: i, Offset: j + 1})
				continue
			}
			text := string(r)
			w := runewidth.RuneWidth(r)
			if w <= 0 {
				w = 1
				// Tabs and other controls would be expanded or swallowed by
				// the terminal; draw them as a single blank cell.
				if unicode.IsControl(r) {
					text = " "
				}
			}
			cell := Cell{
				Text:  text,
				Width: w,
				Pos:   Position{Node: i, Offset: j},
				After: Position{Node: i, Offset: j + 1},
			}
			place(cell)
			if b.cursor == (Position{Node: i, Offset: j}) {
				markCaret()
			}
			out.Lines[y] = append(out.Lines[y], cell)
			x += w
		}
		if b.cursor == (Position{Node: i, Offset: len(runes)}) {
			markCaret()
		}
	}
	return out
}

// PositionAt maps a cell coordinate relative to the layout origin to the
// nearest cursor position. Points past the end of a line land at its end;
// points below the last line land on the last line. Clicking the right half
// of a cell lands after it.
func (l Layout) PositionAt(x, y int) Position {
	if len(l.Lines) == 0 {
		return Position{}
	}
	if y < 0 {
		y = 0
	}
	if y >= len(l.Lines) {
		y = len(l.Lines) - 1
	}
	pos := l.Starts[y]
	col := 0
	for _, c := range l.Lines[y] {
		if x < col+(c.Width+1)/2 {
			return c.Pos
		}
		pos = c.After
		col += c.Width
	}
	return pos
}
