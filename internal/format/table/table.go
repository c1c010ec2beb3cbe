// Package table pads rows of cells into aligned columns.
package table

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each column.
// Trailing empty cells add no padding.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if width := runewidth.StringWidth(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		last := len(row) - 1
		for last >= 0 && row[last] == "" {
			last--
		}
		var b strings.Builder
		for c := 0; c <= last; c++ {
			cell := row[c]
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - runewidth.StringWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			if c < last {
				writeSpaces(&b, pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
