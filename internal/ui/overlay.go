package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const resetSequence = "\x1b[0m"

// overlay draws block over background with its top-left corner at (x, y).
// Background cells outside the block keep their styling.
func overlay(background string, block []string, x, y int) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < y+len(block) {
		bgLines = append(bgLines, "")
	}
	for i, line := range block {
		row := y + i
		if row < 0 {
			continue
		}
		bgLines[row] = compositeRow(bgLines[row], line, x, ansi.StringWidth(line))
	}
	return strings.Join(bgLines, "\n")
}

// compositeRow replaces the cells [x, x+width) of bgLine with fgLine.
func compositeRow(bgLine, fgLine string, x, width int) string {
	var sb strings.Builder
	if x > 0 {
		left := ansi.Truncate(bgLine, x, "")
		sb.WriteString(left)
		if strings.Contains(left, "\x1b[") {
			sb.WriteString(resetSequence)
		}
		if lw := ansi.StringWidth(left); lw < x {
			sb.WriteString(strings.Repeat(" ", x-lw))
		}
	}
	sb.WriteString(fgLine)
	bgWidth := ansi.StringWidth(bgLine)
	if right := x + width; bgWidth > right {
		sb.WriteString(ansi.Cut(bgLine, right, bgWidth))
	}
	return sb.String()
}
