// Package trigger tracks trigger-character occurrences in the text surface
// and commits a chosen candidate in place of the trigger text.
package trigger

import (
	"unicode"

	"github.com/atomicstack/tmux-popup-compose/internal/surface"
)

// DefaultTrigger is the trigger rune used when none is configured.
const DefaultTrigger = '/'

// Anchor is the span from the trigger rune (inclusive) to the cursor
// (exclusive) inside one text run. Offsets are in runes.
type Anchor struct {
	Node  int
	Start int
	End   int
}

// State is an armed trigger occurrence.
type State struct {
	Anchor Anchor
	Query  string
}

// SameOccurrence reports whether both states refer to the same trigger rune.
func (s State) SameOccurrence(other State) bool {
	return s.Anchor.Node == other.Anchor.Node && s.Anchor.Start == other.Anchor.Start
}

// Surface is the part of the text surface the detector and committer need.
type Surface interface {
	Cursor() (surface.Position, bool)
	Run(node int) (string, bool)
	Replace(node, start, end int, chip surface.Chip, trailing string) (surface.Position, error)
}

// Detector derives trigger state from live text.
type Detector struct {
	Trigger rune
	// RequireBoundary only accepts a trigger at the start of a run or after
	// whitespace.
	RequireBoundary bool
}

// NewDetector returns a detector for the given trigger rune.
func NewDetector(trigger rune) Detector {
	if trigger == 0 {
		trigger = DefaultTrigger
	}
	return Detector{Trigger: trigger}
}

// Detect scans text backwards from cursor for the nearest trigger rune. It
// stops at whitespace, so a trigger is only active while the cursor is inside
// the same word.
func (d Detector) Detect(node int, text string, cursor int) (State, bool) {
	runes := []rune(text)
	if cursor <= 0 || cursor > len(runes) {
		return State{}, false
	}
	for i := cursor - 1; i >= 0; i-- {
		r := runes[i]
		if r == d.Trigger {
			if d.RequireBoundary && i > 0 && !unicode.IsSpace(runes[i-1]) {
				return State{}, false
			}
			return State{
				Anchor: Anchor{Node: node, Start: i, End: cursor},
				Query:  string(runes[i+1 : cursor]),
			}, true
		}
		if unicode.IsSpace(r) {
			return State{}, false
		}
	}
	return State{}, false
}

// DetectSurface runs Detect against the surface's live cursor and run.
func (d Detector) DetectSurface(s Surface) (State, bool) {
	pos, ok := s.Cursor()
	if !ok {
		return State{}, false
	}
	text, ok := s.Run(pos.Node)
	if !ok {
		return State{}, false
	}
	return d.Detect(pos.Node, text, pos.Offset)
}
