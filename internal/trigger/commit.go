package trigger

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
	"github.com/atomicstack/tmux-popup-compose/internal/surface"
	"github.com/google/uuid"
)

// ErrStaleAnchor reports that the armed span no longer matches the surface.
var ErrStaleAnchor = errors.New("trigger anchor is stale")

// Commit replaces the armed span with a chip for c followed by one space and
// returns the new cursor. The span is re-derived from live content first; if
// it no longer matches st nothing is modified and ErrStaleAnchor is returned.
func (d Detector) Commit(s Surface, st State, c candidate.Candidate) (surface.Position, error) {
	live, ok := d.DetectSurface(s)
	if !ok {
		return surface.Position{}, fmt.Errorf("%w: trigger no longer present", ErrStaleAnchor)
	}
	if live != st {
		return surface.Position{}, fmt.Errorf("%w: armed %+v, live %+v", ErrStaleAnchor, st.Anchor, live.Anchor)
	}
	chip := surface.Chip{
		InstanceID:  uuid.NewString(),
		CandidateID: c.Key(),
		Label:       c.Label,
		Payload:     c.Payload,
	}
	pos, err := s.Replace(st.Anchor.Node, st.Anchor.Start, st.Anchor.End, chip, " ")
	if err != nil {
		return surface.Position{}, fmt.Errorf("%w: %v", ErrStaleAnchor, err)
	}
	return pos, nil
}
