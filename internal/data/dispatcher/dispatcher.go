package dispatcher

import (
	"github.com/atomicstack/tmux-popup-compose/internal/backend"
	"github.com/atomicstack/tmux-popup-compose/internal/state"
)

type Result struct {
	CandidatesUpdated bool
	Count             int
}

type Dispatcher struct {
	candidates state.CandidateStore
}

func New(c state.CandidateStore) *Dispatcher {
	return &Dispatcher{candidates: c}
}

// Handle applies a watcher event to the candidate store. Failed reloads keep
// the previous list.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil || d.candidates == nil {
		return res
	}
	d.candidates.SetEntries(evt.Candidates)
	d.candidates.SetOrigin(evt.Path)
	res.CandidatesUpdated = true
	res.Count = len(evt.Candidates)
	return res
}
