package command

import (
	"context"
	"time"

	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
	"github.com/atomicstack/tmux-popup-compose/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultTimeout = 5 * time.Second

// Request describes one candidate lookup. Gen identifies the query it was
// issued for so late answers can be told apart from current ones.
type Request struct {
	Gen     uint64
	Query   string
	Fetcher candidate.Fetcher
}

// Result is delivered to the model when a lookup finishes.
type Result struct {
	Gen   uint64
	Query string
	Items []candidate.Candidate
	Err   error
}

// Bus runs candidate lookups off the update loop.
type Bus struct {
	timeout time.Duration
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{timeout: defaultTimeout}
}

// WithTimeout returns a bus whose lookups are cancelled after d.
func (b *Bus) WithTimeout(d time.Duration) *Bus {
	return &Bus{timeout: d}
}

// Fetch wraps a lookup into a Bubble Tea command while emitting trace logs.
func (b *Bus) Fetch(req Request) tea.Cmd {
	if req.Fetcher == nil {
		return nil
	}
	events.Candidates.Queue(req.Gen, req.Query)
	timeout := b.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		items, err := req.Fetcher.Fetch(ctx, req.Query)
		if err != nil {
			events.Candidates.Error(err)
		} else {
			events.Candidates.Result(req.Gen, len(items))
		}
		return Result{Gen: req.Gen, Query: req.Query, Items: items, Err: err}
	}
}
