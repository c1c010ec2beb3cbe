package backend

import (
	"context"
	"sync"
	"time"
)

// reloadPacer keeps successive candidate reloads at least gap apart.
type reloadPacer struct {
	gap time.Duration

	mu   sync.Mutex
	last time.Time
}

func newReloadPacer(gap time.Duration) *reloadPacer {
	return &reloadPacer{gap: gap}
}

// ready blocks until the next reload may run and claims that slot. It
// returns false when ctx ends first.
func (p *reloadPacer) ready(ctx context.Context) bool {
	if p == nil || p.gap <= 0 {
		return ctx.Err() == nil
	}
	p.mu.Lock()
	delay := time.Until(p.last.Add(p.gap))
	p.mu.Unlock()
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	p.mu.Lock()
	p.last = time.Now()
	p.mu.Unlock()
	return true
}
