package events

import "github.com/atomicstack/tmux-popup-compose/internal/logging"

type CandidatesTracer struct{}

var Candidates = CandidatesTracer{}

func (CandidatesTracer) Queue(gen uint64, query string) {
	logging.Trace("candidates.queue", map[string]interface{}{"gen": gen, "query": query})
}

func (CandidatesTracer) Result(gen uint64, count int) {
	logging.Trace("candidates.result", map[string]interface{}{"gen": gen, "count": count})
}

func (CandidatesTracer) Stale(gen, current uint64) {
	logging.Trace("candidates.stale", map[string]interface{}{"gen": gen, "current": current})
}

func (CandidatesTracer) Reload(path string, count int) {
	logging.Trace("candidates.reload", map[string]interface{}{"path": path, "count": count})
}

func (CandidatesTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("candidates.error", map[string]interface{}{"error": err.Error()})
}
