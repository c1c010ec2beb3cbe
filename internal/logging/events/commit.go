package events

import "github.com/atomicstack/tmux-popup-compose/internal/logging"

type CommitTracer struct{}

var Commit = CommitTracer{}

func (CommitTracer) Insert(candidateID, label, instanceID string) {
	logging.Trace("commit.insert", map[string]interface{}{
		"candidate": candidateID,
		"label":     label,
		"instance":  instanceID,
	})
}

func (CommitTracer) Stale(err error) {
	if err == nil {
		return
	}
	logging.Trace("commit.stale", map[string]interface{}{"error": err.Error()})
}
