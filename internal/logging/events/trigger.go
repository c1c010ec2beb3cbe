package events

import "github.com/atomicstack/tmux-popup-compose/internal/logging"

// TriggerTracer records the armed trigger lifecycle.
type TriggerTracer struct{}

type TriggerReason string

const (
	TriggerReasonGone     TriggerReason = "gone"
	TriggerReasonDismiss  TriggerReason = "dismiss"
	TriggerReasonOutside  TriggerReason = "outside"
	TriggerReasonBlur     TriggerReason = "blur"
	TriggerReasonCommit   TriggerReason = "commit"
	TriggerReasonReplaced TriggerReason = "replaced"
)

var Trigger = TriggerTracer{}

func (TriggerTracer) Arm(node, start int, query string) {
	logging.Trace("trigger.arm", map[string]interface{}{"node": node, "start": start, "query": query})
}

func (TriggerTracer) Query(query string) {
	logging.Trace("trigger.query", map[string]interface{}{"query": query})
}

func (TriggerTracer) Disarm(reason TriggerReason) {
	logging.Trace("trigger.disarm", map[string]interface{}{"reason": string(reason)})
}

func (TriggerTracer) Suppressed(node, start int) {
	logging.Trace("trigger.suppressed", map[string]interface{}{"node": node, "start": start})
}
