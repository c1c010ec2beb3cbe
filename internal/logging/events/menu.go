package events

import "github.com/atomicstack/tmux-popup-compose/internal/logging"

type MenuTracer struct{}

type MenuReason string

const (
	MenuReasonEmpty   MenuReason = "empty"
	MenuReasonCommit  MenuReason = "commit"
	MenuReasonDisarm  MenuReason = "disarm"
	MenuReasonOutside MenuReason = "outside"
	MenuReasonEscape  MenuReason = "escape"
	MenuReasonStale   MenuReason = "stale"
	MenuReasonQuit    MenuReason = "quit"
)

var Menu = MenuTracer{}

func (MenuTracer) Open(items, x, y int) {
	logging.Trace("menu.open", map[string]interface{}{"items": items, "x": x, "y": y})
}

func (MenuTracer) Update(items, cursor int) {
	logging.Trace("menu.update", map[string]interface{}{"items": items, "cursor": cursor})
}

func (MenuTracer) Close(reason MenuReason) {
	logging.Trace("menu.close", map[string]interface{}{"reason": string(reason)})
}

func (MenuTracer) Cursor(cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"cursor": cursor})
}
