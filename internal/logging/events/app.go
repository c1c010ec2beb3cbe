package events

import "github.com/atomicstack/tmux-popup-compose/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Submit(chips int, length int) {
	logging.Trace("app.submit", map[string]interface{}{"chips": chips, "length": length})
}

func (AppTracer) Paste(target string) {
	logging.Trace("app.paste", map[string]interface{}{"target": target})
}

func (AppTracer) Clipboard(length int) {
	logging.Trace("app.clipboard", map[string]interface{}{"length": length})
}

func (AppTracer) Quit() {
	logging.Trace("app.quit", nil)
}
