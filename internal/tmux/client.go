package tmux

import (
	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type tmuxClient interface {
	ListAllPanes() ([]*gotmux.Pane, error)
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}
