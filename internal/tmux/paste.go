package tmux

import (
	"fmt"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// PasteText types text into the target pane as literal keys.
func PasteText(socketPath, target, text string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("paste target required")
	}
	if text == "" {
		return nil
	}
	args := append(baseArgs(socketPath), "send-keys", "-t", target, "-l", "--", text)
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return fmt.Errorf("send-keys %s: %w", target, err)
	}
	return nil
}

// PaneExists reports whether target names a live pane on the server. The
// target may be a pane id (%3), a session:window.pane address, a
// session:window or a bare session name. Matching is exact; tmux's own
// fallback to the current pane is never consulted.
func PaneExists(socketPath, target string) (bool, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return false, fmt.Errorf("pane target required")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return false, fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()
	allPanes, err := client.ListAllPanes()
	if err != nil {
		return false, fmt.Errorf("list panes: %w", err)
	}
	live := make(map[string]struct{}, len(allPanes))
	for _, p := range allPanes {
		live[p.Id] = struct{}{}
	}
	lines, err := fetchPaneLines(socketPath)
	if err != nil {
		lines = fallbackPaneLines(allPanes)
	}
	for _, line := range lines {
		if _, ok := live[line.paneID]; !ok {
			continue
		}
		if line.matches(target) {
			return true, nil
		}
	}
	return false, nil
}

type paneLine struct {
	paneID  string
	address string
}

func (l paneLine) matches(target string) bool {
	if target == l.paneID {
		return true
	}
	if l.address == "" {
		return false
	}
	if target == l.address {
		return true
	}
	window := l.address
	if idx := strings.LastIndexByte(window, '.'); idx >= 0 {
		window = window[:idx]
	}
	if target == window {
		return true
	}
	session := window
	if idx := strings.LastIndexByte(session, ':'); idx >= 0 {
		session = session[:idx]
	}
	return target == session || target == session+":"
}

func fetchPaneLines(socketPath string) ([]paneLine, error) {
	args := append(baseArgs(socketPath), "list-panes", "-a", "-F", "#{pane_id}\t#{session_name}:#{window_index}.#{pane_index}")
	output, err := runExecCommand("tmux", args...).Output()
	if err != nil {
		return nil, err
	}
	var lines []paneLine
	for _, raw := range strings.Split(string(output), "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, address, _ := strings.Cut(raw, "\t")
		lines = append(lines, paneLine{
			paneID:  strings.TrimSpace(id),
			address: strings.TrimSpace(address),
		})
	}
	return lines, nil
}

func fallbackPaneLines(panes []*gotmux.Pane) []paneLine {
	lines := make([]paneLine, 0, len(panes))
	for _, p := range panes {
		lines = append(lines, paneLine{paneID: p.Id})
	}
	return lines
}
