package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/tmux-popup-compose/internal/backend"
	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
	"github.com/atomicstack/tmux-popup-compose/internal/logging/events"
	"github.com/atomicstack/tmux-popup-compose/internal/surface"
	"github.com/atomicstack/tmux-popup-compose/internal/tmux"
	"github.com/atomicstack/tmux-popup-compose/internal/ui"
	uistate "github.com/atomicstack/tmux-popup-compose/internal/ui/state"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Chip serialisation modes for submitted text.
const (
	EmitLabel   = "label"
	EmitPayload = "payload"
)

const watchDebounce = 150 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	Trigger           rune
	CandidatesFile    string
	CandidatesCommand string
	Match             string
	MaxVisible        int
	RequireBoundary   bool
	Watch             bool
	Emit              string
	SocketPath        string
	Target            string
	Width             int
	Height            int
	ShowFooter        bool
	Clipboard         bool
}

var (
	pasteText      = tmux.PasteText
	paneExists     = tmux.PaneExists
	writeClipboard = clipboard.WriteAll
)

// Run bootstraps and executes the Bubble Tea program, then delivers whatever
// the user submitted.
func Run(cfg Config) error {
	socketPath, err := checkTarget(cfg)
	if err != nil {
		return err
	}
	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}
	model := ui.NewModel(opts)
	defer model.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus()}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		programOpts = append(programOpts, tea.WithOutput(os.Stderr))
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	program := tea.NewProgram(model, programOpts...)
	_, err = program.Run()
	model.Close()
	if opts.Watcher != nil {
		opts.Watcher.Wait()
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	return deliver(cfg, socketPath, model.Result(), os.Stdout)
}

// checkTarget resolves the socket and confirms the paste target exists before
// the popup opens, so a typo does not cost the user their text.
func checkTarget(cfg Config) (string, error) {
	if cfg.Target == "" {
		return "", nil
	}
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return "", fmt.Errorf("resolve socket path: %w", err)
	}
	ok, err := paneExists(socketPath, cfg.Target)
	if err != nil {
		return "", fmt.Errorf("check target %s: %w", cfg.Target, err)
	}
	if !ok {
		return "", fmt.Errorf("target pane %s not found", cfg.Target)
	}
	return socketPath, nil
}

func buildOptions(cfg Config) (ui.Options, error) {
	match, err := uistate.ParseMatchMode(cfg.Match)
	if err != nil {
		return ui.Options{}, err
	}
	opts := ui.Options{
		Trigger:         cfg.Trigger,
		RequireBoundary: cfg.RequireBoundary,
		Match:           match,
		MaxVisible:      cfg.MaxVisible,
		Width:           cfg.Width,
		Height:          cfg.Height,
		ShowFooter:      cfg.ShowFooter,
		ChipText:        chipText(cfg.Emit),
	}
	switch {
	case cfg.CandidatesCommand != "":
		fetcher, err := candidate.NewCommandFetcher(cfg.CandidatesCommand)
		if err != nil {
			return ui.Options{}, err
		}
		opts.Fetcher = fetcher
	case cfg.CandidatesFile != "":
		items, err := candidate.LoadFile(cfg.CandidatesFile)
		if err != nil {
			return ui.Options{}, err
		}
		opts.Candidates = items
		if cfg.Watch {
			watcher, err := backend.NewWatcher(cfg.CandidatesFile, candidate.LoadFile, watchDebounce)
			if err != nil {
				return ui.Options{}, fmt.Errorf("watch candidates: %w", err)
			}
			opts.Watcher = watcher
		}
	default:
		opts.Candidates = candidate.Defaults()
	}
	return opts, nil
}

// chipText returns how chips are written on submit. Payloads fall back to the
// label when they are empty.
func chipText(emit string) func(surface.Chip) string {
	if emit != EmitPayload {
		return nil
	}
	return func(c surface.Chip) string {
		if c.Payload == nil {
			return c.Label
		}
		if text := fmt.Sprint(c.Payload); text != "" {
			return text
		}
		return c.Label
	}
}

func deliver(cfg Config, socketPath string, res ui.Result, out io.Writer) error {
	if !res.Submitted {
		return nil
	}
	if _, err := fmt.Fprintln(out, res.Text); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if cfg.Clipboard {
		events.App.Clipboard(len(res.Text))
		if err := writeClipboard(res.Text); err != nil {
			return fmt.Errorf("copy result: %w", err)
		}
	}
	if cfg.Target == "" {
		return nil
	}
	events.App.Paste(cfg.Target)
	if err := pasteText(socketPath, cfg.Target, res.Text); err != nil {
		return fmt.Errorf("paste result: %w", err)
	}
	return nil
}
