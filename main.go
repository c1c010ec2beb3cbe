package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/tmux-popup-compose/internal/app"
	"github.com/atomicstack/tmux-popup-compose/internal/config"
	"github.com/atomicstack/tmux-popup-compose/internal/logging"
	"github.com/atomicstack/tmux-popup-compose/internal/logging/events"
	"golang.org/x/term"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

var runComposer = app.Run

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stderr))
}

func run(args, environ []string, stderr io.Writer) int {
	cfg, err := config.LoadArgs(args, environ)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitUsage
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	defer logging.Sync()

	events.App.Start(startupTracePayload(cfg))

	if err := runComposer(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	return exitOK
}

// startupTracePayload records how the composer was launched.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"composer": composerSummary(cfg.App),
		"tty":      collectTTYDetails(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type composerInfo struct {
	Trigger string `json:"trigger"`
	Source  string `json:"source"`
	Match   string `json:"match"`
	Emit    string `json:"emit"`
	Target  string `json:"target,omitempty"`
}

func composerSummary(c app.Config) composerInfo {
	source := "builtin"
	switch {
	case c.CandidatesCommand != "":
		source = "command"
	case c.CandidatesFile != "" && c.Watch:
		source = "file+watch"
	case c.CandidatesFile != "":
		source = "file"
	}
	return composerInfo{
		Trigger: string(c.Trigger),
		Source:  source,
		Match:   c.Match,
		Emit:    c.Emit,
		Target:  c.Target,
	}
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails probes the standard descriptors. The popup may run with
// stdout captured for the composed text, so the first terminal found is the
// one the UI will size against.
func collectTTYDetails() ttyDetails {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	var out ttyDetails
	for i, f := range files {
		entry := ttyProbeResult{Name: names[i]}
		fd := int(f.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			width, height, err := term.GetSize(fd)
			if err != nil {
				entry.Error = err.Error()
			} else {
				entry.Width, entry.Height = width, height
				if out.Detected == nil {
					out.Detected = &ttyDetected{Source: entry.Name, Width: width, Height: height}
				}
			}
		}
		out.Probes = append(out.Probes, entry)
	}
	return out
}
