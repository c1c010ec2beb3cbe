package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-popup-compose/internal/app"
	"github.com/atomicstack/tmux-popup-compose/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Trigger:    '@',
			Match:      "fuzzy",
			MaxVisible: 6,
			Emit:       app.EmitLabel,
			SocketPath: "socket-path",
			Width:      80,
			Height:     24,
			ShowFooter: true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"socket":  "socket-path",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"trigger": "@",
		},
		Args: []string{"--socket", "socket-path"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flagsValue["socket"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["trigger"] != "@" {
		t.Fatalf("expected trigger flag @, got %v", flagsValue["trigger"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func withStubComposer(t *testing.T, fn func(app.Config) error) {
	t.Helper()
	prev := runComposer
	runComposer = fn
	t.Cleanup(func() { runComposer = prev })
}

func TestRunExitCodes(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "compose.log")
	var got app.Config
	withStubComposer(t, func(cfg app.Config) error {
		got = cfg
		return nil
	})
	var stderr strings.Builder
	if code := run([]string{"--trigger", "@", "--log-file", logFile}, nil, &stderr); code != exitOK {
		t.Fatalf("expected exit %d, got %d (%s)", exitOK, code, stderr.String())
	}
	if got.Trigger != '@' {
		t.Fatalf("expected parsed config passed through, got %q", got.Trigger)
	}

	withStubComposer(t, func(app.Config) error { return errors.New("target pane %9 not found") })
	stderr.Reset()
	if code := run([]string{"--log-file", logFile}, nil, &stderr); code != exitFailed {
		t.Fatalf("expected exit %d, got %d", exitFailed, code)
	}
	if !strings.Contains(stderr.String(), "Error: target pane %9 not found") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}

	withStubComposer(t, func(app.Config) error {
		t.Fatalf("composer must not start on bad configuration")
		return nil
	})
	for _, args := range [][]string{{"--trigger", "ab"}, {"--emit", "json"}} {
		stderr.Reset()
		if code := run(args, nil, &stderr); code != exitUsage {
			t.Fatalf("args %v: expected exit %d, got %d", args, exitUsage, code)
		}
		if !strings.HasPrefix(stderr.String(), "Configuration error:") {
			t.Fatalf("args %v: unexpected stderr %q", args, stderr.String())
		}
	}
}

func TestComposerSummaryNamesCandidateSource(t *testing.T) {
	cases := []struct {
		cfg  app.Config
		want string
	}{
		{app.Config{}, "builtin"},
		{app.Config{CandidatesFile: "c.yaml"}, "file"},
		{app.Config{CandidatesFile: "c.yaml", Watch: true}, "file+watch"},
		{app.Config{CandidatesCommand: "lookup"}, "command"},
	}
	for _, tc := range cases {
		if got := composerSummary(tc.cfg).Source; got != tc.want {
			t.Fatalf("%+v: expected source %q, got %q", tc.cfg, tc.want, got)
		}
	}
	info := composerSummary(app.Config{Trigger: '#', Match: "fuzzy", Emit: app.EmitPayload, Target: "%1"})
	if info.Trigger != "#" || info.Match != "fuzzy" || info.Emit != app.EmitPayload || info.Target != "%1" {
		t.Fatalf("unexpected summary %+v", info)
	}
}
