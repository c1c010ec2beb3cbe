package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/atomicstack/tmux-popup-compose/internal/app"
	"github.com/atomicstack/tmux-popup-compose/internal/ui/state"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envTrigger         = "TMUX_POPUP_COMPOSE_TRIGGER"
	envCandidates      = "TMUX_POPUP_COMPOSE_CANDIDATES"
	envCandidatesCmd   = "TMUX_POPUP_COMPOSE_CANDIDATES_COMMAND"
	envMatch           = "TMUX_POPUP_COMPOSE_MATCH"
	envMaxVisible      = "TMUX_POPUP_COMPOSE_MAX_VISIBLE"
	envRequireBoundary = "TMUX_POPUP_COMPOSE_REQUIRE_BOUNDARY"
	envWatch           = "TMUX_POPUP_COMPOSE_WATCH"
	envEmit            = "TMUX_POPUP_COMPOSE_EMIT"
	envSocketPath      = "TMUX_POPUP_COMPOSE_SOCKET"
	envTarget          = "TMUX_POPUP_COMPOSE_TARGET"
	envWidth           = "TMUX_POPUP_COMPOSE_WIDTH"
	envHeight          = "TMUX_POPUP_COMPOSE_HEIGHT"
	envShowFooter      = "TMUX_POPUP_COMPOSE_FOOTER"
	envTrace           = "TMUX_POPUP_COMPOSE_TRACE"
	envLogFile         = "TMUX_POPUP_COMPOSE_LOG_FILE"
	envClipboard       = "TMUX_POPUP_COMPOSE_CLIPBOARD"
)

const defaultMaxVisible = 6

// LoadArgs parses configuration from CLI arguments and environment
// variables. Flags win over the environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tmux-popup-compose", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	trigger := fs.String("trigger", envOrDefault(env, envTrigger, "/"), "character that opens the candidate menu")
	candidates := fs.String("candidates", envOrDefault(env, envCandidates, ""), "YAML file listing candidates (built-in list when empty)")
	candidatesCmd := fs.String("candidates-command", envOrDefault(env, envCandidatesCmd, ""), "command run with the query as its last argument to look candidates up")
	match := fs.String("match", envOrDefault(env, envMatch, "substring"), "candidate matching: substring or fuzzy")
	maxVisible := fs.Int("max-visible", envOrInt(env, envMaxVisible, defaultMaxVisible), "menu rows shown before scrolling")
	requireBoundary := fs.Bool("require-boundary", envOrBool(env, envRequireBoundary, false), "only accept a trigger at the start of a word")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload the candidates file when it changes")
	emit := fs.String("emit", envOrDefault(env, envEmit, "label"), "how chips are written on submit: label or payload")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	target := fs.String("target", envOrDefault(env, envTarget, ""), "tmux pane that receives the composed text on submit")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	clip := fs.Bool("clipboard", envOrBool(env, envClipboard, false), "copy the composed text to the system clipboard on submit")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	triggerRune, err := parseTrigger(*trigger)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Trigger:           triggerRune,
			CandidatesFile:    *candidates,
			CandidatesCommand: *candidatesCmd,
			Match:             *match,
			MaxVisible:        *maxVisible,
			RequireBoundary:   *requireBoundary,
			Watch:             *watch,
			Emit:              *emit,
			SocketPath:        *socket,
			Target:            *target,
			Width:             *width,
			Height:            *height,
			ShowFooter:        *footer,
			Clipboard:         *clip,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"trigger":           *trigger,
			"candidates":        *candidates,
			"candidatesCommand": *candidatesCmd,
			"match":             *match,
			"maxVisible":        strconv.Itoa(*maxVisible),
			"requireBoundary":   strconv.FormatBool(*requireBoundary),
			"watch":             strconv.FormatBool(*watch),
			"emit":              *emit,
			"socket":            *socket,
			"target":            *target,
			"width":             strconv.Itoa(*width),
			"height":            strconv.Itoa(*height),
			"footer":            strconv.FormatBool(*footer),
			"clipboard":         strconv.FormatBool(*clip),
			"trace":             strconv.FormatBool(*trace),
			"logFile":           *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseTrigger(value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("trigger must be a single character (got %q)", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if unicode.IsSpace(r) || unicode.IsControl(r) {
		return 0, fmt.Errorf("trigger must be a printable character (got %q)", value)
	}
	return r, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate checks option combinations that flag parsing alone cannot.
func Validate(cfg Config) error {
	a := cfg.App
	if _, err := state.ParseMatchMode(a.Match); err != nil {
		return err
	}
	if a.MaxVisible < 1 {
		return fmt.Errorf("max-visible must be >= 1 (got %d)", a.MaxVisible)
	}
	switch a.Emit {
	case app.EmitLabel, app.EmitPayload:
	default:
		return fmt.Errorf("emit must be %q or %q (got %q)", app.EmitLabel, app.EmitPayload, a.Emit)
	}
	if a.CandidatesFile != "" && a.CandidatesCommand != "" {
		return errors.New("candidates and candidates-command are mutually exclusive")
	}
	if a.Watch && a.CandidatesFile == "" {
		return errors.New("watch requires a candidates file")
	}
	return nil
}
