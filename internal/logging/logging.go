package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "tmux-popup-compose.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logger       *zap.Logger
)

// current returns the logger for the configured path, building it on first
// use. It falls back to a no-op logger when the file cannot be opened.
func current() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		return logger
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{logPath}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	built, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		built = zap.NewNop()
	}
	logger = built
	return logger
}

// Error writes err to the shared log file regardless of the trace setting.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error(err.Error(), zap.Error(err))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	fields := []zap.Field{zap.String("event", event)}
	if payload != nil {
		fields = append(fields, zap.Any("payload", payload))
	}
	current().Debug("trace", fields...)
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Sync flushes buffered entries.
func Sync() {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l != nil {
		_ = l.Sync()
	}
}
