// Package logger builds the service's zerolog logger and holds the process
// instance installed by Init.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New and Init.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else means info.
	Level string
	// Pretty switches to zerolog's console writer for local runs.
	Pretty bool
	// Service, when set, is attached to every event.
	Service string
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu      sync.RWMutex
	current *zerolog.Logger
)

// New builds a logger from opts without touching package state.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	return ctx.Logger()
}

// Init installs the process logger and makes it zerolog's context fallback.
// Later calls are no-ops until Reset.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := New(opts)
	current = &l
	zerolog.DefaultContextLogger = current
}

// Get returns the installed logger. It panics before Init.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		panic("logger: Get called before Init")
	}
	return *current
}

// Reset uninstalls the process logger. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = nil
	zerolog.DefaultContextLogger = nil
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
