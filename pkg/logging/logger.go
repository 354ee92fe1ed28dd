// Package logging configures the zerolog logger shared by the pager packages.
// Library packages log through the global logger (github.com/rs/zerolog/log)
// or take a zerolog.Logger; Setup decides where that output goes.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel is a level name as accepted on the command line.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// zerologLevels maps every accepted spelling to its zerolog level.
var zerologLevels = map[LogLevel]zerolog.Level{
	LevelDebug: zerolog.DebugLevel,
	LevelInfo:  zerolog.InfoLevel,
	LevelWarn:  zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	LevelError: zerolog.ErrorLevel,
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level written. Unknown levels mean info.
	Level LogLevel

	// Pretty switches from JSON lines to zerolog's console format.
	Pretty bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns JSON logging at info level on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// New builds a logger from cfg without touching global state. The level is
// applied to the logger itself.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(cfg.Level.toZerolog()).With().Timestamp().Logger()
}

// Setup applies cfg to the global zerolog logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(cfg.Level.toZerolog())
	log.Logger = New(cfg)
	return log.Logger
}

// ParseLevel validates a level name from flags or environment. Case and
// surrounding space are ignored; an empty name means info.
func ParseLevel(s string) (LogLevel, error) {
	name := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return LevelInfo, nil
	}
	if name == "warning" {
		return LevelWarn, nil
	}
	if _, ok := zerologLevels[name]; !ok {
		return "", fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
	return name, nil
}

func (l LogLevel) toZerolog() zerolog.Level {
	if lvl, ok := zerologLevels[LogLevel(strings.ToLower(string(l)))]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}

// NewLogger returns a child of the global logger tagged with component.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: per-task and per-lookup detail
//   - Plan cache hit/miss, key, TTL
//   - Each fetched source page
//   - Manifest loading
//
// Info: one line per completed unit of work
//   - Page resolved / page assembled (records, sources, duration)
//
// Warn: degraded but still answering
//   - Redis unreachable or cache errors (resolving without the cache)
//   - Failed page assembly (the caller gets the error)
//
// Error: reserved for callers deciding a failure is fatal
//
// Context Fields:
//   - component: Emitting component (NewLogger)
//   - source: Source id
//   - page: Page number (global or source-local, see message)
//   - size / page_size: Requested page size
//   - records: Number of records
//   - tasks: Number of fetch tasks
//   - key: Plan cache key
//   - ttl: Cache entry TTL
//   - duration: Operation duration
