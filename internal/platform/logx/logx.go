// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

// EnvLevel is the environment variable read by New.
const EnvLevel = "VAJRA_LOG_LEVEL"

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

// sink is shared between a logger and every child created through With, so
// SetLevel on the root affects the whole tree.
type sink struct {
	mu  sync.Mutex
	lvl Level
	lg  *log.Logger
}

type simpleLogger struct {
	out   *sink
	scope []string // fixed key=value pairs
}

func New() Logger {
	return NewWriter(os.Stderr, parseLevel(os.Getenv(EnvLevel)))
}

// NewWithLevel creates a stderr logger with a specific log level.
func NewWithLevel(lvl Level) Logger {
	return NewWriter(os.Stderr, lvl)
}

// NewWriter creates a logger writing to w.
func NewWriter(w io.Writer, lvl Level) Logger {
	return &simpleLogger{out: &sink{lvl: lvl, lg: log.New(w, "", 0)}}
}

// Discard drops everything.
func Discard() Logger {
	return NewWriter(io.Discard, LevelOff)
}

func (s *simpleLogger) With(kv ...any) Logger {
	return &simpleLogger{
		out:   s.out,
		scope: append(append([]string{}, s.scope...), kvPairs(kv...)...),
	}
}

func (s *simpleLogger) SetLevel(lvl Level) {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()
	s.out.lvl = lvl
}

func (s *simpleLogger) Debug(msg string, kv ...any) { s.log(LevelDebug, "DBG", msg, kv...) }
func (s *simpleLogger) Info(msg string, kv ...any)  { s.log(LevelInfo, "INF", msg, kv...) }
func (s *simpleLogger) Warn(msg string, kv ...any)  { s.log(LevelWarn, "WRN", msg, kv...) }
func (s *simpleLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	kv = append([]any{"error", err.Error()}, kv...)
	s.log(LevelError, "ERR", "", kv...)
}

func (s *simpleLogger) log(l Level, tag, msg string, kv ...any) {
	s.out.mu.Lock()
	defer s.out.mu.Unlock()
	if l < s.out.lvl {
		return
	}
	fields := append([]string{}, s.scope...)
	fields = append(fields, kvPairs(kv...)...)

	parts := []string{time.Now().Format("15:04:05"), tag}
	if m := strings.TrimSpace(msg); m != "" {
		parts = append(parts, m)
	}
	parts = append(parts, fields...)
	s.out.lg.Println(strings.Join(parts, " "))
}

func kvPairs(kv ...any) []string {
	out := make([]string, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v any = "(missing)"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		out = append(out, fmt.Sprintf("%v=%v", kv[i], v))
	}
	return out
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	case "off", "none", "silent":
		return LevelOff
	default:
		return LevelInfo
	}
}

// ParseLevel exposes the level parser for configuration.
func ParseLevel(s string) Level { return parseLevel(s) }
