// Package logx is the leveled key=value logger used across reconforge.
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

// EnvLevel names the environment variable read by New.
const EnvLevel = "RECONFORGE_LOG_LEVEL"

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	levelOff
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "off"
	}
}

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

type simpleLogger struct {
	mu    *sync.Mutex
	lvl   Level
	scope []string // fixed key=value pairs
	lg    *log.Logger
}

// New builds a stderr logger whose level comes from RECONFORGE_LOG_LEVEL.
func New() Logger {
	return NewWriter(os.Stderr, ParseLevel(os.Getenv(EnvLevel)))
}

// NewWithLevel creates a stderr logger with a specific level.
func NewWithLevel(lvl Level) Logger {
	return NewWriter(os.Stderr, lvl)
}

// NewWriter creates a logger writing to w.
func NewWriter(w io.Writer, lvl Level) Logger {
	return &simpleLogger{
		mu:  &sync.Mutex{},
		lvl: lvl,
		lg:  log.New(w, "", 0),
	}
}

// NewSilent only lets errors through; used when the terminal UI owns stdout.
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewNop discards everything.
func NewNop() Logger {
	return NewWriter(io.Discard, levelOff)
}

func (s *simpleLogger) With(kv ...any) Logger {
	s.mu.Lock()
	lvl := s.lvl
	s.mu.Unlock()
	return &simpleLogger{
		mu:    s.mu,
		lvl:   lvl,
		scope: append(append([]string{}, s.scope...), kvPairs(kv...)...),
		lg:    s.lg,
	}
}

func (s *simpleLogger) SetLevel(lvl Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lvl = lvl
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
	s.mu.Lock()
	defer s.mu.Unlock()
	if l < s.lvl {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(tag)
	if strings.TrimSpace(msg) != "" {
		b.WriteByte(' ')
		b.WriteString(msg)
	}
	for _, f := range s.scope {
		b.WriteByte(' ')
		b.WriteString(f)
	}
	for _, f := range kvPairs(kv...) {
		b.WriteByte(' ')
		b.WriteString(f)
	}
	s.lg.Println(b.String())
}

func kvPairs(kv ...any) []string {
	out := make([]string, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v any = "(missing)"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		out = append(out, fmt.Sprintf("%v=%s", kv[i], quote(v)))
	}
	return out
}

// quote wraps values containing spaces so lines stay greppable.
func quote(v any) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, " \t\n") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// ParseLevel maps a level name to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning", "wrn":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
