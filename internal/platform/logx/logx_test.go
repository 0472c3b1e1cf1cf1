package logx

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DBG", LevelDebug},
		{"  info  ", LevelInfo},
		{"", LevelInfo},
		{"warning", LevelWarn},
		{"WRN", LevelWarn},
		{"ERROR", LevelError},
		{"err", LevelError},
		{"garbage", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestKVPairs(t *testing.T) {
	tests := []struct {
		name  string
		input []any
		want  []string
	}{
		{"empty", nil, []string{}},
		{"pairs", []any{"tool", "nmap", "hosts", 2}, []string{"tool=nmap", "hosts=2"}},
		{"odd count", []any{"tool", "nmap", "orphan"}, []string{"tool=nmap", "orphan=(missing)"}},
		{"spaces quoted", []any{"msg", "exit status 1"}, []string{`msg="exit status 1"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kvPairs(tt.input...))
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelWarn)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warn", "tool", "sqlmap")
	logger.Err(errors.New("boom"), "tool", "nmap")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WRN visible warn tool=sqlmap")
	assert.Contains(t, out, "ERR error=boom tool=nmap")
}

func TestLogger_ErrNil(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, LevelDebug).Err(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriter(&buf, LevelDebug)
	scoped := base.With("run", "abc")

	base.Info("plain")
	scoped.Info("scoped", "tool", "nmap")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "run=abc")
	assert.Contains(t, lines[1], "INF scoped run=abc tool=nmap")
}

func TestLogger_SetLevelSharedWithScope(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriter(&buf, LevelInfo)
	scoped := base.With("k", "v")
	scoped.SetLevel(LevelDebug)

	scoped.Debug("now visible")
	assert.Contains(t, buf.String(), "DBG now visible k=v")
}

func TestLogger_Nop(t *testing.T) {
	l := NewNop()
	l.Err(errors.New("ignored"))
	l.With("a", 1).Info("ignored")
}

func TestLogger_ThreadSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelDebug)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.With("worker", i).Info("tick")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "\n"))
}

func TestNew_WithEnv(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	l, ok := New().(*simpleLogger)
	require.True(t, ok)
	assert.Equal(t, LevelError, l.lvl)
}
