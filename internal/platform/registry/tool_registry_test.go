// internal/platform/registry/tool_registry_test.go
package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
)

type stubScanner struct {
	tool domain.ToolID
	cfg  ports.ToolConfig
}

func (s *stubScanner) Tool() domain.ToolID    { return s.tool }
func (s *stubScanner) Timeout() time.Duration { return s.cfg.Timeout }
func (s *stubScanner) Scan(ctx context.Context, req ports.ScanRequest) (any, error) {
	return nil, nil
}

func stubFactory(tool domain.ToolID) ScannerFactory {
	return func(cfg ports.ToolConfig, logger logx.Logger) (ports.Scanner, error) {
		return &stubScanner{tool: tool, cfg: cfg}, nil
	}
}

func TestToolRegistry_Register(t *testing.T) {
	reg := NewToolRegistry(logx.NewNop())

	require.NoError(t, reg.Register(domain.ToolNmap, stubFactory(domain.ToolNmap), ports.ToolMetadata{Kind: ports.ToolKindCLI, Binary: "nmap"}))
	assert.True(t, reg.IsRegistered(domain.ToolNmap))

	meta, ok := reg.GetMetadata(domain.ToolNmap)
	require.True(t, ok)
	assert.Equal(t, domain.ToolNmap, meta.Tool)
	assert.Equal(t, "nmap", meta.Binary)

	assert.Error(t, reg.Register(domain.ToolNmap, stubFactory(domain.ToolNmap), ports.ToolMetadata{}), "duplicate")
	assert.Error(t, reg.Register("", stubFactory(domain.ToolNmap), ports.ToolMetadata{}), "empty id")
	assert.Error(t, reg.Register(domain.ToolSublist3r, nil, ports.ToolMetadata{}), "nil factory")
	assert.Panics(t, func() {
		reg.MustRegister(domain.ToolNmap, stubFactory(domain.ToolNmap), ports.ToolMetadata{})
	})
}

func TestToolRegistry_Build(t *testing.T) {
	reg := NewToolRegistry(logx.NewNop())
	reg.MustRegister(domain.ToolNmap, stubFactory(domain.ToolNmap), ports.ToolMetadata{})
	reg.MustRegister(domain.ToolHarvester, func(cfg ports.ToolConfig, logger logx.Logger) (ports.Scanner, error) {
		return nil, errors.New("python missing")
	}, ports.ToolMetadata{})
	reg.MustRegister(domain.ToolSublist3r, stubFactory(domain.ToolSublist3r), ports.ToolMetadata{})

	disabled := ports.DefaultToolConfig()
	disabled.Enabled = false
	nmapCfg := ports.DefaultToolConfig()
	nmapCfg.Timeout = time.Hour

	scanners, failures := reg.Build(
		[]domain.ToolID{domain.ToolNmap, domain.ToolHarvester, domain.ToolSublist3r, domain.ToolSQLInjection},
		map[domain.ToolID]ports.ToolConfig{domain.ToolNmap: nmapCfg, domain.ToolSublist3r: disabled},
		logx.NewNop(),
	)

	require.Len(t, scanners, 1)
	assert.Equal(t, time.Hour, scanners[domain.ToolNmap].Timeout())

	require.Len(t, failures, 3)
	assert.ErrorContains(t, failures[domain.ToolHarvester], "python missing")
	assert.ErrorContains(t, failures[domain.ToolSublist3r], "disabled")
	assert.ErrorContains(t, failures[domain.ToolSQLInjection], "not registered")
}

func TestToolRegistry_ListAndClear(t *testing.T) {
	reg := NewToolRegistry(nil)
	reg.MustRegister(domain.ToolSubdomainEnum, stubFactory(domain.ToolSubdomainEnum), ports.ToolMetadata{})
	reg.MustRegister(domain.ToolNmap, stubFactory(domain.ToolNmap), ports.ToolMetadata{})

	assert.Equal(t, []domain.ToolID{domain.ToolNmap, domain.ToolSubdomainEnum}, reg.List())

	reg.Clear()
	assert.Empty(t, reg.List())
}
