// internal/core/usecases/availability_test.go
package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/errors"
)

// checkingScanner añade Check a mockScanner.
type checkingScanner struct {
	*mockScanner
	err error
}

func (c *checkingScanner) Check(context.Context) error { return c.err }

func TestCheckTools(t *testing.T) {
	tools := []domain.ToolID{
		domain.ToolNmap,
		domain.ToolHarvester,
		domain.ToolSublist3r,
		domain.ToolSQLInjection,
		domain.ToolSubdomainEnum,
	}
	scanners := map[domain.ToolID]ports.Scanner{
		domain.ToolNmap:          &checkingScanner{mockScanner: newMockScanner(domain.ToolNmap)},
		domain.ToolHarvester:     &checkingScanner{mockScanner: newMockScanner(domain.ToolHarvester), err: errors.New("theHarvester not found")},
		domain.ToolSubdomainEnum: newMockScanner(domain.ToolSubdomainEnum),
	}
	buildErrors := map[domain.ToolID]error{
		domain.ToolSQLInjection: errors.New("bad config"),
	}

	got := CheckTools(context.Background(), tools, scanners, buildErrors)
	require.Len(t, got, len(tools))

	byTool := make(map[domain.ToolID]ToolAvailability)
	for i, a := range got {
		assert.Equal(t, tools[i], a.Tool, "order preserved")
		byTool[a.Tool] = a
	}

	assert.True(t, byTool[domain.ToolNmap].Available)
	assert.Equal(t, domain.ToolNmap.DisplayName(), byTool[domain.ToolNmap].Name)

	assert.False(t, byTool[domain.ToolHarvester].Available)
	assert.Contains(t, byTool[domain.ToolHarvester].Detail, "not found")

	assert.False(t, byTool[domain.ToolSublist3r].Available)
	assert.Equal(t, "not configured", byTool[domain.ToolSublist3r].Detail)

	assert.False(t, byTool[domain.ToolSQLInjection].Available)
	assert.Equal(t, "bad config", byTool[domain.ToolSQLInjection].Detail)

	assert.True(t, byTool[domain.ToolSubdomainEnum].Available)
}

func TestCheckTools_Empty(t *testing.T) {
	assert.Empty(t, CheckTools(context.Background(), nil, nil, nil))
}
