// internal/adapters/output/streaming_test.go
package output

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
)

func TestStreamingWriter_WritesPartialPerTool(t *testing.T) {
	dir := t.TempDir()
	w := NewStreamingWriter(dir, logx.NewSilent())
	ctx := context.Background()

	target, err := domain.NewTarget("example.com")
	require.NoError(t, err)

	require.NoError(t, w.Notify(ctx, ports.NewEvent(ports.EventRunStarted, "run-1", "", ports.RunStartedEvent{Target: target})))
	require.NoError(t, w.Notify(ctx, ports.NewEvent(ports.EventToolStarted, "run-1", domain.ToolNmap, nil)))

	ok := domain.NewSuccess(domain.ToolSublist3r, domain.SubdomainListPayload{Subdomains: []string{"www.example.com"}}, time.Now(), time.Second)
	failed := domain.NewFailure(domain.ToolNmap, domain.KindTimeoutExceeded, "nmap exceeded 1h0m0s", time.Now(), time.Hour)
	require.NoError(t, w.Notify(ctx, ports.NewEvent(ports.EventToolCompleted, "run-1", ok.Tool, ports.ToolFinishedEvent{Result: ok})))
	require.NoError(t, w.Notify(ctx, ports.NewEvent(ports.EventToolFailed, "run-1", failed.Tool, ports.ToolFinishedEvent{Result: failed})))

	written := w.Written()
	require.Len(t, written, 2)
	for _, path := range written {
		assert.Equal(t, filepath.Join(dir, "example_com"), filepath.Dir(path))
		assert.True(t, strings.HasPrefix(filepath.Base(path), "reconforge_example.com_"))
		assert.Contains(t, filepath.Base(path), "_partial_")
	}

	data, err := os.ReadFile(written[1])
	require.NoError(t, err)
	var partial map[string]any
	require.NoError(t, json.Unmarshal(data, &partial))
	assert.Equal(t, "run-1", partial["run_id"])
	assert.Equal(t, "TimeoutExceeded", partial["result"].(map[string]any)["error"].(map[string]any)["kind"])

	require.NoError(t, w.Cleanup())
	for _, path := range written {
		assert.NoFileExists(t, path)
	}
	assert.Empty(t, w.Written())
	assert.NoError(t, w.Close())
}

func TestStreamingWriter_RejectsUnexpectedData(t *testing.T) {
	w := NewStreamingWriter(t.TempDir(), nil)
	err := w.Notify(context.Background(), ports.NewEvent(ports.EventToolCompleted, "run", domain.ToolNmap, "bogus"))
	assert.Error(t, err)
}

func TestStreamingWriter_PartialFilename(t *testing.T) {
	w := NewStreamingWriter(t.TempDir(), nil)
	name := w.PartialFilename(domain.ToolHarvester)
	assert.True(t, strings.HasSuffix(name, "_partial_harvester.json"), name)
}
