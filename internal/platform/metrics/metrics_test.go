package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
)

func TestCollector_Notify(t *testing.T) {
	c, err := NewCollector()
	require.NoError(t, err)
	ctx := context.Background()

	ok := domain.NewSuccess(domain.ToolNmap, domain.NetworkScanPayload{}, time.Now(), 2*time.Second)
	bad := domain.NewFailure(domain.ToolHarvester, domain.KindTimeoutExceeded, "timeout", time.Now(), 60*time.Second)

	require.NoError(t, c.Notify(ctx, ports.NewEvent(ports.EventToolStarted, "r", domain.ToolNmap, nil)))
	require.NoError(t, c.Notify(ctx, ports.NewEvent(ports.EventToolStarted, "r", domain.ToolHarvester, nil)))
	assert.Equal(t, float64(2), promtest.ToFloat64(c.toolsRunning))

	require.NoError(t, c.Notify(ctx, ports.NewEvent(ports.EventToolCompleted, "r", ok.Tool, ports.ToolFinishedEvent{Result: ok})))
	require.NoError(t, c.Notify(ctx, ports.NewEvent(ports.EventToolFailed, "r", bad.Tool, ports.ToolFinishedEvent{Result: bad})))
	require.NoError(t, c.Notify(ctx, ports.NewEvent(ports.EventRunCompleted, "r", "", ports.RunCompletedEvent{Duration: time.Minute})))

	assert.Equal(t, float64(0), promtest.ToFloat64(c.toolsRunning))
	assert.Equal(t, float64(1), promtest.ToFloat64(c.toolRuns.WithLabelValues("nmap", "success", "")))
	assert.Equal(t, float64(1), promtest.ToFloat64(c.toolRuns.WithLabelValues("harvester", "failure", "TimeoutExceeded")))
	assert.Equal(t, float64(1), promtest.ToFloat64(c.runsTotal))
	assert.Equal(t, 2, promtest.CollectAndCount(c.toolDuration))
}

func TestCollector_RejectsBadData(t *testing.T) {
	c, err := NewCollector()
	require.NoError(t, err)
	assert.Error(t, c.Notify(context.Background(), ports.NewEvent(ports.EventToolCompleted, "r", domain.ToolNmap, "x")))
	assert.NoError(t, c.Close())
}

func TestCollector_Handler(t *testing.T) {
	c, err := NewCollector()
	require.NoError(t, err)
	require.NoError(t, c.Notify(context.Background(), ports.NewEvent(ports.EventRunCompleted, "r", "", ports.RunCompletedEvent{})))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "reconforge_runs_total 1"), body)
	assert.Contains(t, body, "reconforge_tools_running 0")
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a, err := NewCollector()
	require.NoError(t, err)
	b, err := NewCollector()
	require.NoError(t, err)
	assert.NotSame(t, a.Registry(), b.Registry())
}
