// internal/platform/ui/raw_presenter_test.go
package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconforge/internal/core/domain"
)

func fixedRaw(format LogFormat) (*RawPresenter, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewRawPresenter(format, &buf)
	r.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }
	return r, &buf
}

func TestRawPresenter_Text(t *testing.T) {
	r, buf := fixedRaw(LogFormatText)

	r.Start(RunInfo{RunID: "r1", Target: "example.com", Tools: []domain.ToolID{domain.ToolNmap, domain.ToolSublist3r}, TimeoutSeconds: 600})
	r.StartTool(domain.ToolNmap)
	r.FinishTool(ToolSummary{Tool: domain.ToolNmap, Status: StatusFailed, Duration: 2 * time.Second, Kind: "LaunchFailed", Detail: "nmap not found"})
	r.Finish(RunStats{Duration: 3 * time.Second, Succeeded: 1, Failed: 1, OverallSeverity: "High"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, `2026-01-01T12:00:00Z INFO  run_started ai=false pdf=false run_id=r1 target=example.com timeout=600s tools=nmap,sublist3r`, lines[0])
	assert.Equal(t, `2026-01-01T12:00:00Z INFO  tool_started tool=nmap`, lines[1])
	assert.Equal(t, `2026-01-01T12:00:00Z WARN  tool_finished duration=2s kind=LaunchFailed result="nmap not found" status=failed tool=nmap`, lines[2])
	assert.Contains(t, lines[3], "run_completed")
	assert.Contains(t, lines[3], "severity=High")
}

func TestRawPresenter_JSON(t *testing.T) {
	r, buf := fixedRaw(LogFormatJSON)

	r.Warning("dns unavailable")
	r.Finish(RunStats{Succeeded: 2, Reports: []string{"a.json", "b.pdf"}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var warn map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &warn))
	assert.Equal(t, "WARN", warn["level"])
	assert.Equal(t, "dns unavailable", warn["message"])
	assert.NotContains(t, warn, "data")

	var done map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &done))
	data := done["data"].(map[string]any)
	assert.Equal(t, "a.json,b.pdf", data["reports"])
	assert.Equal(t, float64(2), data["succeeded"])
}

func TestRawPresenter_FormatValue(t *testing.T) {
	r, _ := fixedRaw(LogFormatText)
	assert.Equal(t, "plain", r.formatValue("plain"))
	assert.Equal(t, `"two words"`, r.formatValue("two words"))
	assert.Equal(t, `""`, r.formatValue(""))
	assert.Equal(t, "1.5s", r.formatValue(1500*time.Millisecond))
	assert.Equal(t, "2.3", r.formatValue(2.345))
	assert.Equal(t, "7", r.formatValue(7))
}
