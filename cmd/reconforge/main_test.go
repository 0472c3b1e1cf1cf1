// cmd/reconforge/main_test.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
)

// clearEnv removes variables that would leak host configuration into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY",
		"RECONFORGE_CONFIG",
		"RECONFORGE_TARGET",
		"RECONFORGE_TOOLS",
		"RECONFORGE_OUTPUT_DIR",
		"RECONFORGE_LOG_LEVEL",
		"RECONFORGE_AI_BASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "reconforge dev")
	assert.Contains(t, out, "Commit:  none")
}

func TestScan_UsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		args    []string
		wantErr string
	}{
		{"missing api key", "", []string{"scan", "example.com"}, "GEMINI_API_KEY"},
		{"unknown tool", "k", []string{"scan", "example.com", "--tools", "nikto"}, "unknown tool"},
		{"invalid target", "k", []string{"scan", "not a host!"}, "neither a valid domain"},
		{"empty target", "k", []string{"scan"}, "target cannot be empty"},
		{"bad progress mode", "k", []string{"scan", "example.com", "--progress", "fancy"}, "unknown progress mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("GEMINI_API_KEY", tt.key)

			code, _, stderr := runCLI(t, append(tt.args, "-o", t.TempDir())...)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestServe_MissingAPIKey(t *testing.T) {
	clearEnv(t)
	code, _, stderr := runCLI(t, "serve", "--addr", "127.0.0.1:0")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "GEMINI_API_KEY")
}

func TestEnum_RejectsIP(t *testing.T) {
	clearEnv(t)
	code, _, stderr := runCLI(t, "enum", "10.0.0.1")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "requires a domain")
}

func TestEnum_RequiresArgument(t *testing.T) {
	clearEnv(t)
	code, _, _ := runCLI(t, "enum")
	assert.Equal(t, exitFailed, code)
}

func TestScan_EndToEndWithFailedTool(t *testing.T) {
	clearEnv(t)

	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Overall risk is low."}]}}]}`))
	}))
	defer gemini.Close()

	out := t.TempDir()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("RECONFORGE_AI_BASE_URL", gemini.URL)

	code, stdout, stderr := runCLI(t,
		"scan", "example.com",
		"--tools", "nmap",
		"--nmap-path", filepath.Join(out, "missing-nmap"),
		"--progress", "text",
		"-o", out,
	)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "run_started")
	assert.Contains(t, stdout, "=== Reconforge Scan Results ===")

	reports, err := filepath.Glob(filepath.Join(out, "example_com", "reconforge_*.json"))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	pdfs, err := filepath.Glob(filepath.Join(out, "example_com", "security_report_*.pdf"))
	require.NoError(t, err)
	assert.Len(t, pdfs, 1)

	partials, err := filepath.Glob(filepath.Join(out, "example_com", "*_partial_*.json"))
	require.NoError(t, err)
	assert.Empty(t, partials, "partials are removed once the final report exists")

	data, err := os.ReadFile(reports[0])
	require.NoError(t, err)
	var report struct {
		Run struct {
			Results map[string]struct {
				Status string `json:"status"`
				Error  struct {
					Kind string `json:"kind"`
				} `json:"error"`
			} `json:"results"`
		} `json:"run"`
		Analyses map[string]string `json:"analyses"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	nmap := report.Run.Results["nmap"]
	assert.Equal(t, "failure", nmap.Status)
	assert.Equal(t, string(domain.KindLaunchFailed), nmap.Error.Kind)
	assert.Equal(t, "Overall risk is low.", report.Analyses[domain.OverallKey])
}

func TestResolveProgress(t *testing.T) {
	var buf bytes.Buffer

	mode, err := resolveProgress(progressAuto, &buf)
	require.NoError(t, err)
	assert.Equal(t, progressText, mode, "non-terminal output falls back to text")

	mode, err = resolveProgress(progressJSON, &buf)
	require.NoError(t, err)
	assert.Equal(t, progressJSON, mode)

	_, err = resolveProgress("fancy", &buf)
	assert.Error(t, err)
}

type stubWriter struct {
	name string
	path string
	err  error
}

func (s stubWriter) Name() string { return s.name }
func (s stubWriter) Write(*domain.RunResults, domain.Analyses) (string, error) {
	return s.path, s.err
}

func TestWriteReports_ContinuesAfterFailure(t *testing.T) {
	target, err := domain.NewTarget("example.com")
	require.NoError(t, err)
	run := domain.NewRunResults(target)

	boom := errors.New("disk full")
	paths, err := writeReports([]ports.ReportWriter{
		stubWriter{name: "json", err: boom},
		stubWriter{name: "pdf", path: "/tmp/report.pdf"},
		stubWriter{name: "table"},
	}, run, domain.Analyses{}, logx.NewSilent())

	assert.Equal(t, []string{"/tmp/report.pdf"}, paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "json report")
}
