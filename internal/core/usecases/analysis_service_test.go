// internal/core/usecases/analysis_service_test.go
package usecases

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconforge/internal/core/domain"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
)

func sampleRun() *domain.RunResults {
	run := domain.NewRunResults(domain.Target{Value: "example.com", Kind: domain.TargetKindDomain})
	now := time.Now()
	run.Results[domain.ToolNmap] = domain.NewSuccess(domain.ToolNmap, domain.NetworkScanPayload{}, now, time.Second)
	run.Results[domain.ToolSublist3r] = domain.NewSuccess(domain.ToolSublist3r,
		domain.SubdomainListPayload{Subdomains: []string{"www.example.com"}}, now, time.Second)
	run.Results[domain.ToolSQLInjection] = domain.NewFailure(domain.ToolSQLInjection,
		domain.KindTimeoutExceeded, "sqlmap exceeded 1m30s", now, 90*time.Second)
	return run
}

func TestAnalysisService_AnalyzeRun(t *testing.T) {
	analyzer := newMockAnalyzer(func(ctx context.Context, tool string, payload any) (string, error) {
		return "analysis of " + tool, nil
	})
	svc := NewAnalysisService(analyzer, time.Second, logx.NewSilent())

	analyses := svc.AnalyzeRun(context.Background(), sampleRun())

	assert.Equal(t, domain.Analyses{
		"nmap":          "analysis of nmap",
		"sublist3r":     "analysis of sublist3r",
		"sql_injection": "analysis of sql_injection",
		"overall":       "analysis of overall",
	}, analyses)

	assert.Equal(t, map[string]string{"error": "sqlmap exceeded 1m30s", "kind": "TimeoutExceeded"}, analyzer.input("sql_injection"))
	assert.Equal(t, domain.SubdomainListPayload{Subdomains: []string{"www.example.com"}}, analyzer.input("sublist3r"))

	overall, ok := analyzer.input("overall").(map[string]any)
	require.True(t, ok)
	assert.Len(t, overall, 3)
}

func TestAnalysisService_Fallbacks(t *testing.T) {
	analyzer := newMockAnalyzer(func(ctx context.Context, tool string, payload any) (string, error) {
		switch tool {
		case "nmap":
			return "", errors.Wrap(errors.ErrDependencyUnavailable, "quota exceeded")
		case "sublist3r":
			return "   \n", nil
		case "sql_injection":
			panic("analyzer bug")
		}
		return "ok", nil
	})
	svc := NewAnalysisService(analyzer, 0, logx.NewSilent())

	analyses := svc.AnalyzeRun(context.Background(), sampleRun())

	assert.Equal(t, AnalysisUnavailable, analyses["nmap"])
	assert.Equal(t, AnalysisUnavailable, analyses["sublist3r"])
	assert.Equal(t, AnalysisUnavailable, analyses["sql_injection"])
	assert.Equal(t, "ok", analyses[domain.OverallKey])
}

func TestAnalysisService_AllToolsFailedStillAnalyzed(t *testing.T) {
	run := domain.NewRunResults(domain.Target{Value: "example.com", Kind: domain.TargetKindDomain})
	for _, tool := range domain.AllTools() {
		run.Results[tool] = domain.NewFailure(tool, domain.KindLaunchFailed, string(tool)+" not found", time.Now(), 0)
	}

	var calls atomic.Int32
	analyzer := newMockAnalyzer(func(ctx context.Context, tool string, payload any) (string, error) {
		calls.Add(1)
		return strings.ToUpper(tool), nil
	})

	analyses := NewAnalysisService(analyzer, time.Second, logx.NewSilent()).AnalyzeRun(context.Background(), run)
	assert.Len(t, analyses, 6)
	assert.Equal(t, int32(6), calls.Load())
}

func TestAnalysisService_TimeoutPerCall(t *testing.T) {
	analyzer := newMockAnalyzer(func(ctx context.Context, tool string, payload any) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	svc := NewAnalysisService(analyzer, 20*time.Millisecond, logx.NewSilent())

	start := time.Now()
	analyses := svc.AnalyzeRun(context.Background(), sampleRun())
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, AnalysisUnavailable, analyses[domain.OverallKey])
}

func TestAnalysisService_NilAnalyzerAndRun(t *testing.T) {
	svc := NewAnalysisService(nil, 0, nil)
	assert.Empty(t, svc.AnalyzeRun(context.Background(), nil))

	analyses := svc.AnalyzeRun(context.Background(), sampleRun())
	for _, text := range analyses {
		assert.Equal(t, AnalysisUnavailable, text)
	}
}
