// internal/core/domain/scan_result_test.go
package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconforge/internal/platform/errors"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"launch", errors.Wrap(errors.ErrLaunchFailed, "nmap not found in PATH"), KindLaunchFailed},
		{"timeout sentinel", errors.Wrap(errors.ErrTimeout, "after 60s"), KindTimeoutExceeded},
		{"deadline", fmt.Errorf("probe: %w", context.DeadlineExceeded), KindTimeoutExceeded},
		{"canceled", context.Canceled, KindCanceled},
		{"parse", errors.Wrap(errors.ErrParse, "bad xml"), KindParseError},
		{"network", errors.Wrap(errors.ErrConnectionFailed, "dial"), KindNetworkUnreachable},
		{"dependency", errors.ErrDependencyUnavailable, KindDependencyUnavailable},
		{"tool exit", errors.Wrap(errors.ErrToolFailed, "exit 1"), KindToolFailed},
		{"unclassified", errors.New("weird"), KindInternal},
		{"nil", nil, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestScanResult_Constructors(t *testing.T) {
	start := time.Now()

	ok := NewSuccess(ToolSublist3r, SubdomainListPayload{Subdomains: []string{"a.example.com"}}, start, time.Second)
	assert.True(t, ok.OK())
	assert.Nil(t, ok.Failure)

	failed := FailureFromError(ToolNmap, errors.Wrap(errors.ErrLaunchFailed, "nmap not found in PATH"), start, 0)
	assert.False(t, failed.OK())
	assert.Nil(t, failed.Payload)
	require.NotNil(t, failed.Failure)
	assert.Equal(t, KindLaunchFailed, failed.Failure.Kind)
	assert.Equal(t, "nmap not found in PATH: launch failed", failed.Failure.Message)
	assert.Equal(t, "LaunchFailed: nmap not found in PATH: launch failed", failed.Failure.Error())
}

func TestScanResult_MarshalJSON(t *testing.T) {
	t.Run("success carries payload", func(t *testing.T) {
		r := NewSuccess(ToolSQLInjection, SQLInjectionPayload{Findings: []string{"x"}, Output: "o"}, time.Time{}, 1500*time.Millisecond)
		b, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{"tool":"sql_injection","status":"success","payload":{"findings":["x"],"output":"o"},"duration_ms":1500}`, string(b))
	})

	t.Run("failure carries error", func(t *testing.T) {
		r := NewFailure(ToolHarvester, KindTimeoutExceeded, " timed out after 60s\n", time.Time{}, 60*time.Second)
		b, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{"tool":"harvester","status":"failure","error":{"kind":"TimeoutExceeded","message":"timed out after 60s"},"duration_ms":60000}`, string(b))
	})
}

func TestScanResult_Summary(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		res  ScanResult
		want string
	}{
		{
			name: "harvester",
			res:  NewSuccess(ToolHarvester, HarvestPayload{Emails: []string{"a@b.c"}}, now, 0),
			want: "1 emails, 0 hosts, 0 domains",
		},
		{
			name: "sublist3r",
			res:  NewSuccess(ToolSublist3r, SubdomainListPayload{Subdomains: []string{"a", "b"}}, now, 0),
			want: "2 subdomains",
		},
		{
			name: "sqli",
			res:  NewSuccess(ToolSQLInjection, SQLInjectionPayload{Findings: []string{"x"}}, now, 0),
			want: "1 findings",
		},
		{
			name: "multiline failure",
			res:  NewFailure(ToolNmap, KindToolFailed, "nmap exited with code 1:\nQUITTING", now, 0),
			want: "nmap exited with code 1: ...",
		},
		{
			name: "unknown payload",
			res:  NewSuccess(ToolNmap, 42, now, 0),
			want: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Summary())
		})
	}
}
