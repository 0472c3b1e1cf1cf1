// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
)

// mockScanner es un mock de ports.Scanner para tests del orchestrator
type mockScanner struct {
	tool      domain.ToolID
	timeout   time.Duration
	scanFunc  func(ctx context.Context, req ports.ScanRequest) (any, error)
	callCount atomic.Int32

	mu      sync.Mutex
	lastReq ports.ScanRequest
}

func newMockScanner(tool domain.ToolID) *mockScanner {
	return &mockScanner{tool: tool}
}

func (m *mockScanner) Tool() domain.ToolID    { return m.tool }
func (m *mockScanner) Timeout() time.Duration { return m.timeout }

func (m *mockScanner) Scan(ctx context.Context, req ports.ScanRequest) (any, error) {
	m.callCount.Add(1)
	m.mu.Lock()
	m.lastReq = req
	m.mu.Unlock()

	if m.scanFunc != nil {
		return m.scanFunc(ctx, req)
	}
	// Default behavior: empty subdomain list
	return domain.SubdomainListPayload{Subdomains: []string{}}, nil
}

func (m *mockScanner) request() ports.ScanRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReq
}

// mockScannerWithPayload creates a mock that returns a specific payload
func mockScannerWithPayload(tool domain.ToolID, payload any) *mockScanner {
	mock := newMockScanner(tool)
	mock.scanFunc = func(ctx context.Context, req ports.ScanRequest) (any, error) {
		return payload, nil
	}
	return mock
}

// mockScannerWithError creates a mock that always fails
func mockScannerWithError(tool domain.ToolID, err error) *mockScanner {
	mock := newMockScanner(tool)
	mock.scanFunc = func(ctx context.Context, req ports.ScanRequest) (any, error) {
		return nil, err
	}
	return mock
}

// mockScannerBlocking creates a mock that waits until ctx is done or d elapses
func mockScannerBlocking(tool domain.ToolID, d time.Duration) *mockScanner {
	mock := newMockScanner(tool)
	mock.scanFunc = func(ctx context.Context, req ports.ScanRequest) (any, error) {
		select {
		case <-time.After(d):
			return domain.SubdomainListPayload{Subdomains: []string{}}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return mock
}

// inMemoryScanner es un mockScanner que no escribe en WorkDir
type inMemoryScanner struct {
	*mockScanner
}

func (inMemoryScanner) UsesWorkDir() bool { return false }

func scannerMap(scanners ...*mockScanner) map[domain.ToolID]ports.Scanner {
	out := make(map[domain.ToolID]ports.Scanner, len(scanners))
	for _, s := range scanners {
		out[s.tool] = s
	}
	return out
}

// mockNotifier es un mock de ports.Notifier para tests
type mockNotifier struct {
	mu              sync.Mutex
	notifyFunc      func(ctx context.Context, event ports.Event) error
	closeFunc       func() error
	notifyCallCount int
	events          []ports.Event
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{
		notifyCallCount: 0,
		events:          []ports.Event{},
	}
}

func (m *mockNotifier) Notify(ctx context.Context, event ports.Event) error {
	m.mu.Lock()
	m.notifyCallCount++
	m.events = append(m.events, event)
	m.mu.Unlock()

	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, event)
	}
	return nil
}

func (m *mockNotifier) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

// getEventsByType returns events filtered by type
func (m *mockNotifier) getEventsByType(eventType ports.EventType) []ports.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	var filtered []ports.Event
	for _, e := range m.events {
		if e.Type == eventType {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// getNotifyCallCount returns the number of times Notify was called (thread-safe)
func (m *mockNotifier) getNotifyCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifyCallCount
}

// mockAnalyzer es un mock de ports.Analyzer
type mockAnalyzer struct {
	mu          sync.Mutex
	analyzeFunc func(ctx context.Context, tool string, payload any) (string, error)
	inputs      map[string]any
}

func newMockAnalyzer(fn func(ctx context.Context, tool string, payload any) (string, error)) *mockAnalyzer {
	return &mockAnalyzer{analyzeFunc: fn, inputs: make(map[string]any)}
}

func (m *mockAnalyzer) Analyze(ctx context.Context, tool string, payload any) (string, error) {
	m.mu.Lock()
	m.inputs[tool] = payload
	m.mu.Unlock()
	return m.analyzeFunc(ctx, tool, payload)
}

func (m *mockAnalyzer) input(tool string) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inputs[tool]
}
