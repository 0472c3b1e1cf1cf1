// internal/core/usecases/analysis_service.go
package usecases

import (
	"context"
	"strings"
	"sync"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
)

// AnalysisUnavailable texto usado cuando el análisis de IA falla o viene vacío.
const AnalysisUnavailable = "AI analysis unavailable."

// AnalysisService genera un análisis por herramienta más uno global.
type AnalysisService struct {
	analyzer ports.Analyzer
	timeout  time.Duration
	logger   logx.Logger
}

// NewAnalysisService crea el servicio. timeout limita cada llamada (0 = sin límite propio).
func NewAnalysisService(analyzer ports.Analyzer, timeout time.Duration, logger logx.Logger) *AnalysisService {
	if logger == nil {
		logger = logx.NewNop()
	}
	return &AnalysisService{
		analyzer: analyzer,
		timeout:  timeout,
		logger:   logger.With("component", "analysis"),
	}
}

// AnalyzeRun analiza cada resultado de la ejecución y el conjunto completo.
// Los fallos de herramienta se analizan como su texto de error. Nunca falla:
// cualquier error se sustituye por AnalysisUnavailable.
func (s *AnalysisService) AnalyzeRun(ctx context.Context, run *domain.RunResults) domain.Analyses {
	if run == nil {
		return domain.Analyses{}
	}
	analyses := make(domain.Analyses, len(run.Results)+1)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	analyze := func(key string, payload any) {
		defer wg.Done()
		text := s.analyzeOne(ctx, key, payload)
		mu.Lock()
		analyses[key] = text
		mu.Unlock()
	}

	for _, tool := range run.Tools() {
		wg.Add(1)
		go analyze(string(tool), AnalysisInput(run.Results[tool]))
	}

	wg.Add(1)
	go analyze(domain.OverallKey, OverallInput(run))

	wg.Wait()
	return analyses
}

func (s *AnalysisService) analyzeOne(ctx context.Context, key string, payload any) (text string) {
	if s.analyzer == nil {
		return AnalysisUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("analyzer panicked", "key", key, "panic", r)
			text = AnalysisUnavailable
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.analyzer.Analyze(ctx, key, payload)
	if err != nil {
		s.logger.Warn("analysis failed", "key", key, "error", err.Error())
		return AnalysisUnavailable
	}
	if strings.TrimSpace(out) == "" {
		s.logger.Warn("analysis returned empty text", "key", key)
		return AnalysisUnavailable
	}

	s.logger.Debug("analysis completed", "key", key, "chars", len(out), "duration_ms", time.Since(start).Milliseconds())
	return out
}

// AnalysisInput retorna lo que se envía al analizador para un resultado:
// el payload si tuvo éxito o {"error": ...} si falló.
func AnalysisInput(res domain.ScanResult) any {
	if res.OK() {
		return res.Payload
	}
	if res.Failure == nil {
		return map[string]string{"error": "unknown failure"}
	}
	return map[string]string{
		"error": res.Failure.Message,
		"kind":  string(res.Failure.Kind),
	}
}

// OverallInput agrupa las entradas de todas las herramientas para el análisis global.
func OverallInput(run *domain.RunResults) map[string]any {
	out := make(map[string]any, len(run.Results))
	for tool, res := range run.Results {
		out[string(tool)] = AnalysisInput(res)
	}
	return out
}
