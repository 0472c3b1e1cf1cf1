// internal/adapters/httpapi/server.go
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/core/usecases"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
)

// ScanRunner ejecuta un escaneo completo (implementado por usecases.Orchestrator).
type ScanRunner interface {
	RunScans(ctx context.Context, target domain.Target, selection []domain.ToolID) (*domain.RunResults, error)
}

// RunAnalyzer produce los análisis de IA de una ejecución.
type RunAnalyzer interface {
	AnalyzeRun(ctx context.Context, run *domain.RunResults) domain.Analyses
}

// CatalogFunc retorna el catálogo de herramientas con su disponibilidad.
type CatalogFunc func(ctx context.Context) []usecases.ToolAvailability

// Options configura el servidor HTTP.
type Options struct {
	Scans    ScanRunner
	Analyzer RunAnalyzer
	Writers  []ports.ReportWriter
	Catalog  CatalogFunc
	Metrics  http.Handler
	Logger   logx.Logger

	// ReadTimeout/WriteTimeout del http.Server (WriteTimeout 0 = sin límite,
	// los escaneos son síncronos y pueden durar minutos)
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server expone el escáner por HTTP.
type Server struct {
	router *gin.Engine
	opts   Options
	logger logx.Logger
}

// New crea el servidor y registra las rutas.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 15 * time.Second
	}

	router := gin.New()
	s := &Server{
		router: router,
		opts:   opts,
		logger: opts.Logger.With("component", "httpapi"),
	}

	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/tools", s.handleTools)
	api.POST("/scans", s.handleScan)

	if s.opts.Metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.opts.Metrics))
	}
}

// Handler retorna el http.Handler del servidor (útil en tests).
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe sirve en addr hasta que ctx se cancela y luego hace shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http server shutdown")
	}
	return nil
}

// requestLogger registra cada petición en formato key=value.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if path == "/healthz" || path == "/metrics" {
			return
		}
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client", c.ClientIP(),
		)
	}
}
