// internal/adapters/httpapi/handlers.go
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/usecases"
	"reconforge/internal/platform/errors"
)

// ScanRequest cuerpo de POST /api/scans. Tools vacío equivale a "all".
type ScanRequest struct {
	Target string   `json:"target"`
	Tools  []string `json:"tools"`
}

// ScanResponse respuesta de POST /api/scans.
type ScanResponse struct {
	Run      *domain.RunResults `json:"run"`
	Analyses domain.Analyses    `json:"analyses"`
	Reports  map[string]string  `json:"reports,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleTools(c *gin.Context) {
	var tools []usecases.ToolAvailability
	if s.opts.Catalog != nil {
		tools = s.opts.Catalog(c.Request.Context())
	} else {
		for _, id := range domain.AllTools() {
			tools = append(tools, usecases.ToolAvailability{Tool: id, Name: id.DisplayName()})
		}
	}
	c.JSON(http.StatusOK, gin.H{"tools": tools})
}

func (s *Server) handleScan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request payload"})
		return
	}

	target, err := domain.NewTarget(req.Target)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	names := req.Tools
	if len(names) == 0 {
		names = []string{domain.SelectAll}
	}
	selection, err := domain.ExpandSelection(names)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if s.opts.Scans == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "scanner not configured"})
		return
	}

	ctx := c.Request.Context()
	run, err := s.opts.Scans.RunScans(ctx, target, selection)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNoToolsSelected) || errors.Is(err, domain.ErrInvalidTarget) || errors.Is(err, domain.ErrEmptyTarget) {
			status = http.StatusBadRequest
		}
		c.JSON(status, errorResponse{Error: err.Error()})
		return
	}

	resp := ScanResponse{Run: run, Analyses: domain.Analyses{}}
	if s.opts.Analyzer != nil {
		resp.Analyses = s.opts.Analyzer.AnalyzeRun(ctx, run)
	}

	for _, w := range s.opts.Writers {
		path, err := w.Write(run, resp.Analyses)
		if err != nil {
			s.logger.Warn("report generation failed", "writer", w.Name(), "run_id", run.ID, "error", err.Error())
			continue
		}
		if path == "" {
			continue
		}
		if resp.Reports == nil {
			resp.Reports = make(map[string]string)
		}
		resp.Reports[w.Name()] = path
	}

	c.JSON(http.StatusOK, resp)
}
