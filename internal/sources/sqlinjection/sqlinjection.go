// Package sqlinjection ejecuta sqlmap en modo batch contra http://<objetivo>.
package sqlinjection

import (
	"context"
	"path/filepath"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
	"reconforge/internal/sources/common"
)

const (
	defaultExecPath = "sqlmap"
	defaultTimeout  = 90 * time.Second
	resultsDir      = "sqlmap"
)

// Scanner implementa ports.Scanner para sqlmap.
type Scanner struct {
	cli    *common.CLITool
	logger logx.Logger
}

// New crea un Scanner; execPath vacío usa sqlmap del PATH y timeout 0 el valor por defecto.
func New(execPath, python string, timeout time.Duration, runner ports.ProcessRunner, logger logx.Logger) *Scanner {
	if logger == nil {
		logger = logx.NewNop()
	}
	if execPath == "" {
		execPath = defaultExecPath
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Scanner{
		cli: common.NewCLITool(common.CLIConfig{
			Name:     "sqlmap",
			ExecPath: execPath,
			Python:   python,
			Timeout:  timeout,
		}, runner, logger),
		logger: logger,
	}
}

// Tool retorna el identificador de la herramienta.
func (s *Scanner) Tool() domain.ToolID { return domain.ToolSQLInjection }

// Timeout retorna el límite de ejecución.
func (s *Scanner) Timeout() time.Duration { return s.cli.Timeout() }

// Args retorna los argumentos fijos de sqlmap.
func Args(target, workDir string) []string {
	return []string{
		"-u", "http://" + target,
		"--batch",
		"--crawl=1",
		"--threads=3",
		"--smart",
		"--output-dir=" + filepath.Join(workDir, resultsDir),
	}
}

// Scan ejecuta sqlmap y filtra las líneas relevantes de stdout.
func (s *Scanner) Scan(ctx context.Context, req ports.ScanRequest) (any, error) {
	out, err := s.cli.Execute(ctx, Args(req.Target.Value, req.WorkDir)...)
	if err != nil {
		return nil, err
	}

	payload := ParseOutput(out.Stdout)
	s.logger.Info("sqlmap finished", "findings", len(payload.Findings))
	return payload, nil
}

// Check verifica que sqlmap esté disponible.
func (s *Scanner) Check(ctx context.Context) error {
	return s.cli.Check(ctx)
}
