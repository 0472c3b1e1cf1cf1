// Package harvester ejecuta theHarvester y lee su informe JSON.
package harvester

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
	"reconforge/internal/sources/common"
)

const (
	defaultExecPath = "theHarvester"
	defaultTimeout  = 60 * time.Second
	defaultSources  = "duckduckgo,crtsh,otx,hunter"

	// outputBase es el nombre pasado a -f; theHarvester añade la extensión .json.
	outputBase = "harvester"
)

// Scanner implementa ports.Scanner para theHarvester.
type Scanner struct {
	cli     *common.CLITool
	sources string
	logger  logx.Logger
}

// Config parámetros del scanner.
type Config struct {
	ExecPath string
	Python   string
	Sources  []string
	Timeout  time.Duration
}

// New crea un Scanner; los campos vacíos toman los valores por defecto.
func New(cfg Config, runner ports.ProcessRunner, logger logx.Logger) *Scanner {
	if logger == nil {
		logger = logx.NewNop()
	}
	if cfg.ExecPath == "" {
		cfg.ExecPath = defaultExecPath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	sources := strings.Join(cfg.Sources, ",")
	if sources == "" {
		sources = defaultSources
	}

	return &Scanner{
		cli: common.NewCLITool(common.CLIConfig{
			Name:     "theHarvester",
			ExecPath: cfg.ExecPath,
			Python:   cfg.Python,
			Timeout:  cfg.Timeout,
		}, runner, logger),
		sources: sources,
		logger:  logger,
	}
}

// Tool retorna el identificador de la herramienta.
func (s *Scanner) Tool() domain.ToolID { return domain.ToolHarvester }

// Timeout retorna el límite de ejecución.
func (s *Scanner) Timeout() time.Duration { return s.cli.Timeout() }

// Args retorna los argumentos fijos de theHarvester.
func (s *Scanner) Args(target, workDir string) []string {
	return []string{"-d", target, "-b", s.sources, "-f", filepath.Join(workDir, outputBase)}
}

// OutputPath retorna el fichero JSON que genera theHarvester en workDir.
func OutputPath(workDir string) string {
	return filepath.Join(workDir, outputBase+".json")
}

// Scan ejecuta theHarvester y parsea el fichero JSON generado.
func (s *Scanner) Scan(ctx context.Context, req ports.ScanRequest) (any, error) {
	if _, err := s.cli.Execute(ctx, s.Args(req.Target.Value, req.WorkDir)...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(OutputPath(req.WorkDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrParse, "no JSON output file generated")
		}
		return nil, errors.Wrapf(errors.ErrParse, "reading theHarvester output: %v", err)
	}

	payload, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("theHarvester finished",
		"emails", len(payload.Emails),
		"hosts", len(payload.Hosts),
		"domains", len(payload.Domains),
	)
	return payload, nil
}

// Check verifica que theHarvester esté disponible.
func (s *Scanner) Check(ctx context.Context) error {
	return s.cli.Check(ctx)
}
