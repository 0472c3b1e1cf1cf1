// Package sublist3r ejecuta Sublist3r y lee la lista de subdominios que genera.
package sublist3r

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
	"reconforge/internal/sources/common"
)

const (
	defaultExecPath = "sublist3r"
	defaultTimeout  = 300 * time.Second
	outputFile      = "sublist3r.txt"
)

// Scanner implementa ports.Scanner para Sublist3r.
type Scanner struct {
	cli    *common.CLITool
	logger logx.Logger
}

// New crea un Scanner; execPath vacío usa sublist3r del PATH y timeout 0 el valor por defecto.
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
			Name:     "sublist3r",
			ExecPath: execPath,
			Python:   python,
			Timeout:  timeout,
		}, runner, logger),
		logger: logger,
	}
}

// Tool retorna el identificador de la herramienta.
func (s *Scanner) Tool() domain.ToolID { return domain.ToolSublist3r }

// Timeout retorna el límite de ejecución.
func (s *Scanner) Timeout() time.Duration { return s.cli.Timeout() }

// OutputPath retorna el fichero de resultados dentro de workDir.
func OutputPath(workDir string) string {
	return filepath.Join(workDir, outputFile)
}

// Scan ejecuta Sublist3r y lee su fichero de salida.
// Sublist3r no escribe el fichero cuando no encuentra nada: se trata como lista vacía.
func (s *Scanner) Scan(ctx context.Context, req ports.ScanRequest) (any, error) {
	path := OutputPath(req.WorkDir)
	if _, err := s.cli.Execute(ctx, "-d", req.Target.Value, "-o", path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no output file, assuming no subdomains", "path", path)
			return domain.SubdomainListPayload{Subdomains: []string{}}, nil
		}
		return nil, errors.Wrapf(errors.ErrParse, "opening sublist3r output: %v", err)
	}
	defer f.Close()

	payload, err := ParseLines(f)
	if err != nil {
		return nil, err
	}

	s.logger.Info("sublist3r finished", "subdomains", len(payload.Subdomains))
	return payload, nil
}

// Check verifica que Sublist3r esté disponible.
func (s *Scanner) Check(ctx context.Context) error {
	return s.cli.Check(ctx)
}
