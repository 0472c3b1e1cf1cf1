// Package nmap ejecuta nmap (-sV -O -sC) y normaliza su salida XML.
package nmap

import (
	"context"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
	"reconforge/internal/sources/common"
)

const (
	defaultExecPath = "nmap"

	// runGuard es el plazo del proceso cuando no hay timeout configurado;
	// en ese caso solo el contexto de la ejecución limita a nmap.
	runGuard = time.Hour
)

// Scanner implementa ports.Scanner para nmap.
type Scanner struct {
	cli     *common.CLITool
	timeout time.Duration
	logger  logx.Logger
}

// New crea un Scanner. timeout 0 significa sin límite propio.
func New(execPath string, timeout time.Duration, runner ports.ProcessRunner, logger logx.Logger) *Scanner {
	if logger == nil {
		logger = logx.NewNop()
	}
	if execPath == "" {
		execPath = defaultExecPath
	}

	guard := timeout
	if guard <= 0 {
		guard = runGuard
	}

	return &Scanner{
		cli: common.NewCLITool(common.CLIConfig{
			Name:     "nmap",
			ExecPath: execPath,
			Timeout:  guard,
		}, runner, logger),
		timeout: timeout,
		logger:  logger,
	}
}

// Tool retorna el identificador de la herramienta.
func (s *Scanner) Tool() domain.ToolID { return domain.ToolNmap }

// Timeout retorna el límite configurado (0 = solo el contexto de la ejecución).
func (s *Scanner) Timeout() time.Duration { return s.timeout }

// Args retorna los argumentos fijos para el objetivo.
func Args(target string) []string {
	return []string{"-sV", "-O", "-sC", "-T4", target, "-oX", "-"}
}

// Scan ejecuta nmap y parsea el XML de stdout.
func (s *Scanner) Scan(ctx context.Context, req ports.ScanRequest) (any, error) {
	out, err := s.cli.Execute(ctx, Args(req.Target.Value)...)
	if err != nil {
		return nil, err
	}

	payload, err := ParseXML([]byte(out.Stdout))
	if err != nil {
		return nil, err
	}

	s.logger.Info("nmap finished", "hosts", len(payload), "open_ports", payload.OpenPorts())
	return payload, nil
}

// Check verifica que el binario de nmap esté disponible.
func (s *Scanner) Check(ctx context.Context) error {
	return s.cli.Check(ctx)
}
