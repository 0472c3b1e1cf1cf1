package nmap

import (
	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
	"reconforge/internal/platform/registry"
)

func init() {
	registry.Global().MustRegister(domain.ToolNmap, factory, ports.ToolMetadata{
		Description:  "Port, service and OS detection (nmap -sV -O -sC -T4)",
		Kind:         ports.ToolKindCLI,
		Binary:       defaultExecPath,
		OutputFormat: "xml",
	})
}

func factory(cfg ports.ToolConfig, logger logx.Logger) (ports.Scanner, error) {
	return New(cfg.ExecPath, cfg.Timeout, nil, logger), nil
}
