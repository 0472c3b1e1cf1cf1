package sublist3r

import (
	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
	"reconforge/internal/platform/registry"
)

func init() {
	registry.Global().MustRegister(domain.ToolSublist3r, factory, ports.ToolMetadata{
		Description:    "Passive subdomain enumeration via search engines (Sublist3r)",
		Kind:           ports.ToolKindCLI,
		Binary:         defaultExecPath,
		DefaultTimeout: defaultTimeout,
		OutputFormat:   "txt",
	})
}

func factory(cfg ports.ToolConfig, logger logx.Logger) (ports.Scanner, error) {
	return New(cfg.ExecPath, cfg.Python, cfg.Timeout, nil, logger), nil
}
