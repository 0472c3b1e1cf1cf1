package harvester

import (
	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
	"reconforge/internal/platform/registry"
)

func init() {
	registry.Global().MustRegister(domain.ToolHarvester, factory, ports.ToolMetadata{
		Description:    "Emails, hosts and domains from passive OSINT sources (theHarvester)",
		Kind:           ports.ToolKindCLI,
		Binary:         defaultExecPath,
		DefaultTimeout: defaultTimeout,
		OutputFormat:   "json",
	})
}

func factory(cfg ports.ToolConfig, logger logx.Logger) (ports.Scanner, error) {
	return New(Config{
		ExecPath: cfg.ExecPath,
		Python:   cfg.Python,
		Sources:  registry.GetSliceConfig(cfg.Custom, "sources", nil),
		Timeout:  cfg.Timeout,
	}, nil, logger), nil
}
