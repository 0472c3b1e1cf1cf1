package sqlinjection

import (
	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
	"reconforge/internal/platform/registry"
)

func init() {
	registry.Global().MustRegister(domain.ToolSQLInjection, factory, ports.ToolMetadata{
		Description:    "Automated SQL injection probing (sqlmap --batch --crawl=1 --smart)",
		Kind:           ports.ToolKindCLI,
		Binary:         defaultExecPath,
		DefaultTimeout: defaultTimeout,
		OutputFormat:   "stdout",
	})
}

func factory(cfg ports.ToolConfig, logger logx.Logger) (ports.Scanner, error) {
	return New(cfg.ExecPath, cfg.Python, cfg.Timeout, nil, logger), nil
}
