package subenum

import (
	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/logx"
	"reconforge/internal/platform/registry"
)

func init() {
	registry.Global().MustRegister(domain.ToolSubdomainEnum, factory, ports.ToolMetadata{
		Description:    "Built-in wordlist enumerator with DNS resolution and HTTP fallback",
		Kind:           ports.ToolKindBuiltin,
		DefaultTimeout: DefaultTimeout,
		OutputFormat:   "records",
	})
}

func factory(cfg ports.ToolConfig, logger logx.Logger) (ports.Scanner, error) {
	threads := registry.GetIntConfig(cfg.Custom, "threads", DefaultThreads)
	if err := registry.ValidateIntRange("threads", threads, 1, 1000); err != nil {
		return nil, err
	}

	return New(Config{
		Wordlist:  registry.GetStringConfig(cfg.Custom, "wordlist", ""),
		Resolvers: registry.GetSliceConfig(cfg.Custom, "resolvers", nil),
		Options: ProbeOptions{
			Threads:                  threads,
			HTTPFallbackOnDNSFailure: registry.GetBoolConfig(cfg.Custom, "http_fallback", true),
			HTTPSFirst:               registry.GetBoolConfig(cfg.Custom, "https_first", false),
		},
		Timeout: cfg.Timeout,
	}, logger), nil
}
