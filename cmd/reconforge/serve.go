// cmd/reconforge/serve.go
package main

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"reconforge/internal/adapters/ai"
	"reconforge/internal/adapters/httpapi"
	"reconforge/internal/adapters/output"
	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/core/usecases"
	"reconforge/internal/platform/cache"
	"reconforge/internal/platform/config"
	"reconforge/internal/platform/metrics"
	"reconforge/internal/platform/registry"
	"reconforge/internal/platform/resilience"
)

// catalogTTL tiempo que se reutiliza el resultado de las comprobaciones de /api/tools.
const catalogTTL = 30 * time.Second

func newServeCmd() *cobra.Command {
	var loader *config.Loader

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scanner over HTTP (scan trigger, tool catalogue, metrics)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(loader, args)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
	}

	loader = config.NewLoader(cmd.Flags()).
		BindServer().
		BindOutput().
		BindTools().
		BindEnum(false).
		BindAI()

	return cmd
}

func runServe(ctx context.Context, cfg config.Config, stderr io.Writer) error {
	if err := cfg.RequireAPIKey(); err != nil {
		return usageError(err)
	}

	logger := newLogger(cfg, progressText, stderr)

	gemini, err := ai.NewGeminiClient(ai.Config{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
		Timeout: cfg.AITimeout(),
	}, logger)
	if err != nil {
		return usageError(err)
	}
	analyzer := resilience.NewGuardedAnalyzer(gemini, nil, logger)

	collector, err := metrics.NewCollector()
	if err != nil {
		return err
	}

	tools := domain.AllTools()
	scanners, buildErrs := registry.Global().Build(tools, cfg.ToolConfigs(), logger)

	orch := usecases.NewOrchestrator(usecases.OrchestratorOptions{
		Scanners:    scanners,
		BuildErrors: buildErrs,
		Logger:      logger,
		Observers:   []ports.Notifier{collector},
		WorkRoot:    filepath.Join(cfg.Output.Dir, workDirName),
		RunTimeout:  cfg.Timeout(),
	})

	catalog := cache.New[[]usecases.ToolAvailability](1)

	var writers []ports.ReportWriter
	if !cfg.Output.NoJSON {
		writers = append(writers, output.NewJSONWriter(cfg.Output.Dir))
	}
	if !cfg.Output.NoPDF {
		writers = append(writers, output.NewPDFWriter(cfg.Output.Dir, logger))
	}

	server := httpapi.New(httpapi.Options{
		Scans:    orch,
		Analyzer: usecases.NewAnalysisService(analyzer, cfg.AITimeout(), logger),
		Writers:  writers,
		Catalog: func(ctx context.Context) []usecases.ToolAvailability {
			list, _ := catalog.GetOrLoad(ctx, "tools", catalogTTL, func(ctx context.Context) ([]usecases.ToolAvailability, error) {
				return usecases.CheckTools(ctx, tools, scanners, buildErrs), nil
			})
			return list
		},
		Metrics: collector.Handler(),
		Logger:  logger,
	})

	return server.ListenAndServe(ctx, cfg.Server.Addr)
}
