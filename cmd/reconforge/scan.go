// cmd/reconforge/scan.go
package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"reconforge/internal/adapters/ai"
	"reconforge/internal/adapters/output"
	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/core/usecases"
	"reconforge/internal/platform/config"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/logx"
	"reconforge/internal/platform/registry"
	"reconforge/internal/platform/resilience"
	"reconforge/internal/platform/ui"
)

// workDirName subdirectorio de <out> con los artefactos de cada ejecución.
const workDirName = "runs"

func newScanCmd() *cobra.Command {
	var (
		loader   *config.Loader
		progress string
	)

	cmd := &cobra.Command{
		Use:   "scan [target]",
		Short: "Run the selected tools against a target and build the reports",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(loader, args)
			if err != nil {
				return err
			}
			return runScan(cmd.Context(), cfg, progress, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	loader = config.NewLoader(cmd.Flags()).
		BindTarget().
		BindOutput().
		BindTools().
		BindEnum(false).
		BindAI()
	cmd.Flags().StringVar(&progress, "progress", progressAuto, "Progress output: auto, pterm, text, json")

	return cmd
}

func runScan(ctx context.Context, cfg config.Config, progress string, stdout, stderr io.Writer) error {
	if err := cfg.RequireAPIKey(); err != nil {
		return usageError(err)
	}
	target, err := domain.NewTarget(cfg.Core.Target)
	if err != nil {
		return usageError(err)
	}
	selection, err := cfg.Selection()
	if err != nil {
		return usageError(err)
	}
	mode, err := resolveProgress(progress, stdout)
	if err != nil {
		return usageError(err)
	}

	logger := newLogger(cfg, mode, stderr)
	logger.Info("reconforge starting",
		"version", version,
		"target", target.Value,
		"tools", len(selection),
		"timeout_s", cfg.Core.TimeoutS,
	)

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

	presenter := newPresenter(mode, cfg.Output.Quiet, stdout)
	defer func() {
		if err := presenter.Close(); err != nil {
			logger.Warn("failed to close presenter", "error", err.Error())
		}
	}()

	scanners, buildErrs := registry.Global().Build(selection, cfg.ToolConfigs(), logger)
	streaming := output.NewStreamingWriter(cfg.Output.Dir, logger)

	orch := usecases.NewOrchestrator(usecases.OrchestratorOptions{
		Scanners:    scanners,
		BuildErrors: buildErrs,
		Logger:      logger,
		Observers:   []ports.Notifier{ui.NewNotifier(presenter), streaming},
		WorkRoot:    filepath.Join(cfg.Output.Dir, workDirName),
		RunTimeout:  cfg.Timeout(),
	})

	presenter.Start(ui.RunInfo{
		Target:         target.Value,
		Tools:          selection,
		TimeoutSeconds: cfg.Core.TimeoutS,
		AIEnabled:      true,
		PDFEnabled:     !cfg.Output.NoPDF,
	})

	run, err := orch.RunScans(ctx, target, selection)
	if err != nil {
		presenter.Error(err.Error())
		return err
	}

	presenter.Info("Requesting AI analysis")
	analyses := usecases.NewAnalysisService(analyzer, cfg.AITimeout(), logger).AnalyzeRun(ctx, run)

	reports, writeErr := writeReports(reportWriters(cfg, mode, stdout, logger), run, analyses, logger)
	if writeErr != nil {
		presenter.Error(writeErr.Error())
	} else if err := streaming.Cleanup(); err != nil {
		logger.Warn("failed to remove partial results", "error", err.Error())
	}

	presenter.Finish(ui.RunStats{
		Duration:        run.Duration,
		Succeeded:       len(run.Succeeded()),
		Failed:          len(run.Failed()),
		OverallSeverity: string(ai.InferSeverity(analyses[domain.OverallKey])),
		Reports:         reports,
	})

	logger.Info("reconforge finished",
		"run_id", run.ID,
		"succeeded", len(run.Succeeded()),
		"failed", len(run.Failed()),
		"duration_ms", run.Duration.Milliseconds(),
	)

	if writeErr != nil {
		return writeErr
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "scan interrupted")
	}
	return nil
}

// reportWriters returns the writers enabled by the configuration. The
// tabwriter summary is skipped with the pterm presenter, which renders its
// own results table.
func reportWriters(cfg config.Config, mode string, stdout io.Writer, logger logx.Logger) []ports.ReportWriter {
	var writers []ports.ReportWriter
	if !cfg.Output.NoJSON {
		writers = append(writers, output.NewJSONWriter(cfg.Output.Dir))
	}
	if !cfg.Output.NoPDF {
		writers = append(writers, output.NewPDFWriter(cfg.Output.Dir, logger))
	}
	if !cfg.Output.Quiet && mode != progressPTerm {
		writers = append(writers, output.NewTableWriter(stdout))
	}
	return writers
}

// writeReports runs every writer; one failing writer does not stop the rest.
func writeReports(writers []ports.ReportWriter, run *domain.RunResults, analyses domain.Analyses, logger logx.Logger) ([]string, error) {
	var (
		paths []string
		errs  []error
	)
	for _, w := range writers {
		path, err := w.Write(run, analyses)
		if err != nil {
			logger.Warn("report generation failed", "writer", w.Name(), "error", err.Error())
			errs = append(errs, errors.Wrapf(err, "%s report", w.Name()))
			continue
		}
		if path != "" {
			logger.Info("report written", "writer", w.Name(), "path", path)
			paths = append(paths, path)
		}
	}
	return paths, errors.Join(errs...)
}
