// cmd/reconforge/enum.go
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"reconforge/internal/core/domain"
	"reconforge/internal/platform/config"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/registry"
	"reconforge/internal/platform/ui"
	"reconforge/internal/sources/subenum"
)

func newEnumCmd() *cobra.Command {
	var (
		loader   *config.Loader
		hitsOnly bool
	)

	cmd := &cobra.Command{
		Use:   "enum <domain>",
		Short: "Standalone subdomain enumeration (DNS resolution with HTTP fallback)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(loader, args)
			if err != nil {
				return err
			}
			return runEnum(cmd.Context(), cfg, !hitsOnly, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	loader = config.NewLoader(cmd.Flags()).BindEnum(true)
	cmd.Flags().BoolVar(&hitsOnly, "hits-only", false, "Print only resolved or reachable candidates")

	return cmd
}

func runEnum(ctx context.Context, cfg config.Config, verbose bool, stdout, stderr io.Writer) error {
	target, err := domain.NewTarget(cfg.Core.Target)
	if err != nil {
		return usageError(err)
	}
	if !target.IsDomain() {
		return usageError(fmt.Errorf("%w: enumeration requires a domain, got IP %s", domain.ErrInvalidTarget, target.Value))
	}

	logger := newLogger(cfg, progressText, stderr)

	tool := domain.ToolSubdomainEnum
	configs := cfg.ToolConfigs()
	enumCfg := configs[tool]
	enumCfg.Enabled = true
	configs[tool] = enumCfg

	scanners, buildErrs := registry.Global().Build([]domain.ToolID{tool}, configs, logger)
	if err := buildErrs[tool]; err != nil {
		return usageError(err)
	}
	scanner, ok := scanners[tool].(*subenum.Scanner)
	if !ok {
		return fmt.Errorf("unexpected scanner type %T for %s", scanners[tool], tool)
	}

	printer := ui.NewEnumPrinter(stdout, verbose)
	scanner.Prober().OnRecord(printer.Record)

	fmt.Fprintf(stdout, "[*] Enumerating subdomains of %s\n", target.Value)

	ctx, cancel := context.WithTimeout(ctx, scanner.Timeout())
	defer cancel()

	payload, err := scanner.Enumerate(ctx, target.Value)
	printer.Summary(payload)
	if err != nil {
		return errors.Wrap(err, "enumeration")
	}
	return nil
}
