// cmd/reconforge/doctor.go
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/usecases"
	"reconforge/internal/platform/config"
	"reconforge/internal/platform/registry"
)

func newDoctorCmd() *cobra.Command {
	var loader *config.Loader

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that every tool can run on this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(loader, args)
			if err != nil {
				return err
			}
			return runDoctor(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	loader = config.NewLoader(cmd.Flags()).BindTools().BindEnum(false)
	return cmd
}

func runDoctor(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	disableStyling(stdout)
	logger := newLogger(cfg, progressText, stderr)

	tools := domain.AllTools()
	scanners, buildErrs := registry.Global().Build(tools, cfg.ToolConfigs(), logger)
	report := usecases.CheckTools(ctx, tools, scanners, buildErrs)

	data := pterm.TableData{{"Tool", "Status", "Detail"}}
	missing := 0
	for _, a := range report {
		status := pterm.Green("ok")
		if !a.Available {
			status = pterm.Red("missing")
			missing++
		}
		data = append(data, []string{a.Name, status, a.Detail})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, table)

	if missing > 0 {
		fmt.Fprintf(stdout, "\n%d of %d tools unavailable\n", missing, len(report))
		return &exitError{code: exitFailed, err: fmt.Errorf("%d tools unavailable", missing)}
	}
	fmt.Fprintln(stdout, "\nAll tools available")
	return nil
}
