// cmd/reconforge/root.go
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"reconforge/internal/platform/config"
	"reconforge/internal/platform/logx"
	"reconforge/internal/platform/ui"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reconforge",
		Short: "Concurrent reconnaissance with AI-assisted reporting",
		Long: `reconforge runs nmap, theHarvester, Sublist3r, sqlmap and a built-in
subdomain enumerator concurrently against a target, asks Gemini for a risk
analysis of each result and renders JSON and PDF reports.

` + config.EnvHelp,
		Example:       config.Examples,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newScanCmd(),
		newEnumCmd(),
		newServeCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.VersionString(version, commit, date))
		},
	}
}

// loadConfig loads and validates the configuration; a positional target
// overrides every other source.
func loadConfig(loader *config.Loader, args []string) (config.Config, error) {
	cfg, err := loader.Load()
	if err != nil {
		return config.Config{}, usageError(err)
	}
	if len(args) > 0 {
		cfg.Core.Target = strings.TrimSpace(args[0])
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, usageError(err)
	}
	return cfg, nil
}

// Progress modes
const (
	progressAuto  = "auto"
	progressPTerm = "pterm"
	progressText  = "text"
	progressJSON  = "json"
)

// resolveProgress turns "auto" into pterm on a terminal and text otherwise.
func resolveProgress(mode string, out io.Writer) (string, error) {
	switch mode {
	case progressPTerm, progressText, progressJSON:
		return mode, nil
	case "", progressAuto:
		if isTerminal(out) {
			return progressPTerm, nil
		}
		return progressText, nil
	default:
		return "", fmt.Errorf("unknown progress mode %q (auto, pterm, text, json)", mode)
	}
}

func newPresenter(mode string, quiet bool, out io.Writer) ui.Presenter {
	if quiet {
		return ui.NewNoopPresenter()
	}
	switch mode {
	case progressPTerm:
		return ui.NewPTermPresenter()
	case progressJSON:
		return ui.NewRawPresenter(ui.LogFormatJSON, out)
	default:
		return ui.NewRawPresenter(ui.LogFormatText, out)
	}
}

// newLogger builds the stderr logger. With the pterm presenter active, info
// lines would break the spinners, so the default level is raised to warn.
func newLogger(cfg config.Config, progress string, stderr io.Writer) logx.Logger {
	lvl := logx.ParseLevel(cfg.LogLevel)
	if progress == progressPTerm && lvl == logx.LevelInfo {
		lvl = logx.LevelWarn
	}
	return logx.NewWriter(stderr, lvl)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// disableStyling turns off pterm colors when output is not a terminal.
func disableStyling(out io.Writer) {
	if !isTerminal(out) {
		pterm.DisableStyling()
	}
}
