// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"reconforge/internal/core/domain"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar spinners, colores y tablas en la terminal.
type PTermPresenter struct {
	mu sync.Mutex

	runStart time.Time
	info     RunInfo

	// Spinners activos por herramienta
	spinners map[domain.ToolID]*pterm.SpinnerPrinter

	// Resúmenes finales en orden de llegada
	finished []ToolSummary
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{
		spinners: make(map[domain.ToolID]*pterm.SpinnerPrinter),
	}
}

// Start inicia la presentación mostrando el header de la ejecución
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info = info
	p.runStart = time.Now()
	p.finished = nil

	pterm.Println(StylePrimary.Sprint(GetBanner(pterm.GetTerminalWidth())))

	infoPanel := pterm.DefaultBox.
		WithTitle("Run Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan))

	timeout := "none"
	if info.TimeoutSeconds > 0 {
		timeout = fmt.Sprintf("%ds", info.TimeoutSeconds)
	}

	content := fmt.Sprintf("%s Target: %s\n", IconTarget, pterm.Cyan(info.Target))
	content += fmt.Sprintf("%s Tools: %s\n", IconTools, joinTools(info.Tools))
	content += fmt.Sprintf("%s Timeout: %s\n", IconTime, timeout)
	content += fmt.Sprintf("%s AI analysis: %s\n", IconAI, boolToString(info.AIEnabled))
	content += fmt.Sprintf("%s PDF report: %s", IconReport, boolToString(info.PDFEnabled))
	if info.RunID != "" {
		content += fmt.Sprintf("\n   Run: %s", pterm.Gray(info.RunID))
	}

	infoPanel.Println(content)
	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))
	pterm.Println()
}

// StartTool muestra un spinner mientras la herramienta se ejecuta
func (p *PTermPresenter) StartTool(tool domain.ToolID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.spinners[tool]; exists {
		return
	}

	spinner, err := pterm.DefaultSpinner.
		WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷").
		WithRemoveWhenDone(true).
		Start(fmt.Sprintf("  Running %s...", pterm.Cyan(tool.DisplayName())))
	if err != nil {
		return
	}
	p.spinners[tool] = spinner
}

// FinishTool detiene el spinner y pinta la línea final
func (p *PTermPresenter) FinishTool(summary ToolSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if spinner, exists := p.spinners[summary.Tool]; exists {
		_ = spinner.Stop()
		delete(p.spinners, summary.Tool)
	}
	p.finished = append(p.finished, summary)

	line := fmt.Sprintf("  %s %s (%s)", summary.Status.Symbol(), summary.Tool.DisplayName(), formatDuration(summary.Duration))
	if summary.Kind != "" {
		line += " [" + summary.Kind + "]"
	}
	if summary.Detail != "" {
		line += " " + summary.Detail
	}
	summary.Status.Style().Println(line)
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Info.Println(msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Warning.Println(msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Error.Println(msg)
}

// Finish finaliza la presentación con estadísticas finales
func (p *PTermPresenter) Finish(stats RunStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinners()

	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))
	pterm.Println()

	headerBg := pterm.BgGreen
	if stats.Failed > 0 {
		headerBg = pterm.BgYellow
	}
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(headerBg)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("Scan Completed")
	pterm.Println()

	if len(p.finished) > 0 {
		tableData := pterm.TableData{{"Tool", "Status", "Duration", "Result"}}
		for _, s := range p.finished {
			detail := s.Detail
			if s.Kind != "" {
				detail = s.Kind + ": " + detail
			}
			tableData = append(tableData, []string{
				s.Tool.DisplayName(),
				s.Status.Style().Sprint(s.Status.String()),
				formatDuration(s.Duration),
				detail,
			})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render()
		pterm.Println()
	}

	content := fmt.Sprintf("%s Total Duration: %s\n", IconTime, pterm.Green(formatDuration(stats.Duration)))
	content += fmt.Sprintf("%s Succeeded: %s\n", IconSuccess, pterm.Green(fmt.Sprintf("%d", stats.Succeeded)))
	content += fmt.Sprintf("%s Failed: %s", IconError, pterm.Red(fmt.Sprintf("%d", stats.Failed)))
	if stats.OverallSeverity != "" {
		content += fmt.Sprintf("\n%s Overall severity: %s", IconAI, SeverityStyle(stats.OverallSeverity).Sprint(stats.OverallSeverity))
	}
	for _, r := range stats.Reports {
		content += fmt.Sprintf("\n%s %s", IconReport, r)
	}

	pterm.DefaultBox.
		WithTitle("Run Statistics").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen)).
		Println(content)
	pterm.Println()
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinners()
	return nil
}

func (p *PTermPresenter) stopSpinners() {
	for tool, spinner := range p.spinners {
		_ = spinner.Stop()
		delete(p.spinners, tool)
	}
}
