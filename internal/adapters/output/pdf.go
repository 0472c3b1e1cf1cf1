// internal/adapters/output/pdf.go
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gofpdf "github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reconforge/internal/adapters/ai"
	"reconforge/internal/core/domain"
	"reconforge/internal/platform/logx"
)

const (
	reportTitle   = "Reconforge Security Report"
	rawOutputMax  = 4000
	pdfMargin     = 16.0
	pdfLineHeight = 5.5
)

// ReportFilename nombre del PDF para un instante dado.
func ReportFilename(t time.Time) string {
	return "security_report_" + t.Format("20060102_150405") + ".pdf"
}

// PDFWriter genera el reporte PDF de una ejecución.
type PDFWriter struct {
	dir    string
	now    func() time.Time
	logger logx.Logger
}

// NewPDFWriter crea el writer; los reportes se guardan en <dir>/<target>/.
func NewPDFWriter(dir string, logger logx.Logger) *PDFWriter {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = logx.NewNop()
	}
	return &PDFWriter{dir: dir, now: time.Now, logger: logger.With("component", "pdf-writer")}
}

// Name retorna el formato.
func (w *PDFWriter) Name() string { return "pdf" }

// Write genera el PDF y retorna su ruta.
func (w *PDFWriter) Write(run *domain.RunResults, analyses domain.Analyses) (string, error) {
	if run == nil {
		return "", fmt.Errorf("no run results to report")
	}

	outDir := filepath.Join(w.dir, sanitizeDomainName(run.Target.Value))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	generated := w.now()
	path := filepath.Join(outDir, ReportFilename(generated))

	r := newPDFReport(run, analyses, generated)
	r.build()

	if err := r.pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write PDF report: %w", err)
	}

	w.logger.Info("PDF report written", "file", path)
	return path, nil
}

// pdfReport estado de construcción de un documento.
type pdfReport struct {
	pdf       *gofpdf.Fpdf
	tr        func(string) string
	title     cases.Caser
	run       *domain.RunResults
	analyses  domain.Analyses
	generated time.Time
}

func newPDFReport(run *domain.RunResults, analyses domain.Analyses, generated time.Time) *pdfReport {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(reportTitle, true)
	pdf.SetAuthor("reconforge", true)
	pdf.SetCreationDate(generated)
	pdf.AliasNbPages("")

	r := &pdfReport{
		pdf:       pdf,
		tr:        pdf.UnicodeTranslatorFromDescriptor(""),
		title:     cases.Title(language.English),
		run:       run,
		analyses:  analyses,
		generated: generated,
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return r
}

func (r *pdfReport) build() {
	r.addTitlePage()

	for _, tool := range r.run.Tools() {
		res := r.run.Results[tool]
		r.pdf.AddPage()
		r.heading(tool.DisplayName() + " Results")
		r.addToolSection(res)
		r.addAISection(tool.DisplayName(), r.analyses[string(tool)])
	}

	r.pdf.AddPage()
	r.heading("Final Overall AI Assessment")
	r.addAISection("Overall Findings", r.analyses[domain.OverallKey])

	r.pdf.AddPage()
	r.heading("Consolidated Tool Results")
	for _, tool := range r.run.Tools() {
		name := r.title.String(strings.ReplaceAll(string(tool), "_", " "))
		r.subheading(name + " Results")
		r.code(rawResult(r.run.Results[tool]))
		r.addAISection(name, r.analyses[string(tool)])
		r.pdf.Ln(4)
	}
}

func (r *pdfReport) addTitlePage() {
	pdf := r.pdf
	pdf.AddPage()
	pdf.Ln(40)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(15, 23, 38)
	pdf.CellFormat(0, 12, r.tr(reportTitle), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(71, 85, 105)
	lines := []string{
		"Target: " + r.run.Target.Value,
		"Generated: " + r.generated.Format("2006-01-02 15:04"),
		"Run ID: " + r.run.ID,
		fmt.Sprintf("Tools: %d succeeded, %d failed", len(r.run.Succeeded()), len(r.run.Failed())),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 7, r.tr(line), "", 1, "L", false, 0, "")
	}
}

func (r *pdfReport) addToolSection(res domain.ScanResult) {
	if !res.OK() {
		r.errorBox(res.Failure)
		return
	}

	switch p := res.Payload.(type) {
	case domain.NetworkScanPayload:
		r.portsTable(p)
	case domain.SubdomainListPayload:
		r.bullets(p.Subdomains, "No subdomains found.")
	case domain.HarvestPayload:
		r.subheading("Emails")
		r.bullets(p.Emails, "None.")
		r.subheading("Hosts")
		r.bullets(p.Hosts, "None.")
		r.subheading("Domains")
		r.bullets(p.Domains, "None.")
	case domain.SQLInjectionPayload:
		r.subheading("Findings")
		r.bullets(p.Findings, "No SQL injection indicators found.")
		r.subheading("Raw output")
		r.code(p.Output)
	case domain.EnumerationPayload:
		r.recordsTable(p)
	default:
		r.code(rawResult(res))
	}
}

func (r *pdfReport) addAISection(title, text string) {
	if strings.TrimSpace(text) == "" {
		text = "AI analysis unavailable."
	}
	pdf := r.pdf
	pdf.Ln(3)
	r.subheading("AI Analysis of " + title)

	sev := ai.InferSeverity(text)
	red, green, blue := sev.RGB()
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(red, green, blue)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(32, 6, r.tr("Severity: "+string(sev)), "", 1, "C", true, 0, "")
	pdf.Ln(1)

	x, y := pdf.GetXY()
	pageW, _ := pdf.GetPageSize()
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(x, y, pageW-pdfMargin, y)
	pdf.Ln(2)

	r.body(text)
}

// Building blocks

func (r *pdfReport) heading(text string) {
	r.pdf.SetFont("Helvetica", "B", 14)
	r.pdf.SetTextColor(15, 23, 38)
	r.pdf.CellFormat(0, 9, r.tr(text), "", 1, "L", false, 0, "")
	r.pdf.Ln(2)
}

func (r *pdfReport) subheading(text string) {
	r.pdf.SetFont("Helvetica", "B", 11)
	r.pdf.SetTextColor(30, 41, 59)
	r.pdf.CellFormat(0, 7, r.tr(text), "", 1, "L", false, 0, "")
}

func (r *pdfReport) body(text string) {
	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.MultiCell(0, pdfLineHeight, r.tr(text), "", "L", false)
}

func (r *pdfReport) code(text string) {
	if len(text) > rawOutputMax {
		text = text[:rawOutputMax] + "\n..."
	}
	r.pdf.SetFont("Courier", "", 8.5)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetFillColor(245, 245, 245)
	r.pdf.MultiCell(0, 4.2, r.tr(text), "", "L", true)
}

func (r *pdfReport) bullets(items []string, empty string) {
	if len(items) == 0 {
		r.body(empty)
		return
	}
	for _, item := range items {
		r.body("- " + item)
	}
}

func (r *pdfReport) errorBox(f *domain.Failure) {
	msg := "unknown failure"
	kind := string(domain.KindInternal)
	if f != nil {
		msg, kind = f.Message, string(f.Kind)
	}
	pdf := r.pdf
	pdf.SetFillColor(254, 226, 226)
	pdf.SetDrawColor(220, 38, 38)
	pdf.SetTextColor(153, 27, 27)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, r.tr("Tool failed: "+kind), "LTR", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, pdfLineHeight, r.tr(msg), "LBR", "L", true)
	pdf.SetDrawColor(0, 0, 0)
}

func (r *pdfReport) table(headers []string, widths []float64, rows [][]string) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, r.tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, r.tr(truncate(cell, int(widths[i]/1.6))), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (r *pdfReport) portsTable(p domain.NetworkScanPayload) {
	if len(p) == 0 {
		r.body("No hosts found.")
		return
	}

	var rows [][]string
	for _, host := range sortedKeys(p) {
		report := p[host]
		if len(report.Ports) == 0 {
			rows = append(rows, []string{host, "-", report.State, ""})
		}
		for _, port := range report.Ports {
			service := strings.TrimSpace(strings.Join([]string{port.Service, port.Product, port.Version}, " "))
			rows = append(rows, []string{
				host,
				strconv.Itoa(int(port.Port)) + "/" + port.Protocol,
				port.State,
				service,
			})
		}
	}
	r.table([]string{"IP", "Port", "State", "Service"}, []float64{45, 25, 25, 83}, rows)

	for _, host := range sortedKeys(p) {
		if guesses := p[host].OSGuesses; len(guesses) > 0 {
			r.body(fmt.Sprintf("%s OS guess: %s (%d%%)", host, guesses[0].Name, guesses[0].Accuracy))
		}
	}
}

func (r *pdfReport) recordsTable(p domain.EnumerationPayload) {
	if !p.DNSAvailable {
		r.body("DNS resolution was unavailable during this run.")
	}
	r.body(fmt.Sprintf("%d candidates, %d DNS-resolved, %d HTTP-reachable",
		p.Summary.Total, p.Summary.DNSResolved, p.Summary.HTTPReachable))
	r.pdf.Ln(2)

	rows := make([][]string, 0, len(p.Records))
	for _, rec := range p.Records {
		dns := rec.DNSError
		if rec.Resolved() {
			dns = strings.Join(rec.IPs, ", ")
		}
		httpStatus := "-"
		if rec.HTTPStatus != nil {
			httpStatus = rec.HTTPStatus.String()
		}
		rows = append(rows, []string{rec.Subdomain, dns, httpStatus})
	}
	r.table([]string{"Subdomain", "DNS", "HTTP"}, []float64{70, 80, 28}, rows)
}

// rawResult vuelca el resultado como JSON indentado.
func rawResult(res domain.ScanResult) string {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", res.Payload)
	}
	return string(data)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 3 || len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
