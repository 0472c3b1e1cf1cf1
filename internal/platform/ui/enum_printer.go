// internal/platform/ui/enum_printer.go
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"reconforge/internal/core/domain"
)

// EnumPrinter imprime los registros del enumerador a medida que se sondean:
// "[+]" para candidatos resueltos o alcanzables y "[-]" para el resto.
type EnumPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
}

// NewEnumPrinter crea el printer. verbose incluye los candidatos sin resultado.
func NewEnumPrinter(out io.Writer, verbose bool) *EnumPrinter {
	if out == nil {
		out = os.Stdout
	}
	return &EnumPrinter{out: out, verbose: verbose}
}

// Record imprime un registro; se usa como callback del prober.
func (p *EnumPrinter) Record(rec domain.EnumerationRecord) {
	line, hit := FormatRecord(rec)
	if !hit && !p.verbose {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, line)
}

// Summary imprime los contadores finales.
func (p *EnumPrinter) Summary(payload domain.EnumerationPayload) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !payload.DNSAvailable {
		fmt.Fprintln(p.out, "[!] DNS resolution unavailable; results rely on HTTP probes only")
	}
	fmt.Fprintf(p.out, "\n[*] Candidates: %d\n", payload.Summary.Total)
	fmt.Fprintf(p.out, "[*] DNS resolved: %d\n", payload.Summary.DNSResolved)
	fmt.Fprintf(p.out, "[*] HTTP reachable: %d\n", payload.Summary.HTTPReachable)
}

// FormatRecord retorna la línea de un registro y si cuenta como hallazgo.
func FormatRecord(rec domain.EnumerationRecord) (string, bool) {
	var b strings.Builder
	hit := rec.Resolved() || rec.Reachable()
	if hit {
		b.WriteString("[+] ")
	} else {
		b.WriteString("[-] ")
	}
	b.WriteString(rec.Subdomain)

	if rec.Resolved() {
		b.WriteString(" -> " + strings.Join(rec.IPs, ", "))
	} else if rec.DNSError != "" {
		b.WriteString(" (" + rec.DNSError + ")")
	}
	if rec.HTTPStatus != nil {
		b.WriteString(" [HTTP " + rec.HTTPStatus.String() + "]")
	}
	return b.String(), hit
}
