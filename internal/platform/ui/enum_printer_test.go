// internal/platform/ui/enum_printer_test.go
package ui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"reconforge/internal/core/domain"
)

func disablePTerm(t *testing.T) {
	t.Helper()
	pterm.DisableOutput()
	t.Cleanup(pterm.EnableOutput)
}

func TestFormatRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  domain.EnumerationRecord
		line string
		hit  bool
	}{
		{
			name: "resolved and reachable",
			rec:  domain.EnumerationRecord{Subdomain: "www.example.com", IPs: []string{"10.0.0.1", "10.0.0.2"}, Status: domain.RecordStatusActive, HTTPStatus: &domain.HTTPStatus{Code: 200}},
			line: "[+] www.example.com -> 10.0.0.1, 10.0.0.2 [HTTP 200]",
			hit:  true,
		},
		{
			name: "nxdomain unreachable",
			rec:  domain.EnumerationRecord{Subdomain: "api.example.com", DNSError: "NXDOMAIN", HTTPStatus: &domain.HTTPStatus{}},
			line: "[-] api.example.com (NXDOMAIN) [HTTP unreachable]",
			hit:  false,
		},
		{
			name: "dns failed but http answered",
			rec:  domain.EnumerationRecord{Subdomain: "dev.example.com", DNSError: "DNS_UNAVAILABLE", HTTPStatus: &domain.HTTPStatus{Code: 403}},
			line: "[+] dev.example.com (DNS_UNAVAILABLE) [HTTP 403]",
			hit:  true,
		},
		{
			name: "not probed",
			rec:  domain.EnumerationRecord{Subdomain: "ftp.example.com", DNSError: "NoAnswer"},
			line: "[-] ftp.example.com (NoAnswer)",
			hit:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, hit := FormatRecord(tt.rec)
			assert.Equal(t, tt.line, line)
			assert.Equal(t, tt.hit, hit)
		})
	}
}

func TestEnumPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewEnumPrinter(&buf, false)

	p.Record(domain.EnumerationRecord{Subdomain: "www.example.com", IPs: []string{"10.0.0.1"}, Status: domain.RecordStatusActive})
	p.Record(domain.EnumerationRecord{Subdomain: "api.example.com", DNSError: "NXDOMAIN"})
	p.Summary(domain.EnumerationPayload{
		Summary: domain.EnumerationSummary{Total: 2, DNSResolved: 1},
	})

	out := buf.String()
	assert.Contains(t, out, "[+] www.example.com -> 10.0.0.1\n")
	assert.NotContains(t, out, "api.example.com")
	assert.Contains(t, out, "[!] DNS resolution unavailable")
	assert.Contains(t, out, "[*] Candidates: 2")
	assert.Contains(t, out, "[*] DNS resolved: 1")
	assert.Contains(t, out, "[*] HTTP reachable: 0")

	buf.Reset()
	NewEnumPrinter(&buf, true).Record(domain.EnumerationRecord{Subdomain: "api.example.com", DNSError: "NXDOMAIN"})
	assert.Equal(t, "[-] api.example.com (NXDOMAIN)\n", buf.String())
}
