package sqlinjection

import (
	"strings"

	"reconforge/internal/core/domain"
)

// OutputLimit es el número de caracteres de stdout que se conservan en el payload.
const OutputLimit = 1000

var keywords = []string{"sql injection", "parameter", "vulnerable"}

// ParseOutput extrae los hallazgos de la salida de sqlmap.
// Los hallazgos se calculan sobre la salida completa aunque Output se trunque
// a OutputLimit caracteres (con "..." si era más larga).
func ParseOutput(stdout string) domain.SQLInjectionPayload {
	findings := []string{}
	for _, line := range strings.Split(stdout, "\n") {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				findings = append(findings, strings.TrimSpace(line))
				break
			}
		}
	}

	return domain.SQLInjectionPayload{
		Findings: findings,
		Output:   truncate(stdout, OutputLimit),
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
