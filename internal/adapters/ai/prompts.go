// internal/adapters/ai/prompts.go
package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"reconforge/internal/platform/errors"
)

// genericPrompt plantilla usada para herramientas sin prompt propio.
const genericPrompt = "generic"

// promptTemplates contiene un prompt por herramienta (más "overall" y "generic").
// Cada uno recibe promptData.
const promptTemplates = `
{{- define "nmap" -}}
You are a penetration tester. Analyze this Nmap scan result:

{{ result .Payload }}

Tasks:
- Identify services and versions running
- Highlight possible vulnerabilities (with CVE references if known)
- Rate risk level (Low/Medium/High/Critical)
- Suggest exploitation tools or methods
{{- end -}}

{{- define "harvester" -}}
You are an OSINT expert. Analyze this theHarvester output:

{{ result .Payload }}

Tasks:
- Identify discovered emails, hosts, or domains
- Highlight potential attack surfaces (e.g., emails -> phishing, domains -> subdomain takeovers)
- Rate risk level
- Suggest next reconnaissance or exploitation steps
{{- end -}}

{{- define "sublist3r" -}}
You are a subdomain enumeration specialist. Analyze this Sublist3r output:

{{ result .Payload }}

Tasks:
- Identify interesting or vulnerable-looking subdomains
- Highlight if any may be staging/test environments
- Rate risk level
- Suggest next recon steps (e.g., brute force, takeover checks)
{{- end -}}

{{- define "sql_injection" -}}
You are a web security specialist. Analyze this SQLmap SQL Injection test output:

{{ result .Payload }}

Tasks:
- Determine if SQL Injection was found
- Highlight vulnerable parameters or endpoints
- Suggest CVEs or known exploits if relevant
- Rate risk level
{{- end -}}

{{- define "subdomain_enum" -}}
You are a reconnaissance expert. Analyze this custom Subdomain Enumeration output:

{{ result .Payload }}

Tasks:
- Identify useful subdomains
- Highlight any risky infrastructure exposures
- Rate risk level
- Suggest next actions
{{- end -}}

{{- define "overall" -}}
You are a cybersecurity analyst. Here are combined results from multiple recon tools
{{- if .Keys }} ({{ .Keys | sortAlpha | join ", " }}){{ end }}:

{{ result .Payload }}

Tasks:
- Summarize main security weaknesses
- Identify attack paths (recon -> exploitation)
- Provide an overall risk score (Low/Medium/High/Critical)
- Suggest prioritized mitigation recommendations
{{- end -}}

{{- define "generic" -}}
Analyze the following {{ .Tool | default "scan" }} result:

{{ result .Payload }}

Tasks:
- Identify risks
- Suggest exploits or mitigations
{{- end -}}
`

type promptData struct {
	Tool    string
	Payload any
	Keys    []string
}

// PromptBuilder renderiza los prompts de análisis.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder compila las plantillas con las funciones de sprig.
func NewPromptBuilder() (*PromptBuilder, error) {
	funcMap := sprig.TxtFuncMap()
	funcMap["result"] = resultText

	tmpl, err := template.New("prompts").Funcs(funcMap).Parse(promptTemplates)
	if err != nil {
		return nil, fmt.Errorf("parse prompt templates: %w", err)
	}
	return &PromptBuilder{tmpl: tmpl}, nil
}

// Build genera el prompt de una herramienta; las desconocidas usan la plantilla genérica.
func (b *PromptBuilder) Build(tool string, payload any) (string, error) {
	name := tool
	if b.tmpl.Lookup(name) == nil || name == "prompts" {
		name = genericPrompt
	}

	data := promptData{Tool: tool, Payload: payload}
	if m, ok := payload.(map[string]any); ok {
		for k := range m {
			data.Keys = append(data.Keys, k)
		}
	}

	var buf bytes.Buffer
	if err := b.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "render %s prompt: %v", name, err)
	}
	return buf.String(), nil
}

// resultText vuelca el payload: los strings tal cual, el resto como JSON indentado.
func resultText(v any) string {
	switch t := v.(type) {
	case nil:
		return "(no result)"
	case string:
		return t
	case []byte:
		return string(t)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
