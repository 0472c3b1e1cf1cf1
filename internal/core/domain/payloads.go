// internal/core/domain/payloads.go
package domain

import (
	"encoding/json"
	"strconv"
)

// NetworkScanPayload resultado normalizado de nmap, indexado por host.
type NetworkScanPayload map[string]HostReport

// HostReport estado de un host descubierto por nmap.
type HostReport struct {
	State     string       `json:"state"`
	OSGuesses []OSGuess    `json:"os_guesses"`
	Ports     []PortReport `json:"ports"`
}

// OSGuess coincidencia de sistema operativo.
type OSGuess struct {
	Name     string `json:"name"`
	Accuracy int    `json:"accuracy"`
	Line     int    `json:"line,omitempty"`
}

// PortReport puerto y servicio detectado.
type PortReport struct {
	Port     uint16 `json:"port"`
	Protocol string `json:"protocol"`
	State    string `json:"state"`
	Service  string `json:"service,omitempty"`
	Product  string `json:"product,omitempty"`
	Version  string `json:"version,omitempty"`
}

// OpenPorts cuenta los puertos abiertos de todos los hosts.
func (p NetworkScanPayload) OpenPorts() int {
	n := 0
	for _, h := range p {
		for _, port := range h.Ports {
			if port.State == "open" {
				n++
			}
		}
	}
	return n
}

// HarvestPayload resultado normalizado de theHarvester.
type HarvestPayload struct {
	Emails  []string `json:"emails"`
	Hosts   []string `json:"hosts"`
	Domains []string `json:"domains"`
}

// SubdomainListPayload lista de subdominios (Sublist3r).
type SubdomainListPayload struct {
	Subdomains []string `json:"subdomains"`
}

// SQLInjectionPayload hallazgos de sqlmap más la salida truncada.
type SQLInjectionPayload struct {
	Findings []string `json:"findings"`
	Output   string   `json:"output"`
}

// EnumerationPayload resultado del enumerador DNS+HTTP interno.
type EnumerationPayload struct {
	Records      []EnumerationRecord `json:"records"`
	Summary      EnumerationSummary  `json:"summary"`
	DNSAvailable bool                `json:"dns_available"`
}

// EnumerationSummary contadores agregados de una enumeración.
type EnumerationSummary struct {
	Total         int `json:"total"`
	DNSResolved   int `json:"dns_resolved"`
	HTTPReachable int `json:"http_reachable"`
}

// RecordStatusActive marca un candidato que resolvió por DNS.
const RecordStatusActive = "active"

// EnumerationRecord resultado de sondear un candidato <entry>.<domain>.
type EnumerationRecord struct {
	Subdomain  string      `json:"subdomain"`
	IPs        []string    `json:"ips,omitempty"`
	Status     string      `json:"status,omitempty"`
	DNSError   string      `json:"dns_error,omitempty"`
	HTTPStatus *HTTPStatus `json:"http_status,omitempty"`
}

// Resolved indica si el paso DNS tuvo éxito.
func (r EnumerationRecord) Resolved() bool {
	return r.Status == RecordStatusActive
}

// Reachable indica si algún esquema HTTP respondió.
func (r EnumerationRecord) Reachable() bool {
	return r.HTTPStatus != nil && !r.HTTPStatus.Unreachable()
}

// HTTPStatus código HTTP observado; Code 0 significa inalcanzable.
type HTTPStatus struct {
	Code int
}

// Unreachable indica que ningún esquema respondió.
func (s HTTPStatus) Unreachable() bool {
	return s.Code == 0
}

// String retorna el código o "unreachable".
func (s HTTPStatus) String() string {
	if s.Unreachable() {
		return "unreachable"
	}
	return strconv.Itoa(s.Code)
}

// MarshalJSON emite el código como entero o la cadena "unreachable".
func (s HTTPStatus) MarshalJSON() ([]byte, error) {
	if s.Unreachable() {
		return json.Marshal("unreachable")
	}
	return json.Marshal(s.Code)
}

// UnmarshalJSON acepta ambas formas.
func (s *HTTPStatus) UnmarshalJSON(b []byte) error {
	var code int
	if err := json.Unmarshal(b, &code); err == nil {
		s.Code = code
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	s.Code = 0
	return nil
}
