// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

var domainRegex = regexp.MustCompile(`^([a-zA-Z0-9_]([a-zA-Z0-9\-_]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)

// Domain validators

// IsDomain verifica si un string es un dominio válido (ASCII o punycode).
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !domainRegex.MatchString(domain) {
		return false
	}
	// Una IP literal cumple la regex pero no es un dominio
	return net.ParseIP(domain) == nil
}

// IsSubdomain verifica si subdomain es un subdominio de baseDomain.
func IsSubdomain(subdomain, baseDomain string) bool {
	subdomain = NormalizeDomain(subdomain)
	baseDomain = NormalizeDomain(baseDomain)
	if subdomain == baseDomain {
		return false
	}
	return strings.HasSuffix(subdomain, "."+baseDomain)
}

// IsApex indica si el dominio es registrable (eTLD+1) según la public suffix list.
func IsApex(domain string) bool {
	domain = NormalizeDomain(domain)
	apex, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return false
	}
	return apex == domain
}

// NormalizeDomain normaliza un dominio a su forma canónica:
// minúsculas, sin punto final y con etiquetas IDN en punycode.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	domain = strings.TrimSuffix(domain, ".")
	if ascii, err := idna.Lookup.ToASCII(domain); err == nil {
		return ascii
	}
	return domain
}

// JoinLabel construye <label>.<domain> eliminando puntos sobrantes.
// Conserva las mayúsculas de la etiqueta tal como llegan.
func JoinLabel(label, domain string) string {
	label = strings.Trim(strings.TrimSpace(label), ".")
	domain = strings.Trim(strings.TrimSpace(domain), ".")
	if label == "" {
		return domain
	}
	return label + "." + domain
}

// Network validators

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
func IsIP(ip string) bool {
	return net.ParseIP(strings.TrimSpace(ip)) != nil
}

// IsIPv4 verifica si un string es una dirección IPv4 válida.
func IsIPv4(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	return parsed != nil && parsed.To4() != nil
}

// NormalizeIP retorna la forma canónica de la IP o "" si es inválida.
func NormalizeIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return ""
	}
	return parsed.String()
}

// URL validators

// IsURL verifica si un string es una URL absoluta con scheme y host.
func IsURL(urlStr string) bool {
	if urlStr == "" {
		return false
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

// Generic validators

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
