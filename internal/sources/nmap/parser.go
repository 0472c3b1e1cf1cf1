package nmap

import (
	"bytes"
	"net"

	nmaplib "github.com/Ullaakut/nmap/v3"

	"reconforge/internal/core/domain"
	"reconforge/internal/platform/errors"
)

// ParseXML normaliza la salida XML de nmap (-oX) en un NetworkScanPayload.
// Los hosts se indexan por su primera dirección, con preferencia por IPv4.
// Una entrada vacía o que no es un documento nmaprun retorna ErrParse.
func ParseXML(data []byte) (domain.NetworkScanPayload, error) {
	if !bytes.Contains(data, []byte("<nmaprun")) {
		return nil, errors.Wrap(errors.ErrParse, "nmap output is not an nmaprun document")
	}

	run := &nmaplib.Run{}
	if err := nmaplib.Parse(data, run); err != nil {
		return nil, errors.Wrapf(errors.ErrParse, "nmap xml: %v", err)
	}

	payload := make(domain.NetworkScanPayload, len(run.Hosts))
	for _, h := range run.Hosts {
		key := hostKey(h.Addresses)
		if key == "" {
			continue
		}
		payload[key] = hostReport(h)
	}

	return payload, nil
}

func hostKey(addrs []nmaplib.Address) string {
	first := ""
	for _, a := range addrs {
		if a.AddrType == "mac" {
			continue
		}
		if a.AddrType == "ipv4" || isIPv4(a.Addr) {
			return a.Addr
		}
		if first == "" {
			first = a.Addr
		}
	}
	return first
}

func isIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}

func hostReport(h nmaplib.Host) domain.HostReport {
	report := domain.HostReport{
		State:     h.Status.State,
		OSGuesses: make([]domain.OSGuess, 0, len(h.OS.Matches)),
		Ports:     make([]domain.PortReport, 0, len(h.Ports)),
	}

	for _, m := range h.OS.Matches {
		report.OSGuesses = append(report.OSGuesses, domain.OSGuess{
			Name:     m.Name,
			Accuracy: m.Accuracy,
			Line:     m.Line,
		})
	}

	for _, p := range h.Ports {
		report.Ports = append(report.Ports, domain.PortReport{
			Port:     p.ID,
			Protocol: p.Protocol,
			State:    p.State.State,
			Service:  p.Service.Name,
			Product:  p.Service.Product,
			Version:  p.Service.Version,
		})
	}

	return report
}
