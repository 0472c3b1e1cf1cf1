package subenum

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/miekg/dns"

	"reconforge/internal/platform/logx"
)

// Clases de error DNS registradas en EnumerationRecord.DNSError.
const (
	DNSErrNXDomain      = "NXDOMAIN"
	DNSErrNoAnswer      = "NoAnswer"
	DNSErrTimeout       = "Timeout"
	DNSErrNoNameservers = "NoNameservers"
	DNSErrUnavailable   = "DNS_UNAVAILABLE"
)

const (
	// DefaultLifetime es el tiempo total de una consulta A, reintentos incluidos.
	DefaultLifetime = 3 * time.Second

	defaultResolvConf = "/etc/resolv.conf"
)

// DNSError es el fallo de una consulta; Kind es una de las constantes DNSErr*.
type DNSError struct {
	Kind string
	Name string
}

func (e *DNSError) Error() string {
	return e.Kind + ": " + e.Name
}

// DNSErrorKind extrae la clase de error DNS de err.
func DNSErrorKind(err error) string {
	var de *DNSError
	if errors.As(err, &de) {
		return de.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return DNSErrTimeout
	}
	return DNSErrNoNameservers
}

// Resolver resuelve registros A.
type Resolver interface {
	// LookupA retorna las direcciones IPv4 de fqdn o un *DNSError
	LookupA(ctx context.Context, fqdn string) ([]string, error)

	// Available indica si hay capacidad de resolución DNS
	Available() bool
}

// ResolverConfig configura el resolver DNS.
type ResolverConfig struct {
	// Servers lista de servidores (host o host:puerto); vacío = resolv.conf
	Servers []string

	// ResolvConf ruta alternativa a /etc/resolv.conf
	ResolvConf string

	// Lifetime tiempo total por consulta (0 = DefaultLifetime)
	Lifetime time.Duration
}

// NewResolver decide una sola vez si hay resolución DNS disponible.
// Sin servidores configurados ni resolv.conf legible retorna UnavailableResolver.
func NewResolver(cfg ResolverConfig, logger logx.Logger) Resolver {
	if logger == nil {
		logger = logx.NewNop()
	}
	logger = logger.With("component", "dns-resolver")

	if cfg.Lifetime <= 0 {
		cfg.Lifetime = DefaultLifetime
	}

	servers := make([]string, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		if s != "" {
			servers = append(servers, withPort(s, "53"))
		}
	}

	if len(servers) == 0 {
		path := cfg.ResolvConf
		if path == "" {
			path = defaultResolvConf
		}
		conf, err := dns.ClientConfigFromFile(path)
		if err != nil {
			logger.Warn("DNS resolution unavailable", "resolv_conf", path, "error", err.Error())
			return UnavailableResolver{}
		}
		for _, s := range conf.Servers {
			servers = append(servers, withPort(s, conf.Port))
		}
	}

	if len(servers) == 0 {
		logger.Warn("DNS resolution unavailable", "reason", "no nameservers configured")
		return UnavailableResolver{}
	}

	logger.Debug("DNS resolver ready", "servers", servers, "lifetime", cfg.Lifetime.String())
	return &DNSResolver{
		servers:  servers,
		lifetime: cfg.Lifetime,
		udp:      &dns.Client{Net: "udp", Timeout: cfg.Lifetime},
		tcp:      &dns.Client{Net: "tcp", Timeout: cfg.Lifetime},
		logger:   logger,
	}
}

func withPort(server, port string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	if port == "" {
		port = "53"
	}
	return net.JoinHostPort(server, port)
}

// DNSResolver consulta registros A con github.com/miekg/dns probando cada
// servidor en orden hasta obtener una respuesta concluyente.
type DNSResolver struct {
	servers  []string
	lifetime time.Duration
	udp      *dns.Client
	tcp      *dns.Client
	logger   logx.Logger
}

// Available siempre es true para un resolver con servidores.
func (r *DNSResolver) Available() bool { return true }

// Servers retorna los servidores usados, con puerto.
func (r *DNSResolver) Servers() []string {
	return append([]string(nil), r.servers...)
}

// LookupA implementa Resolver.
func (r *DNSResolver) LookupA(ctx context.Context, fqdn string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.lifetime)
	defer cancel()

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(fqdn), dns.TypeA)

	lastKind := DNSErrNoNameservers
	for _, server := range r.servers {
		resp, err := r.exchange(ctx, msg, server)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &DNSError{Kind: DNSErrTimeout, Name: fqdn}
			}
			if isTimeout(err) {
				lastKind = DNSErrTimeout
			}
			r.logger.Debug("nameserver failed", "server", server, "name", fqdn, "error", err.Error())
			continue
		}

		switch resp.Rcode {
		case dns.RcodeNameError:
			return nil, &DNSError{Kind: DNSErrNXDomain, Name: fqdn}
		case dns.RcodeSuccess:
			ips := aRecords(resp)
			if len(ips) == 0 {
				return nil, &DNSError{Kind: DNSErrNoAnswer, Name: fqdn}
			}
			return ips, nil
		default:
			// SERVFAIL, REFUSED...: probar el siguiente servidor
			r.logger.Debug("nameserver answered with error", "server", server, "rcode", dns.RcodeToString[resp.Rcode])
		}
	}

	return nil, &DNSError{Kind: lastKind, Name: fqdn}
}

func (r *DNSResolver) exchange(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
	resp, _, err := r.udp.ExchangeContext(ctx, msg, server)
	if err != nil {
		return nil, err
	}
	if resp.Truncated {
		resp, _, err = r.tcp.ExchangeContext(ctx, msg, server)
	}
	return resp, err
}

func aRecords(resp *dns.Msg) []string {
	var ips []string
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	return ips
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// UnavailableResolver se usa cuando no hay configuración DNS: cada consulta
// falla con DNS_UNAVAILABLE sin tocar la red.
type UnavailableResolver struct{}

// Available implementa Resolver.
func (UnavailableResolver) Available() bool { return false }

// LookupA implementa Resolver.
func (UnavailableResolver) LookupA(_ context.Context, fqdn string) ([]string, error) {
	return nil, &DNSError{Kind: DNSErrUnavailable, Name: fqdn}
}
