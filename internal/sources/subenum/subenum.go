// Package subenum es el enumerador de subdominios integrado: prueba una
// wordlist contra el dominio objetivo con resolución DNS y sondeo HTTP.
package subenum

import (
	"context"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
	"reconforge/internal/platform/errors"
	"reconforge/internal/platform/httpclient"
	"reconforge/internal/platform/logx"
	"reconforge/internal/platform/validator"
)

// DefaultTimeout límite de una enumeración completa.
const DefaultTimeout = 300 * time.Second

// Config parámetros del scanner.
type Config struct {
	Wordlist  string   // ruta; vacío = lista integrada
	Resolvers []string // servidores DNS; vacío = resolv.conf
	Options   ProbeOptions
	Timeout   time.Duration
}

// Scanner implementa ports.Scanner y ports.Checker para el enumerador.
type Scanner struct {
	prober   *Prober
	wordlist string
	opts     ProbeOptions
	timeout  time.Duration
	logger   logx.Logger
}

// New crea un Scanner con el resolver miekg/dns y el cliente HTTP de sondeo.
func New(cfg Config, logger logx.Logger) *Scanner {
	if logger == nil {
		logger = logx.NewNop()
	}
	resolver := NewResolver(ResolverConfig{Servers: cfg.Resolvers}, logger)
	prober := NewProber(resolver, httpclient.New(httpclient.ProbeConfig(), logger), logger)
	return NewWithProber(cfg, prober, logger)
}

// NewWithProber crea un Scanner sobre un Prober ya construido.
func NewWithProber(cfg Config, prober *Prober, logger logx.Logger) *Scanner {
	if logger == nil {
		logger = logx.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Options.Threads <= 0 {
		cfg.Options.Threads = DefaultThreads
	}
	return &Scanner{
		prober:   prober,
		wordlist: cfg.Wordlist,
		opts:     cfg.Options,
		timeout:  cfg.Timeout,
		logger:   logger,
	}
}

// Tool retorna el identificador de la herramienta.
func (s *Scanner) Tool() domain.ToolID { return domain.ToolSubdomainEnum }

// Timeout retorna el límite de ejecución.
func (s *Scanner) Timeout() time.Duration { return s.timeout }

// UsesWorkDir es false: el enumerador trabaja en memoria.
func (s *Scanner) UsesWorkDir() bool { return false }

// Prober retorna el prober subyacente (para el comando enum).
func (s *Scanner) Prober() *Prober { return s.prober }

// Scan enumera la wordlist contra el dominio objetivo.
func (s *Scanner) Scan(ctx context.Context, req ports.ScanRequest) (any, error) {
	if !req.Target.IsDomain() {
		return nil, errors.Wrapf(errors.ErrToolFailed, "subdomain enumeration requires a domain target, got %s", req.Target.Value)
	}
	return s.Enumerate(ctx, req.Target.Value)
}

// Enumerate ejecuta la enumeración sobre domainName.
func (s *Scanner) Enumerate(ctx context.Context, domainName string) (domain.EnumerationPayload, error) {
	words, err := LoadWordlist(s.wordlist)
	if err != nil {
		return domain.EnumerationPayload{}, err
	}

	if !validator.IsApex(domainName) {
		s.logger.Warn("target is not a registrable domain, enumerating below it", "domain", domainName)
	}

	records := s.prober.Probe(ctx, domainName, words, s.opts)
	payload := domain.EnumerationPayload{
		Records:      records,
		Summary:      Summarize(records),
		DNSAvailable: s.prober.DNSAvailable(),
	}

	if err := ctx.Err(); err != nil {
		return payload, err
	}

	s.logger.Info("enumeration finished",
		"total", payload.Summary.Total,
		"dns_resolved", payload.Summary.DNSResolved,
		"http_reachable", payload.Summary.HTTPReachable,
	)
	return payload, nil
}

// Check falla con ErrDependencyUnavailable si no hay resolución DNS.
// La enumeración sigue siendo posible vía fallback HTTP.
func (s *Scanner) Check(_ context.Context) error {
	if !s.prober.DNSAvailable() {
		return errors.Wrap(errors.ErrDependencyUnavailable, "no DNS resolver configuration found")
	}
	return nil
}
