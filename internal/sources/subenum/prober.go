package subenum

import (
	"context"
	"strings"
	"sync"

	"reconforge/internal/core/domain"
	"reconforge/internal/platform/logx"
	"reconforge/internal/platform/validator"
	"reconforge/internal/platform/workerpool"
)

// DefaultThreads número de candidatos sondeados a la vez.
const DefaultThreads = 10

// HTTPProber realiza un GET y retorna el código final tras redirecciones.
// *httpclient.Client lo implementa.
type HTTPProber interface {
	Probe(ctx context.Context, url string) (int, error)
}

// ProbeOptions parámetros de una enumeración.
type ProbeOptions struct {
	// Threads candidatos simultáneos (0 = DefaultThreads)
	Threads int

	// HTTPFallbackOnDNSFailure sondea HTTP también cuando falla el DNS
	HTTPFallbackOnDNSFailure bool

	// HTTPSFirst prueba https antes que http
	HTTPSFirst bool
}

// DefaultProbeOptions retorna las opciones por defecto (fallback HTTP activo).
func DefaultProbeOptions() ProbeOptions {
	return ProbeOptions{Threads: DefaultThreads, HTTPFallbackOnDNSFailure: true}
}

// Schemes retorna el orden de esquemas a probar.
func (o ProbeOptions) Schemes() []string {
	if o.HTTPSFirst {
		return []string{"https", "http"}
	}
	return []string{"http", "https"}
}

// Prober combina resolución DNS y sondeo HTTP sobre una lista de candidatos.
type Prober struct {
	resolver Resolver
	http     HTTPProber
	logger   logx.Logger

	mu       sync.Mutex
	onRecord func(domain.EnumerationRecord)
}

// NewProber crea un Prober.
func NewProber(resolver Resolver, http HTTPProber, logger logx.Logger) *Prober {
	if logger == nil {
		logger = logx.NewNop()
	}
	if resolver == nil {
		resolver = UnavailableResolver{}
	}
	return &Prober{
		resolver: resolver,
		http:     http,
		logger:   logger.With("component", "subenum-prober"),
	}
}

// OnRecord registra un callback invocado (serializado) con cada registro terminado.
func (p *Prober) OnRecord(fn func(domain.EnumerationRecord)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onRecord = fn
}

// DNSAvailable indica si el resolver tiene capacidad DNS.
func (p *Prober) DNSAvailable() bool {
	return p.resolver.Available()
}

// Candidates construye los FQDN <entrada>.<dominio> ignorando entradas vacías.
func Candidates(domainName string, subnames []string) []string {
	out := make([]string, 0, len(subnames))
	for _, s := range subnames {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, validator.JoinLabel(s, domainName))
	}
	return out
}

// Probe sondea cada candidato y retorna exactamente un registro por candidato.
// El orden del resultado sigue el de subnames.
func (p *Prober) Probe(ctx context.Context, domainName string, subnames []string, opts ProbeOptions) []domain.EnumerationRecord {
	if opts.Threads <= 0 {
		opts.Threads = DefaultThreads
	}

	candidates := Candidates(domainName, subnames)
	records := make([]domain.EnumerationRecord, len(candidates))

	tasks := make([]workerpool.Task, len(candidates))
	for i, fqdn := range candidates {
		records[i] = domain.EnumerationRecord{Subdomain: fqdn}
		tasks[i] = workerpool.TaskFunc{
			TaskName: fqdn,
			Fn: func(ctx context.Context) error {
				records[i] = p.probeOne(ctx, fqdn, opts)
				p.emit(records[i])
				return nil
			},
		}
	}

	p.logger.Info("enumerating candidates",
		"domain", domainName,
		"candidates", len(candidates),
		"threads", opts.Threads,
		"dns_available", p.resolver.Available(),
		"http_fallback", opts.HTTPFallbackOnDNSFailure,
	)

	pool := workerpool.New(workerpool.Config{
		Workers: opts.Threads,
		Logger:  p.logger,
	})
	for _, res := range pool.Run(ctx, tasks) {
		if res.Error != nil {
			p.logger.Warn("candidate probe failed", "candidate", res.Task.Name(), "error", res.Error.Error())
		}
	}

	return records
}

func (p *Prober) probeOne(ctx context.Context, fqdn string, opts ProbeOptions) domain.EnumerationRecord {
	rec := domain.EnumerationRecord{Subdomain: fqdn}

	ips, err := p.resolver.LookupA(ctx, fqdn)
	if err != nil {
		rec.DNSError = DNSErrorKind(err)
	} else {
		rec.IPs = ips
		rec.Status = domain.RecordStatusActive
	}

	if rec.Resolved() || opts.HTTPFallbackOnDNSFailure {
		rec.HTTPStatus = p.checkHTTP(ctx, fqdn, opts.Schemes())
	}

	return rec
}

// checkHTTP retorna el primer código obtenido o {Code: 0} si ningún esquema respondió.
func (p *Prober) checkHTTP(ctx context.Context, fqdn string, schemes []string) *domain.HTTPStatus {
	if p.http == nil {
		return &domain.HTTPStatus{}
	}
	for _, scheme := range schemes {
		code, err := p.http.Probe(ctx, scheme+"://"+fqdn)
		if err == nil {
			return &domain.HTTPStatus{Code: code}
		}
	}
	return &domain.HTTPStatus{}
}

func (p *Prober) emit(rec domain.EnumerationRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.onRecord != nil {
		p.onRecord(rec)
	}
}

// Summarize cuenta candidatos resueltos por DNS y alcanzables por HTTP.
func Summarize(records []domain.EnumerationRecord) domain.EnumerationSummary {
	s := domain.EnumerationSummary{Total: len(records)}
	for _, r := range records {
		if r.Resolved() {
			s.DNSResolved++
		}
		if r.Reachable() {
			s.HTTPReachable++
		}
	}
	return s
}
