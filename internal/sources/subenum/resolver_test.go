package subenum

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconforge/internal/platform/logx"
)

// startDNSServer levanta un servidor miekg/dns en 127.0.0.1 y retorna su dirección.
func startDNSServer(t *testing.T, handler dns.HandlerFunc) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	srv := &dns.Server{PacketConn: pc, Handler: handler, NotifyStartedFunc: func() { close(started) }}
	go func() { _ = srv.ActivateAndServe() }()
	<-started
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func zone(w dns.ResponseWriter, req *dns.Msg) {
	m := new(dns.Msg)
	m.SetReply(req)

	switch req.Question[0].Name {
	case "www.example.test.":
		m.Answer = append(m.Answer,
			&dns.A{Hdr: dns.RR_Header{Name: "www.example.test.", Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 60}, A: net.ParseIP("10.0.0.1")},
			&dns.A{Hdr: dns.RR_Header{Name: "www.example.test.", Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 60}, A: net.ParseIP("10.0.0.2")},
		)
	case "empty.example.test.":
		// NOERROR sin respuestas
	case "broken.example.test.":
		m.Rcode = dns.RcodeServerFailure
	default:
		m.Rcode = dns.RcodeNameError
	}

	_ = w.WriteMsg(m)
}

func TestDNSResolver_LookupA(t *testing.T) {
	addr := startDNSServer(t, zone)
	r := NewResolver(ResolverConfig{Servers: []string{addr}, Lifetime: time.Second}, logx.NewSilent())
	require.True(t, r.Available())

	ips, err := r.LookupA(context.Background(), "www.example.test")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, ips)

	tests := []struct {
		name string
		want string
	}{
		{"nx.example.test", DNSErrNXDomain},
		{"empty.example.test", DNSErrNoAnswer},
		{"broken.example.test", DNSErrNoNameservers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.LookupA(context.Background(), tt.name)
			require.Error(t, err)
			assert.Equal(t, tt.want, DNSErrorKind(err))
		})
	}
}

func TestDNSResolver_FallsThroughToNextServer(t *testing.T) {
	failing := startDNSServer(t, func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetRcode(req, dns.RcodeRefused)
		_ = w.WriteMsg(m)
	})
	good := startDNSServer(t, zone)

	r := NewResolver(ResolverConfig{Servers: []string{failing, good}, Lifetime: time.Second}, logx.NewSilent())
	ips, err := r.LookupA(context.Background(), "www.example.test")
	require.NoError(t, err)
	assert.Len(t, ips, 2)
}

func TestDNSResolver_Timeout(t *testing.T) {
	// socket que nunca responde
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pc.Close() })

	r := NewResolver(ResolverConfig{Servers: []string{pc.LocalAddr().String()}, Lifetime: 200 * time.Millisecond}, logx.NewSilent())

	start := time.Now()
	_, err = r.LookupA(context.Background(), "www.example.test")
	require.Error(t, err)
	assert.Equal(t, DNSErrTimeout, DNSErrorKind(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNewResolver_Unavailable(t *testing.T) {
	r := NewResolver(ResolverConfig{ResolvConf: filepath.Join(t.TempDir(), "missing.conf")}, logx.NewSilent())
	assert.False(t, r.Available())

	_, err := r.LookupA(context.Background(), "www.example.com")
	assert.Equal(t, DNSErrUnavailable, DNSErrorKind(err))
}

func TestNewResolver_FromResolvConf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolv.conf")
	require.NoError(t, os.WriteFile(path, []byte("search lan\nnameserver 192.0.2.53\nnameserver 2001:db8::53\n"), 0o644))

	r := NewResolver(ResolverConfig{ResolvConf: path}, logx.NewSilent())
	require.True(t, r.Available())

	dr, ok := r.(*DNSResolver)
	require.True(t, ok)
	assert.Equal(t, []string{"192.0.2.53:53", "[2001:db8::53]:53"}, dr.Servers())
}

func TestWithPort(t *testing.T) {
	assert.Equal(t, "8.8.8.8:53", withPort("8.8.8.8", "53"))
	assert.Equal(t, "8.8.8.8:5353", withPort("8.8.8.8:5353", "53"))
	assert.Equal(t, "[::1]:53", withPort("::1", ""))
}

func TestDNSErrorKind_Fallbacks(t *testing.T) {
	assert.Equal(t, DNSErrTimeout, DNSErrorKind(context.DeadlineExceeded))
	assert.Equal(t, DNSErrNoNameservers, DNSErrorKind(assert.AnError))
}
