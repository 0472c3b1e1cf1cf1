// internal/core/domain/payloads_test.go
package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus_JSON(t *testing.T) {
	rec := []EnumerationRecord{
		{Subdomain: "www.example.com", IPs: []string{"1.2.3.4"}, Status: RecordStatusActive, HTTPStatus: &HTTPStatus{Code: 200}},
		{Subdomain: "api.example.com", DNSError: "NXDOMAIN", HTTPStatus: &HTTPStatus{}},
		{Subdomain: "ftp.example.com", DNSError: "NXDOMAIN"},
	}

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"subdomain":"www.example.com","ips":["1.2.3.4"],"status":"active","http_status":200},
		{"subdomain":"api.example.com","dns_error":"NXDOMAIN","http_status":"unreachable"},
		{"subdomain":"ftp.example.com","dns_error":"NXDOMAIN"}
	]`, string(b))

	var back []EnumerationRecord
	require.NoError(t, json.Unmarshal(b, &back))
	require.NotNil(t, back[0].HTTPStatus)
	assert.Equal(t, 200, back[0].HTTPStatus.Code)
	require.NotNil(t, back[1].HTTPStatus)
	assert.True(t, back[1].HTTPStatus.Unreachable())
	assert.Nil(t, back[2].HTTPStatus)
}

func TestEnumerationRecord_Predicates(t *testing.T) {
	assert.True(t, EnumerationRecord{Status: RecordStatusActive}.Resolved())
	assert.False(t, EnumerationRecord{DNSError: "Timeout"}.Resolved())
	assert.True(t, EnumerationRecord{HTTPStatus: &HTTPStatus{Code: 301}}.Reachable())
	assert.False(t, EnumerationRecord{HTTPStatus: &HTTPStatus{}}.Reachable())
	assert.False(t, EnumerationRecord{}.Reachable())
	assert.Equal(t, "unreachable", HTTPStatus{}.String())
	assert.Equal(t, "404", HTTPStatus{Code: 404}.String())
}

func TestNetworkScanPayload_OpenPorts(t *testing.T) {
	p := NetworkScanPayload{
		"10.0.0.1": {State: "up", Ports: []PortReport{{Port: 22, State: "open"}, {Port: 23, State: "closed"}}},
		"10.0.0.2": {State: "up", Ports: []PortReport{{Port: 80, State: "open"}}},
	}
	assert.Equal(t, 2, p.OpenPorts())
}
