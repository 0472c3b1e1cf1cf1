// internal/platform/ui/symbols_test.go
package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reconforge/internal/core/domain"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind domain.ErrorKind
		want Status
		text string
	}{
		{domain.KindTimeoutExceeded, StatusTimedOut, "timeout"},
		{domain.KindCanceled, StatusCanceled, "canceled"},
		{domain.KindLaunchFailed, StatusFailed, "failed"},
		{domain.KindParseError, StatusFailed, "failed"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got := StatusForKind(tt.kind)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, got.String())
			assert.NotEqual(t, "?", got.Symbol())
		})
	}
}
