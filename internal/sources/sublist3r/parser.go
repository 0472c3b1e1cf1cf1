package sublist3r

import (
	"io"

	"reconforge/internal/core/domain"
	"reconforge/internal/platform/errors"
	"reconforge/internal/sources/common"
)

// ParseLines lee un subdominio por línea no vacía. Una entrada vacía es válida.
func ParseLines(r io.Reader) (domain.SubdomainListPayload, error) {
	payload := domain.SubdomainListPayload{Subdomains: []string{}}
	err := common.ReadLines(r, func(line string) {
		payload.Subdomains = append(payload.Subdomains, line)
	})
	if err != nil {
		return domain.SubdomainListPayload{}, errors.Wrapf(errors.ErrParse, "reading subdomain list: %v", err)
	}
	return payload, nil
}
