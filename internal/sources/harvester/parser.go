package harvester

import (
	"bytes"
	"encoding/json"

	"reconforge/internal/core/domain"
	"reconforge/internal/platform/errors"
)

// report contiene solo las claves de theHarvester que se conservan.
type report struct {
	Emails  []string `json:"emails"`
	Hosts   []string `json:"hosts"`
	Domains []string `json:"domains"`
}

// ParseJSON normaliza el fichero JSON de theHarvester.
// Las claves ausentes se convierten en listas vacías; un JSON inválido retorna ErrParse.
func ParseJSON(data []byte) (domain.HarvestPayload, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.HarvestPayload{}, errors.Wrap(errors.ErrParse, "empty theHarvester output")
	}

	var r report
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.HarvestPayload{}, errors.Wrapf(errors.ErrParse, "failed to parse theHarvester JSON output: %v", err)
	}

	return domain.HarvestPayload{
		Emails:  nonNil(r.Emails),
		Hosts:   nonNil(r.Hosts),
		Domains: nonNil(r.Domains),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
