package subenum

import (
	"bufio"
	"os"
	"strings"

	"reconforge/internal/platform/errors"
)

var defaultWordlist = []string{"www", "mail", "ftp", "test", "dev", "api", "staging", "beta", "portal", "admin"}

// DefaultWordlist retorna la lista de candidatos integrada.
func DefaultWordlist() []string {
	return append([]string(nil), defaultWordlist...)
}

// LoadWordlist lee una entrada por línea; las líneas vacías y las que
// empiezan por # se ignoran. Una ruta vacía o inexistente retorna la lista integrada.
func LoadWordlist(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultWordlist(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultWordlist(), nil
		}
		return nil, errors.Wrapf(errors.ErrInvalidInput, "opening wordlist: %v", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()
		if strings.HasPrefix(raw, "#") {
			continue
		}
		if w := strings.TrimSpace(raw); w != "" {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "reading wordlist: %v", err)
	}

	return words, nil
}
