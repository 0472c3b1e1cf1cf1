// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"reconforge/internal/core/domain"
	"reconforge/internal/core/ports"
)

const (
	defaultOutputDir = "reconforge_out"
	defaultThreads   = 10
	defaultModel     = "gemini-1.5-flash"
	defaultAddr      = ":8080"
	defaultPython    = "python3"
)

// Config es la configuración completa de reconforge.
type Config struct {
	Core   Core   `yaml:"core" json:"core"`
	Output Output `yaml:"output" json:"output"`
	Tools  Tools  `yaml:"tools" json:"tools"`
	Enum   Enum   `yaml:"enum" json:"enum"`
	AI     AI     `yaml:"ai" json:"ai"`
	Server Server `yaml:"server" json:"server"`

	// LogLevel nivel de log (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`

	// ConfigFile ruta del YAML cargado (vacío si no hubo)
	ConfigFile string `yaml:"-" json:"config_file,omitempty"`
}

// Core parámetros de la ejecución.
type Core struct {
	Target   string   `yaml:"target" json:"target"`
	Tools    []string `yaml:"tools" json:"tools"`
	TimeoutS int      `yaml:"timeout" json:"timeout_s"` // timeout global en segundos (0 = sin timeout)
}

// Output destino de los reportes.
type Output struct {
	Dir    string `yaml:"dir" json:"dir"`
	Quiet  bool   `yaml:"quiet" json:"quiet"`
	NoPDF  bool   `yaml:"no_pdf" json:"no_pdf"`
	NoJSON bool   `yaml:"no_json" json:"no_json"`
}

// ToolSettings configuración de una herramienta externa.
type ToolSettings struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Path     string `yaml:"path" json:"path"`
	TimeoutS int    `yaml:"timeout" json:"timeout_s"` // 0 = valor por defecto de la herramienta
}

// Tools configuración de las herramientas externas.
type Tools struct {
	Python           string       `yaml:"python" json:"python"`
	Nmap             ToolSettings `yaml:"nmap" json:"nmap"`
	Harvester        ToolSettings `yaml:"harvester" json:"harvester"`
	HarvesterSources string       `yaml:"harvester_sources" json:"harvester_sources"`
	Sublist3r        ToolSettings `yaml:"sublist3r" json:"sublist3r"`
	SQLMap           ToolSettings `yaml:"sqlmap" json:"sqlmap"`
}

// Enum configuración del enumerador de subdominios interno.
type Enum struct {
	Enabled        bool     `yaml:"enabled" json:"enabled"`
	Wordlist       string   `yaml:"wordlist" json:"wordlist"`
	Threads        int      `yaml:"threads" json:"threads"`
	NoHTTPFallback bool     `yaml:"no_http_fallback" json:"no_http_fallback"`
	HTTPSFirst     bool     `yaml:"https_first" json:"https_first"`
	Resolvers      []string `yaml:"resolvers" json:"resolvers"`
	TimeoutS       int      `yaml:"timeout" json:"timeout_s"`
}

// AI configuración del analizador Gemini.
type AI struct {
	APIKey   string `yaml:"api_key" json:"-"`
	Model    string `yaml:"model" json:"model"`
	BaseURL  string `yaml:"base_url" json:"base_url,omitempty"`
	TimeoutS int    `yaml:"timeout" json:"timeout_s"`
}

// Server configuración de la API HTTP.
type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Core: Core{
			Tools: []string{domain.SelectAll},
		},
		Output: Output{
			Dir: defaultOutputDir,
		},
		Tools: Tools{
			Python:           defaultPython,
			Nmap:             ToolSettings{Enabled: true, Path: "nmap"},
			Harvester:        ToolSettings{Enabled: true, Path: "theHarvester"},
			HarvesterSources: "duckduckgo,crtsh,otx,hunter",
			Sublist3r:        ToolSettings{Enabled: true, Path: "sublist3r"},
			SQLMap:           ToolSettings{Enabled: true, Path: "sqlmap"},
		},
		Enum: Enum{
			Enabled: true,
			Threads: defaultThreads,
		},
		AI: AI{
			Model:    defaultModel,
			TimeoutS: 60,
		},
		Server: Server{
			Addr: defaultAddr,
		},
		LogLevel: "info",
	}
}

// RequireAPIKey falla si no hay clave de Gemini; scan y serve no arrancan sin ella.
func (c Config) RequireAPIKey() error {
	if strings.TrimSpace(c.AI.APIKey) == "" {
		return domain.ErrMissingAPIKey
	}
	return nil
}

// Validate verifica rangos y valores obligatorios.
func (c Config) Validate() error {
	if c.Enum.Threads < 1 || c.Enum.Threads > 1000 {
		return fmt.Errorf("%w: enum threads must be between 1 and 1000, got %d", domain.ErrInvalidConfig, c.Enum.Threads)
	}
	if _, err := domain.ExpandSelection(c.Core.Tools); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// Selection resuelve la lista de herramientas configurada.
func (c Config) Selection() ([]domain.ToolID, error) {
	return domain.ExpandSelection(c.Core.Tools)
}

// Timeout devuelve el timeout global como time.Duration (0 = sin timeout).
func (c Config) Timeout() time.Duration {
	return seconds(c.Core.TimeoutS)
}

// AITimeout devuelve el timeout por petición al analizador.
func (c Config) AITimeout() time.Duration {
	return seconds(c.AI.TimeoutS)
}

// ToolConfigs traduce la configuración al formato que consumen las factories del registry.
func (c Config) ToolConfigs() map[domain.ToolID]ports.ToolConfig {
	cli := func(s ToolSettings) ports.ToolConfig {
		tc := ports.DefaultToolConfig()
		tc.Enabled = s.Enabled
		tc.ExecPath = s.Path
		tc.Python = c.Tools.Python
		tc.Timeout = seconds(s.TimeoutS)
		return tc
	}

	harvester := cli(c.Tools.Harvester)
	harvester.Custom["sources"] = c.Tools.HarvesterSources

	enum := ports.DefaultToolConfig()
	enum.Enabled = c.Enum.Enabled
	enum.Timeout = seconds(c.Enum.TimeoutS)
	enum.Custom["wordlist"] = c.Enum.Wordlist
	enum.Custom["threads"] = c.Enum.Threads
	enum.Custom["http_fallback"] = !c.Enum.NoHTTPFallback
	enum.Custom["https_first"] = c.Enum.HTTPSFirst
	enum.Custom["resolvers"] = append([]string(nil), c.Enum.Resolvers...)

	return map[domain.ToolID]ports.ToolConfig{
		domain.ToolNmap:          cli(c.Tools.Nmap),
		domain.ToolHarvester:     harvester,
		domain.ToolSublist3r:     cli(c.Tools.Sublist3r),
		domain.ToolSQLInjection:  cli(c.Tools.SQLMap),
		domain.ToolSubdomainEnum: enum,
	}
}

// ToJSON serializa la configuración a JSON (útil para debugging); la API key se omite.
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func normalize(c *Config) {
	c.Core.Target = strings.TrimSpace(c.Core.Target)
	c.Core.Tools = splitList(c.Core.Tools)
	if len(c.Core.Tools) == 0 {
		c.Core.Tools = []string{domain.SelectAll}
	}
	if c.Core.TimeoutS < 0 {
		c.Core.TimeoutS = 0
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	if strings.TrimSpace(c.Tools.Python) == "" {
		c.Tools.Python = defaultPython
	}
	for _, s := range []*ToolSettings{&c.Tools.Nmap, &c.Tools.Harvester, &c.Tools.Sublist3r, &c.Tools.SQLMap} {
		s.Path = strings.TrimSpace(s.Path)
		if s.TimeoutS < 0 {
			s.TimeoutS = 0
		}
	}
	if c.Enum.Threads <= 0 {
		c.Enum.Threads = defaultThreads
	}
	c.Enum.Resolvers = splitList(c.Enum.Resolvers)
	if c.Enum.TimeoutS < 0 {
		c.Enum.TimeoutS = 0
	}
	c.AI.APIKey = strings.TrimSpace(c.AI.APIKey)
	if strings.TrimSpace(c.AI.Model) == "" {
		c.AI.Model = defaultModel
	}
	if c.AI.TimeoutS <= 0 {
		c.AI.TimeoutS = 60
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = defaultAddr
	}
}

// Helpers

func seconds(s int) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s) * time.Second
}

// splitList aplana entradas con comas y elimina vacíos.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
