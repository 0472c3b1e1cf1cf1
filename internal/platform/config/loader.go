// internal/platform/config/loader.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"reconforge/internal/core/domain"
)

// EnvPrefix prefijo de las variables de entorno propias.
const EnvPrefix = "RECONFORGE_"

// Loader registra flags en un FlagSet (el de un comando cobra) y construye
// la configuración en orden: defaults -> YAML -> ENV -> flags -> normalize.
// Solo los flags que el usuario cambió sobrescriben capas anteriores.
type Loader struct {
	fs      *pflag.FlagSet
	apply   []func(*Config)
	file    string
	verbose bool
}

// NewLoader registra los flags comunes (--config, --out, --verbose).
func NewLoader(fs *pflag.FlagSet) *Loader {
	l := &Loader{fs: fs}
	def := DefaultConfig()

	fs.StringVarP(&l.file, "config", "c", "", "Ruta a un fichero de configuración YAML")
	fs.BoolVarP(&l.verbose, "verbose", "v", false, "Log en nivel debug")
	l.stringVar("out", "o", def.Output.Dir, "Directorio de salida", func(c *Config) *string { return &c.Output.Dir })
	return l
}

// BindTarget registra --target, --tools y --timeout.
func (l *Loader) BindTarget() *Loader {
	def := DefaultConfig()
	l.stringVar("target", "t", def.Core.Target, "Dominio o IP objetivo", func(c *Config) *string { return &c.Core.Target })
	l.sliceVar("tools", "", def.Core.Tools, "Herramientas a ejecutar (all, nmap, harvester, sublist3r, sql_injection, subdomain_enum)", func(c *Config) *[]string { return &c.Core.Tools })
	l.intVar("timeout", "T", def.Core.TimeoutS, "Timeout global en segundos (0 = sin timeout)", func(c *Config) *int { return &c.Core.TimeoutS })
	return l
}

// BindOutput registra las opciones de reporte.
func (l *Loader) BindOutput() *Loader {
	l.boolVar("quiet", "q", "Sin tabla ni progreso en terminal", func(c *Config) *bool { return &c.Output.Quiet })
	l.boolVar("no-pdf", "", "No generar el reporte PDF", func(c *Config) *bool { return &c.Output.NoPDF })
	l.boolVar("no-json", "", "No generar el reporte JSON", func(c *Config) *bool { return &c.Output.NoJSON })
	return l
}

// BindTools registra las rutas de las herramientas externas.
func (l *Loader) BindTools() *Loader {
	def := DefaultConfig()
	l.stringVar("python", "", def.Tools.Python, "Intérprete para herramientas .py", func(c *Config) *string { return &c.Tools.Python })
	l.stringVar("nmap-path", "", def.Tools.Nmap.Path, "Ejecutable de nmap", func(c *Config) *string { return &c.Tools.Nmap.Path })
	l.stringVar("harvester-path", "", def.Tools.Harvester.Path, "Ejecutable o script de theHarvester", func(c *Config) *string { return &c.Tools.Harvester.Path })
	l.stringVar("sublist3r-path", "", def.Tools.Sublist3r.Path, "Ejecutable o script de Sublist3r", func(c *Config) *string { return &c.Tools.Sublist3r.Path })
	l.stringVar("sqlmap-path", "", def.Tools.SQLMap.Path, "Ejecutable o script de sqlmap", func(c *Config) *string { return &c.Tools.SQLMap.Path })
	return l
}

// BindEnum registra las opciones del enumerador. Con shorthand, -t es --threads
// (solo en el comando enum, donde el objetivo es posicional).
func (l *Loader) BindEnum(shorthand bool) *Loader {
	def := DefaultConfig()
	w, t := "", ""
	if shorthand {
		w, t = "w", "t"
	}
	l.stringVar("wordlist", w, def.Enum.Wordlist, "Fichero con nombres de subdominio (uno por línea, # comenta)", func(c *Config) *string { return &c.Enum.Wordlist })
	l.intVar("threads", t, def.Enum.Threads, "Sondeos simultáneos", func(c *Config) *int { return &c.Enum.Threads })
	l.boolVar("no-http-fallback", "", "No sondear HTTP cuando falla el DNS", func(c *Config) *bool { return &c.Enum.NoHTTPFallback })
	l.boolVar("https-first", "", "Probar https antes que http", func(c *Config) *bool { return &c.Enum.HTTPSFirst })
	l.sliceVar("resolvers", "", nil, "Servidores DNS (ip[:puerto]); por defecto /etc/resolv.conf", func(c *Config) *[]string { return &c.Enum.Resolvers })
	return l
}

// BindAI registra las opciones del analizador.
func (l *Loader) BindAI() *Loader {
	def := DefaultConfig()
	l.stringVar("model", "", def.AI.Model, "Modelo de Gemini", func(c *Config) *string { return &c.AI.Model })
	return l
}

// BindServer registra la dirección de escucha.
func (l *Loader) BindServer() *Loader {
	def := DefaultConfig()
	l.stringVar("addr", "", def.Server.Addr, "Dirección de escucha de la API", func(c *Config) *string { return &c.Server.Addr })
	return l
}

// Load construye la configuración. El FlagSet ya debe estar parseado.
func (l *Loader) Load() (Config, error) {
	cfg := DefaultConfig()

	path := l.file
	if path == "" {
		path = getenv(EnvPrefix+"CONFIG", "")
	}
	if path != "" {
		if err := loadFromFile(&cfg, path); err != nil {
			return Config{}, err
		}
		cfg.ConfigFile = path
	}

	loadFromEnv(&cfg)

	for _, apply := range l.apply {
		apply(&cfg)
	}
	if l.verbose {
		cfg.LogLevel = "debug"
	}

	normalize(&cfg)
	return cfg, nil
}

// loadFromFile decodifica el YAML sobre los defaults; claves desconocidas son error.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv(EnvPrefix+"TARGET", ""); v != "" {
		cfg.Core.Target = v
	}
	if v := getenv(EnvPrefix+"TOOLS", ""); v != "" {
		cfg.Core.Tools = []string{v}
	}
	if v := getenv(EnvPrefix+"TIMEOUT", ""); v != "" {
		cfg.Core.TimeoutS = parseInt(v, cfg.Core.TimeoutS)
	}
	if v := getenv(EnvPrefix+"OUTPUT_DIR", ""); v != "" {
		cfg.Output.Dir = v
	}
	if v := getenv(EnvPrefix+"QUIET", ""); v != "" {
		cfg.Output.Quiet = parseBool(v)
	}
	if v := getenv(EnvPrefix+"NO_PDF", ""); v != "" {
		cfg.Output.NoPDF = parseBool(v)
	}
	if v := getenv(EnvPrefix+"LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}

	// Herramientas externas
	// Formato: RECONFORGE_NMAP_PATH=/usr/bin/nmap
	//          RECONFORGE_NMAP_TIMEOUT=3600
	//          RECONFORGE_NMAP_ENABLED=false
	if v := getenv(EnvPrefix+"PYTHON", ""); v != "" {
		cfg.Tools.Python = v
	}
	tools := map[string]*ToolSettings{
		"NMAP":      &cfg.Tools.Nmap,
		"HARVESTER": &cfg.Tools.Harvester,
		"SUBLIST3R": &cfg.Tools.Sublist3r,
		"SQLMAP":    &cfg.Tools.SQLMap,
	}
	for name, s := range tools {
		prefix := EnvPrefix + name + "_"
		if v := getenv(prefix+"PATH", ""); v != "" {
			s.Path = v
		}
		if v := getenv(prefix+"TIMEOUT", ""); v != "" {
			s.TimeoutS = parseInt(v, s.TimeoutS)
		}
		if v := getenv(prefix+"ENABLED", ""); v != "" {
			s.Enabled = parseBool(v)
		}
	}
	if v := getenv(EnvPrefix+"HARVESTER_SOURCES", ""); v != "" {
		cfg.Tools.HarvesterSources = v
	}

	// Enumerador
	if v := getenv(EnvPrefix+"ENUM_WORDLIST", ""); v != "" {
		cfg.Enum.Wordlist = v
	}
	if v := getenv(EnvPrefix+"ENUM_THREADS", ""); v != "" {
		cfg.Enum.Threads = parseInt(v, cfg.Enum.Threads)
	}
	if v := getenv(EnvPrefix+"ENUM_NO_HTTP_FALLBACK", ""); v != "" {
		cfg.Enum.NoHTTPFallback = parseBool(v)
	}
	if v := getenv(EnvPrefix+"ENUM_HTTPS_FIRST", ""); v != "" {
		cfg.Enum.HTTPSFirst = parseBool(v)
	}
	if v := getenv(EnvPrefix+"ENUM_RESOLVERS", ""); v != "" {
		cfg.Enum.Resolvers = []string{v}
	}

	// IA y servidor
	if v := getenv("GEMINI_API_KEY", ""); v != "" {
		cfg.AI.APIKey = v
	}
	if v := getenv(EnvPrefix+"AI_MODEL", ""); v != "" {
		cfg.AI.Model = v
	}
	if v := getenv(EnvPrefix+"AI_BASE_URL", ""); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := getenv(EnvPrefix+"SERVER_ADDR", ""); v != "" {
		cfg.Server.Addr = v
	}
}

func (l *Loader) stringVar(name, short, def, usage string, field func(*Config) *string) {
	p := new(string)
	l.fs.StringVarP(p, name, short, def, usage)
	l.apply = append(l.apply, func(c *Config) {
		if l.fs.Changed(name) {
			*field(c) = *p
		}
	})
}

func (l *Loader) intVar(name, short string, def int, usage string, field func(*Config) *int) {
	p := new(int)
	l.fs.IntVarP(p, name, short, def, usage)
	l.apply = append(l.apply, func(c *Config) {
		if l.fs.Changed(name) {
			*field(c) = *p
		}
	})
}

func (l *Loader) boolVar(name, short, usage string, field func(*Config) *bool) {
	p := new(bool)
	l.fs.BoolVarP(p, name, short, false, usage)
	l.apply = append(l.apply, func(c *Config) {
		if l.fs.Changed(name) {
			*field(c) = *p
		}
	})
}

func (l *Loader) sliceVar(name, short string, def []string, usage string, field func(*Config) *[]string) {
	p := new([]string)
	l.fs.StringSliceVarP(p, name, short, def, usage)
	l.apply = append(l.apply, func(c *Config) {
		if l.fs.Changed(name) {
			*field(c) = append([]string(nil), (*p)...)
		}
	})
}

// String resume la configuración efectiva para logs.
func (c Config) String() string {
	return fmt.Sprintf("Config{target=%s, tools=%s, out=%s, threads=%d, model=%s}",
		c.Core.Target, strings.Join(c.Core.Tools, ","), c.Output.Dir, c.Enum.Threads, c.AI.Model)
}
