// internal/platform/config/help.go
package config

import (
	"fmt"
	"runtime"
)

// Examples texto de ejemplos para el comando raíz.
const Examples = `  Escaneo completo (requiere GEMINI_API_KEY):
    reconforge scan example.com

  Solo nmap y el enumerador, sin PDF:
    reconforge scan example.com --tools nmap,subdomain_enum --no-pdf

  Enumerador independiente con wordlist propia:
    reconforge enum example.com -w words.txt -t 20 --https-first

  API HTTP:
    reconforge serve --addr :8080

  Comprobar herramientas instaladas:
    reconforge doctor`

// EnvHelp documenta las variables de entorno soportadas.
const EnvHelp = `ENVIRONMENT VARIABLES:
  GEMINI_API_KEY                    Clave de Gemini (obligatoria para scan y serve)
  RECONFORGE_CONFIG=/path.yaml      Fichero de configuración
  RECONFORGE_TARGET                 Objetivo
  RECONFORGE_TOOLS=nmap,harvester   Herramientas
  RECONFORGE_TIMEOUT=600            Timeout global en segundos
  RECONFORGE_OUTPUT_DIR=/path       Directorio de salida
  RECONFORGE_LOG_LEVEL=debug        Nivel de log
  RECONFORGE_<TOOL>_PATH            Ruta (NMAP, HARVESTER, SUBLIST3R, SQLMAP)
  RECONFORGE_<TOOL>_TIMEOUT         Timeout en segundos de la herramienta
  RECONFORGE_ENUM_THREADS=20        Sondeos simultáneos del enumerador
  RECONFORGE_ENUM_RESOLVERS=8.8.8.8 Servidores DNS

  Los flags tienen prioridad sobre las variables de entorno y éstas sobre el YAML.`

// VersionString formatea la información de build.
func VersionString(version, commit, date string) string {
	return fmt.Sprintf("reconforge %s\n  Commit:  %s\n  Built:   %s\n  Go:      %s\n",
		version, commit, date, runtime.Version())
}
