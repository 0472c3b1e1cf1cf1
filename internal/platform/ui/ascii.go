// internal/platform/ui/ascii.go
package ui

// BannerCompact banner para terminales anchas
const BannerCompact = `
╔══════════════════════════════════════════════════════════╗
║   ___ ___ ___ ___  _  _ ___ ___  ___  ___ ___            ║
║  | _ \ __/ __/ _ \| \| | __/ _ \| _ \/ __| __|           ║
║  |   / _| (_| (_) | .  | _| (_) |   / (_ | _|            ║
║  |_|_\___\___\___/|_|\_|_| \___/|_|_\\___|___|           ║
║                                                          ║
║        Recon tools, one run, one report                  ║
╚══════════════════════════════════════════════════════════╝
`

// BannerMinimal banner para terminales estrechas
const BannerMinimal = `
╔══════════════════════════════╗
║  RECONFORGE                  ║
║  Recon orchestration         ║
╚══════════════════════════════╝
`

// GetBanner retorna el banner apropiado según el ancho del terminal
func GetBanner(terminalWidth int) string {
	if terminalWidth < 80 {
		return BannerMinimal
	}
	return BannerCompact
}
