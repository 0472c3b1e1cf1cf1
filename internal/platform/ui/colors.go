// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de colores de la terminal
var (
	ForgeOrange = pterm.NewRGB(255, 107, 53)
	AlertRed    = pterm.NewRGB(215, 38, 56)
	AmberGold   = pterm.NewRGB(255, 182, 39)
	SlateGray   = pterm.NewRGB(100, 100, 100)
	SteelCyan   = pterm.NewRGB(0, 206, 209)
)

// Estilos preconfigurados para diferentes contextos
var (
	StylePrimary   = ForgeOrange.ToRGBStyle()
	StyleSuccess   = SteelCyan.ToRGBStyle()
	StyleWarning   = AmberGold.ToRGBStyle()
	StyleError     = AlertRed.ToRGBStyle()
	StyleSecondary = SlateGray.ToRGBStyle()
)

// SeverityStyle estilo para un nivel de severidad (Critical/High/Medium/Low).
func SeverityStyle(severity string) pterm.RGBStyle {
	switch severity {
	case "Critical", "High":
		return StyleError
	case "Medium":
		return StyleWarning
	case "Low":
		return StyleSuccess
	default:
		return StyleSecondary
	}
}
