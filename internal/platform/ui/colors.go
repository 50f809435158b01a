// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta "rayo": azules eléctricos y dorado sobre fondo oscuro.
var (
	// ThunderBlue - elementos principales, cabeceras
	ThunderBlue = pterm.NewRGB(64, 156, 255)

	// BoltGold - advertencias, módulos pausados
	BoltGold = pterm.NewRGB(255, 196, 0)

	// StormRed - errores y abortos
	StormRed = pterm.NewRGB(220, 50, 47)

	// CloudGray - texto secundario, módulos pendientes
	CloudGray = pterm.NewRGB(110, 110, 110)

	// SparkCyan - éxito y acentos
	SparkCyan = pterm.NewRGB(0, 206, 209)
)

// Estilos preconfigurados
var (
	StylePrimary   = ThunderBlue.ToRGBStyle()
	StyleSuccess   = SparkCyan.ToRGBStyle()
	StyleWarning   = BoltGold.ToRGBStyle()
	StyleError     = StormRed.ToRGBStyle()
	StyleSecondary = CloudGray.ToRGBStyle()
)
