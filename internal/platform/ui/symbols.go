// internal/platform/ui/symbols.go
package ui

import "github.com/pterm/pterm"

// Status representa el estado visual de un módulo
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusPaused
	StatusSuccess
	StatusWarning
	StatusError
	StatusSkipped
	StatusAborted
)

// String convierte el status a string
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo Unicode para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusPending:
		return "·"
	case StatusRunning:
		return "▶"
	case StatusPaused:
		return "⏸"
	case StatusSuccess:
		return "✓"
	case StatusWarning:
		return "⚠"
	case StatusError:
		return "✗"
	case StatusSkipped:
		return "⊘"
	case StatusAborted:
		return "■"
	default:
		return "?"
	}
}

// Color retorna el color pterm para cada estado
func (s Status) Color() pterm.Color {
	switch s {
	case StatusPending, StatusSkipped:
		return pterm.FgGray
	case StatusRunning:
		return pterm.FgCyan
	case StatusPaused, StatusWarning:
		return pterm.FgYellow
	case StatusSuccess:
		return pterm.FgGreen
	case StatusError, StatusAborted:
		return pterm.FgRed
	default:
		return pterm.FgDefault
	}
}

// Style retorna un pterm.Style configurado para el estado
func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

// Icons usados en paneles y resúmenes
var (
	IconTarget  = "🎯"
	IconModule  = "⚙"
	IconFolder  = "📁"
	IconTime    = "⏱"
	IconControl = "⌨"
	IconReport  = "📄"
)

// Separadores
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)
