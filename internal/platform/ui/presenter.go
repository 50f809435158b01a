// internal/platform/ui/presenter.go
package ui

import (
	"time"
)

// UIMode define el modo de visualización
type UIMode string

const (
	UIModePretty UIMode = "pretty" // pterm con colores y paneles (default en TTY)
	UIModeRaw    UIMode = "raw"    // una línea logfmt/json por evento
	UIModeQuiet  UIMode = "quiet"  // sin UI visual
)

// ParseUIMode normaliza un modo; valores desconocidos caen en pretty.
func ParseUIMode(s string) UIMode {
	switch UIMode(s) {
	case UIModeRaw, UIModeQuiet:
		return UIMode(s)
	default:
		return UIModePretty
	}
}

// Presenter define la interfaz para presentar el avance del plan de
// reconocimiento al operador.
type Presenter interface {
	// Banner muestra la cabecera de la herramienta
	Banner()

	// Start abre la presentación de un target
	Start(info ScanInfo)

	// StartModule notifica el lanzamiento de un módulo
	StartModule(m ModuleInfo)

	// ModuleState notifica cambios de estado en vuelo (pausa, reanudación)
	ModuleState(name string, status Status, note string)

	// FinishModule notifica el resultado de un módulo
	FinishModule(r ModuleResult)

	// ControlMenu muestra el menú de control en tiempo de ejecución
	ControlMenu(info ControlInfo)

	// Menu muestra una lista numerada de opciones
	Menu(title string, entries []MenuEntry)

	// Prompt muestra una pregunta al operador
	Prompt(question string)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish cierra la presentación de un target con su resumen
	Finish(stats ScanStats)

	// Close limpia recursos del presenter
	Close() error
}

// ScanInfo contiene información inicial del escaneo de un target
type ScanInfo struct {
	Target     string
	Kind       string
	Directory  string
	Modules    []string
	Unattended bool
	Trigger    string
	Index      int // posición del target en el lote, desde 1
	Total      int
}

// ModuleInfo describe un módulo a punto de lanzarse
type ModuleInfo struct {
	Index   int
	Total   int
	Name    string
	Command string
}

// ModuleResult resume cómo terminó un módulo
type ModuleResult struct {
	Name     string
	Status   Status
	Reason   string
	ExitCode int
	Duration time.Duration
	Detail   string
}

// ControlInfo alimenta el menú de control
type ControlInfo struct {
	Module  string
	Phase   string
	Timeout time.Duration
}

// MenuEntry es una opción de un menú numerado
type MenuEntry struct {
	Key         string
	Label       string
	Description string
}

// ScanStats contiene estadísticas finales de un target
type ScanStats struct {
	Target    string
	Duration  time.Duration
	Succeeded int
	Failed    int
	Skipped   int
	Aborted   int
	NotRun    int
	Sections  int
	FinalJSON string
	Report    string
	Quit      bool
}

// New crea el presenter para mode.
func New(mode UIMode) Presenter {
	switch mode {
	case UIModeQuiet:
		return NewNoopPresenter()
	case UIModeRaw:
		return NewRawPresenter(LogFormatText)
	default:
		return NewPTermPresenter()
	}
}
