// internal/core/ports/module.go
package ports

import (
	"path/filepath"
	"time"

	"vajra/internal/core/domain"
	"vajra/internal/platform/logx"
)

// Module es el port de cada herramienta del pipeline. Un módulo solo sabe
// construir su comando: la ejecución, el control y los artifacts compartidos
// son responsabilidad del orquestador.
type Module interface {
	// Descriptor devuelve la configuración estática del módulo
	Descriptor() domain.ModuleDescriptor

	// Build construye el comando para una invocación concreta
	Build(inv Invocation) (Command, error)
}

// PostRunner lo implementan los módulos que derivan artifacts adicionales de
// su salida cuando terminan (por ejemplo alive.txt a partir de alive.json).
type PostRunner interface {
	AfterRun(inv Invocation) error
}

// ModuleConfig es la configuración por módulo que llega desde config.
type ModuleConfig struct {
	// Binary sustituye al ejecutable por defecto del descriptor
	Binary string

	// Timeout sustituye al timeout por defecto (0 = usar el del descriptor)
	Timeout time.Duration
}

// ModuleFactory crea un módulo a partir de su configuración.
type ModuleFactory func(cfg ModuleConfig, logger logx.Logger) (Module, error)

// Invocation es el contrato de entrada de un módulo: target o referencia a
// artifact, directorios de salida y parámetros resueltos.
type Invocation struct {
	Target         domain.Target
	Input          domain.InputRef
	Params         domain.Params
	LogsDir        string
	ScreenshotsDir string
}

// Artifact devuelve la ruta de un artifact de Logs.
func (i Invocation) Artifact(name string) string {
	return filepath.Join(i.LogsDir, name)
}
