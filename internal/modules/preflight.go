// internal/modules/preflight.go
package modules

import (
	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
)

// Missing es un módulo cuyo binario no está en PATH.
type Missing struct {
	ID     domain.ModuleID
	Name   string
	Binary string

	// Fallback indica que el módulo sigue funcionando sin el binario
	Fallback bool
}

// Preflight comprueba los binarios de los módulos dados. No falla: el
// supervisor marca launch_failed a los que falten cuando les toque.
func Preflight(mods []ports.Module) []Missing {
	var out []Missing
	for _, m := range mods {
		d := m.Descriptor()
		if d.Binary == "" {
			continue
		}
		if _, err := lookPath(d.Binary); err == nil {
			continue
		}
		out = append(out, Missing{ID: d.ID, Name: d.Name, Binary: d.Binary, Fallback: d.ID == IDWhois})
	}
	return out
}
