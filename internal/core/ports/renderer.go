// internal/core/ports/renderer.go
package ports

import "vajra/internal/core/domain"

// ReportRenderer convierte el documento unificado en un artifact legible.
type ReportRenderer interface {
	// Name retorna el nombre del renderer (ej: "html")
	Name() string

	// Render escribe el informe en path
	Render(doc *domain.ResultDocument, path string) error
}
