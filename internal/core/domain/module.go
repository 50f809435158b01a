// internal/core/domain/module.go
package domain

import (
	"fmt"
	"sort"
	"time"
)

// ModuleID es el código corto y estable con el que el operador selecciona un módulo.
type ModuleID string

// Params son los parámetros de invocación de un módulo.
type Params map[string]string

// Get devuelve el valor de key o def si no existe.
func (p Params) Get(key, def string) string {
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return def
}

// Clone devuelve una copia independiente.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// InputSpec declara un tipo de artifact que un módulo necesita antes de arrancar.
type InputSpec struct {
	// Kind describe el contenido ("subdomains", "live-hosts")
	Kind string

	// Sources son artifacts alternativos que aportan el mismo Kind
	Sources []string

	// Merged es el artifact derivado que se escribe cuando hay más de una fuente
	Merged string

	// TargetFallback permite usar el propio target cuando ningún módulo del
	// plan produce las fuentes
	TargetFallback bool
}

// ModuleDescriptor es configuración estática: no se muta en ejecución.
type ModuleDescriptor struct {
	ID          ModuleID
	Name        string
	Description string

	// Order es la posición canónica dentro del registry
	Order int

	// Binary es el ejecutable por defecto
	Binary string

	Requires []InputSpec
	Produces []string

	// Defaults se aplican siempre; Choices enumera las opciones que el
	// operador puede elegir en modo interactivo (la primera es el default)
	Defaults Params
	Choices  map[string][]string

	Timeout time.Duration

	// Critical pide confirmación antes de propagar un skip por falta de entrada
	Critical bool
}

// Validate verifica que el descriptor sea coherente.
func (d ModuleDescriptor) Validate() error {
	if d.ID == "" || d.Name == "" {
		return fmt.Errorf("%w: id and name are required", ErrInvalidModule)
	}
	for _, in := range d.Requires {
		if len(in.Sources) == 0 {
			return fmt.Errorf("%w: %s declares input %q without sources", ErrInvalidModule, d.Name, in.Kind)
		}
		if len(in.Sources) > 1 && in.Merged == "" {
			return fmt.Errorf("%w: %s merges %q without a derived artifact name", ErrInvalidModule, d.Name, in.Kind)
		}
	}
	for key, opts := range d.Choices {
		if len(opts) == 0 {
			return fmt.Errorf("%w: %s has no options for %q", ErrInvalidModule, d.Name, key)
		}
	}
	return nil
}

// Consumes indica si el módulo lee el artifact indicado.
func (d ModuleDescriptor) Consumes(artifact string) bool {
	for _, in := range d.Requires {
		for _, src := range in.Sources {
			if src == artifact {
				return true
			}
		}
	}
	return false
}

// ProducesArtifact indica si el módulo escribe el artifact indicado.
func (d ModuleDescriptor) ProducesArtifact(artifact string) bool {
	for _, p := range d.Produces {
		if p == artifact {
			return true
		}
	}
	return false
}

// ChoiceKeys devuelve las claves interactivas en orden estable.
func (d ModuleDescriptor) ChoiceKeys() []string {
	keys := make([]string, 0, len(d.Choices))
	for k := range d.Choices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
