// internal/core/domain/target.go
package domain

import (
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"

	"vajra/internal/platform/validator"
)

// Target es un sujeto de escaneo validado: host, IP o bloque CIDR.
// Es inmutable una vez construido con NewTarget.
type Target struct {
	// Raw es la entrada del operador tal cual llegó
	Raw string

	// Value es la forma canónica usada en comandos y rutas
	Value string

	Kind TargetKind
}

// NewTarget normaliza y valida una entrada.
func NewTarget(raw string) (Target, error) {
	t := Target{Raw: raw}
	value := strings.TrimSpace(raw)
	if value == "" {
		return t, ErrEmptyTarget
	}

	switch {
	case validator.IsCIDR(value):
		t.Kind = TargetKindCIDR
		t.Value = validator.NormalizeCIDR(value)
	case validator.IsIP(value):
		t.Kind = TargetKindIP
		t.Value = validator.NormalizeIP(value)
	default:
		t.Kind = TargetKindHost
		t.Value = validator.NormalizeDomain(value)
	}

	if err := t.Validate(); err != nil {
		return Target{Raw: raw}, err
	}
	return t, nil
}

// Validate verifica que el target sea válido.
func (t Target) Validate() error {
	if t.Value == "" {
		return ErrEmptyTarget
	}

	var ok bool
	switch t.Kind {
	case TargetKindHost:
		ok = validator.IsDomain(t.Value)
	case TargetKindIP:
		ok = validator.IsIP(t.Value)
	case TargetKindCIDR:
		ok = validator.IsCIDR(t.Value)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, t.Raw)
	}
	return nil
}

// IsHost indica si el target es un nombre DNS.
func (t Target) IsHost() bool { return t.Kind == TargetKindHost }

// DirName devuelve el valor apto para nombre de carpeta.
func (t Target) DirName() string {
	return validator.DirSafe(t.Value)
}

// RegistrableDomain devuelve el eTLD+1 de un host ("a.b.example.co.uk" ->
// "example.co.uk"). Para IPs, CIDRs o hosts sin sufijo público devuelve Value.
func (t Target) RegistrableDomain() string {
	if !t.IsHost() {
		return t.Value
	}
	root, err := publicsuffix.EffectiveTLDPlusOne(t.Value)
	if err != nil {
		return t.Value
	}
	return root
}

// Ref devuelve la referencia de entrada para el propio target.
func (t Target) Ref() InputRef {
	return InputRef{Value: t.Value}
}

func (t Target) String() string { return t.Value }

// InputRef es lo que recibe un módulo como entrada: un único target o un
// archivo con una entrada por línea. La forma textual de una lista lleva el
// prefijo "@".
type InputRef struct {
	Value string
	List  bool
}

// ListRef construye una referencia a un archivo de lista.
func ListRef(path string) InputRef {
	return InputRef{Value: path, List: true}
}

// ParseInputRef interpreta "@path" como lista y cualquier otra cosa como target.
func ParseInputRef(s string) InputRef {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "@") {
		return ListRef(strings.TrimPrefix(s, "@"))
	}
	return InputRef{Value: s}
}

func (r InputRef) String() string {
	if r.List {
		return "@" + r.Value
	}
	return r.Value
}

// IsZero indica si la referencia está vacía.
func (r InputRef) IsZero() bool { return r.Value == "" }
