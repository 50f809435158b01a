// Package modules contiene un adaptador por herramienta externa. Cada uno se
// registra en init() y solo sabe construir su línea de comando: lanzar,
// supervisar y encadenar artifacts es trabajo del orquestador.
package modules

import (
	"fmt"
	"os/exec"
	"strings"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
	"vajra/internal/platform/registry"
)

// Ids de selección estables.
const (
	IDWhois      domain.ModuleID = "1"
	IDSubfinder  domain.ModuleID = "2"
	IDAmass      domain.ModuleID = "3"
	IDHttpx      domain.ModuleID = "4"
	IDNmap       domain.ModuleID = "5"
	IDScreenshot domain.ModuleID = "6"
	IDDig        domain.ModuleID = "7"
)

// ErrTargetKind indica un target que el módulo no sabe tratar (por ejemplo
// un CIDR para subfinder).
var ErrTargetKind = errors.New("target kind not supported by module")

// lookPath se sustituye en tests.
var lookPath = exec.LookPath

type base struct {
	desc   domain.ModuleDescriptor
	logger logx.Logger
}

func newBase(desc domain.ModuleDescriptor, cfg ports.ModuleConfig, logger logx.Logger) base {
	if cfg.Binary != "" {
		desc.Binary = cfg.Binary
	}
	desc.Timeout = registry.EffectiveTimeout(desc, cfg.Timeout)
	if logger == nil {
		logger = logx.Discard()
	}
	return base{desc: desc, logger: logger}
}

func (b base) Descriptor() domain.ModuleDescriptor { return b.desc }

func (b base) command(args ...string) ports.Command {
	return ports.Command{Module: b.desc.Name, Path: b.desc.Binary, Args: args}
}

func (b base) requireHost(t domain.Target) error {
	if t.IsHost() {
		return nil
	}
	return fmt.Errorf("%w: %s needs a host, got %s %s", ErrTargetKind, b.desc.Name, t.Kind, t.Value)
}

// input devuelve la referencia preparada por el bridge o, si no hay, el
// propio target.
func input(inv ports.Invocation) domain.InputRef {
	if inv.Input.IsZero() {
		return inv.Target.Ref()
	}
	return inv.Input
}

// hostPart quita el prefijo de red de un CIDR ("10.0.0.0/24" -> "10.0.0.0").
func hostPart(t domain.Target) string {
	if t.Kind == domain.TargetKindCIDR {
		addr, _, _ := strings.Cut(t.Value, "/")
		return addr
	}
	return t.Value
}

func register(factory ports.ModuleFactory, desc domain.ModuleDescriptor) {
	if err := registry.Global().Register(factory, desc); err != nil {
		logx.New().Warn("failed to register module", "module", desc.Name, "error", err.Error())
	}
}
