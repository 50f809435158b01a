// internal/modules/nmap.go
package modules

import (
	"time"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
)

// Tipos de escaneo. El primero es el default y el que fuerza el modo
// desatendido.
const (
	ScanQuick = "quick"
	ScanFull  = "full"
	ScanFast  = "fast"
	ScanUDP   = "udp"

	// ParamScan es la clave del parámetro interactivo
	ParamScan = "scan"
)

type scanProfile struct {
	label string
	args  []string
}

var scanProfiles = map[string]scanProfile{
	ScanQuick: {label: "top1000", args: []string{"-T4", "--top-ports", "1000", "-sS", "-sV", "-O", "-sC"}},
	ScanFull:  {label: "full", args: []string{"-T4", "-p-", "-sS", "-sV", "-O", "-sC"}},
	ScanFast:  {label: "fast", args: []string{"-T4", "-A", "-sS", "-sV", "-O", "-sC"}},
	ScanUDP:   {label: "udp", args: []string{"-T4", "-sU", "--top-ports", "100", "-sV", "-O", "-sC"}},
}

var nmapDescriptor = domain.ModuleDescriptor{
	ID:          IDNmap,
	Name:        "nmap",
	Description: "Port and service scan of live hosts",
	Order:       6,
	Binary:      "nmap",
	Requires: []domain.InputSpec{{
		Kind:           "live-hosts",
		Sources:        []string{domain.ArtifactAlive},
		TargetFallback: true,
	}},
	Produces: []string{domain.ArtifactNmapGlob},
	Defaults: domain.Params{ParamScan: ScanQuick},
	Choices:  map[string][]string{ParamScan: {ScanQuick, ScanFull, ScanFast, ScanUDP}},
	Timeout:  2 * time.Hour,
}

func init() {
	register(newNmap, nmapDescriptor)
}

type nmapModule struct{ base }

func newNmap(cfg ports.ModuleConfig, logger logx.Logger) (ports.Module, error) {
	return &nmapModule{base: newBase(nmapDescriptor, cfg, logger)}, nil
}

func (m *nmapModule) Build(inv ports.Invocation) (ports.Command, error) {
	scan := inv.Params.Get(ParamScan, ScanQuick)
	profile, ok := scanProfiles[scan]
	if !ok {
		return ports.Command{}, errors.Wrapf(errors.ErrInvalidInput, "nmap scan type %q", scan)
	}

	args := append([]string{}, profile.args...)
	in := input(inv)
	if in.List {
		args = append(args, "-iL", in.Value)
	} else {
		args = append(args, in.Value)
	}
	args = append(args, "-oX", inv.Artifact(domain.NmapArtifact(profile.label)))
	return m.command(args...), nil
}
