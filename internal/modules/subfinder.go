// internal/modules/subfinder.go
package modules

import (
	"time"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/logx"
)

var subfinderDescriptor = domain.ModuleDescriptor{
	ID:          IDSubfinder,
	Name:        "subfinder",
	Description: "Passive subdomain discovery",
	Order:       3,
	Binary:      "subfinder",
	Produces:    []string{domain.ArtifactSubfinder},
	Timeout:     10 * time.Minute,
}

func init() {
	register(newSubfinder, subfinderDescriptor)
}

type subfinderModule struct{ base }

func newSubfinder(cfg ports.ModuleConfig, logger logx.Logger) (ports.Module, error) {
	return &subfinderModule{base: newBase(subfinderDescriptor, cfg, logger)}, nil
}

func (m *subfinderModule) Build(inv ports.Invocation) (ports.Command, error) {
	if err := m.requireHost(inv.Target); err != nil {
		return ports.Command{}, err
	}
	return m.command("-d", inv.Target.Value, "-silent", "-o", inv.Artifact(domain.ArtifactSubfinder)), nil
}
