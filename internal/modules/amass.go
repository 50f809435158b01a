// internal/modules/amass.go
package modules

import (
	"time"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/logx"
)

var amassDescriptor = domain.ModuleDescriptor{
	ID:          IDAmass,
	Name:        "amass",
	Description: "Subdomain enumeration",
	Order:       4,
	Binary:      "amass",
	Produces:    []string{domain.ArtifactAmass},
	Timeout:     30 * time.Minute,
}

func init() {
	register(newAmass, amassDescriptor)
}

type amassModule struct{ base }

func newAmass(cfg ports.ModuleConfig, logger logx.Logger) (ports.Module, error) {
	return &amassModule{base: newBase(amassDescriptor, cfg, logger)}, nil
}

func (m *amassModule) Build(inv ports.Invocation) (ports.Command, error) {
	if err := m.requireHost(inv.Target); err != nil {
		return ports.Command{}, err
	}
	return m.command("enum", "-d", inv.Target.Value, "-o", inv.Artifact(domain.ArtifactAmass)), nil
}
