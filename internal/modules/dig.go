// internal/modules/dig.go
package modules

import (
	"time"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/logx"
)

var digDescriptor = domain.ModuleDescriptor{
	ID:          IDDig,
	Name:        "dig",
	Description: "A, AAAA, MX, NS, TXT and SOA records",
	Order:       2,
	Binary:      "dig",
	Produces:    []string{domain.ArtifactDig},
	Timeout:     30 * time.Second,
}

// digTypes son los tipos consultados para un host.
var digTypes = []string{"A", "AAAA", "MX", "NS", "TXT", "SOA"}

func init() {
	register(newDig, digDescriptor)
}

type digModule struct{ base }

func newDig(cfg ports.ModuleConfig, logger logx.Logger) (ports.Module, error) {
	return &digModule{base: newBase(digDescriptor, cfg, logger)}, nil
}

// Build pide todos los tipos en una sola invocación. Una IP se resuelve a la
// inversa.
func (m *digModule) Build(inv ports.Invocation) (ports.Command, error) {
	args := []string{"+noall", "+answer"}
	switch inv.Target.Kind {
	case domain.TargetKindHost:
		for _, t := range digTypes {
			args = append(args, inv.Target.Value, t)
		}
	case domain.TargetKindIP:
		args = append(args, "-x", inv.Target.Value)
	default:
		return ports.Command{}, m.requireHost(inv.Target)
	}

	cmd := m.command(args...)
	cmd.StdoutPath = inv.Artifact(domain.ArtifactDig)
	return cmd, nil
}
