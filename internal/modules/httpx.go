// internal/modules/httpx.go
package modules

import (
	"os"
	"time"

	"vajra/internal/adapters/parsers"
	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
	"vajra/internal/store"
)

var httpxDescriptor = domain.ModuleDescriptor{
	ID:          IDHttpx,
	Name:        "httpx",
	Description: "Probe discovered hosts for live web services",
	Order:       5,
	Binary:      "httpx",
	Requires: []domain.InputSpec{{
		Kind:           "subdomains",
		Sources:        []string{domain.ArtifactSubfinder, domain.ArtifactAmass},
		Merged:         domain.ArtifactMerged,
		TargetFallback: true,
	}},
	Produces: []string{domain.ArtifactAliveJSON, domain.ArtifactAlive},
	Timeout:  120 * time.Second,
	Critical: true,
}

func init() {
	register(newHttpx, httpxDescriptor)
}

type httpxModule struct{ base }

var _ ports.PostRunner = (*httpxModule)(nil)

func newHttpx(cfg ports.ModuleConfig, logger logx.Logger) (ports.Module, error) {
	return &httpxModule{base: newBase(httpxDescriptor, cfg, logger)}, nil
}

func (m *httpxModule) Build(inv ports.Invocation) (ports.Command, error) {
	in := input(inv)
	args := []string{"-u", in.Value}
	if in.List {
		args = []string{"-l", in.Value}
	}
	args = append(args, "-silent", "-json", "-o", inv.Artifact(domain.ArtifactAliveJSON))
	return m.command(args...), nil
}

// AfterRun deriva alive.txt (hostnames únicos) de alive.json para los
// módulos que consumen listas de hosts.
func (m *httpxModule) AfterRun(inv ports.Invocation) error {
	f, err := os.Open(inv.Artifact(domain.ArtifactAliveJSON))
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug("no httpx output, alive list not written")
			return nil
		}
		return errors.Wrap(err, "open httpx output")
	}
	defer f.Close()

	probes, skipped, err := parsers.ParseProbes(f)
	if err != nil {
		return err
	}
	hosts := parsers.AliveHosts(probes)
	if skipped > 0 {
		m.logger.Warn("httpx output has unreadable lines", "skipped", skipped)
	}
	if len(hosts) == 0 {
		return nil
	}
	m.logger.Debug("alive hosts extracted", "count", len(hosts))
	return store.WriteLinesAtomic(inv.Artifact(domain.ArtifactAlive), hosts)
}
