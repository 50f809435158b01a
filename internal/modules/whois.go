// internal/modules/whois.go
package modules

import (
	"context"
	"time"

	"github.com/likexian/whois"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
	"vajra/internal/store"
)

var whoisDescriptor = domain.ModuleDescriptor{
	ID:          IDWhois,
	Name:        "whois",
	Description: "Registration data of the registrable domain",
	Order:       1,
	Binary:      "whois",
	Produces:    []string{domain.ArtifactWhois},
	Timeout:     60 * time.Second,
}

func init() {
	register(newWhois, whoisDescriptor)
}

// whoisQuery es la consulta nativa; se sustituye en tests.
type whoisQuery func(query string, timeout time.Duration) (string, error)

func queryWhois(query string, timeout time.Duration) (string, error) {
	return whois.NewClient().SetTimeout(timeout).Whois(query)
}

type whoisModule struct {
	base
	query whoisQuery
}

func newWhois(cfg ports.ModuleConfig, logger logx.Logger) (ports.Module, error) {
	return &whoisModule{base: newBase(whoisDescriptor, cfg, logger), query: queryWhois}, nil
}

// Build consulta el eTLD+1 del target. Sin binario whois en PATH cae al
// cliente nativo, que escribe el mismo artifact.
func (m *whoisModule) Build(inv ports.Invocation) (ports.Command, error) {
	query := inv.Target.RegistrableDomain()
	if !inv.Target.IsHost() {
		query = hostPart(inv.Target)
	}
	out := inv.Artifact(domain.ArtifactWhois)

	if _, err := lookPath(m.desc.Binary); err == nil {
		cmd := m.command(query)
		cmd.StdoutPath = out
		return cmd, nil
	}

	m.logger.Info("whois binary not found, using native client", "binary", m.desc.Binary, "query", query)
	timeout := m.desc.Timeout
	return ports.Command{
		Module: m.desc.Name,
		Native: func(ctx context.Context, checkpoint ports.Checkpoint) error {
			if err := checkpoint(); err != nil {
				return err
			}
			raw, err := m.query(query, timeout)
			if err != nil {
				return errors.Wrapf(err, "whois %s", query)
			}
			if err := checkpoint(); err != nil {
				return err
			}
			if ctx.Err() != nil {
				return errors.ErrCanceled
			}
			return store.WriteFileAtomic(out, []byte(raw))
		},
	}, nil
}
