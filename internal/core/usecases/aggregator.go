// internal/core/usecases/aggregator.go
package usecases

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vajra/internal/adapters/parsers"
	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
	"vajra/internal/store"
)

// maxSectionWorkers acota los parsers concurrentes.
const maxSectionWorkers = 4

// AggregatorOptions configura el agregador.
type AggregatorOptions struct {
	// Writer persiste el documento en JSON/final.json
	Writer ports.ReportRenderer

	Version string
	Logger  logx.Logger
}

// Aggregator convierte los artifacts de Logs en el ResultDocument.
type Aggregator struct {
	writer  ports.ReportRenderer
	version string
	merge   *MergeService
	logger  logx.Logger
}

// NewAggregator crea un Aggregator.
func NewAggregator(opts AggregatorOptions) *Aggregator {
	if opts.Logger == nil {
		opts.Logger = logx.Discard()
	}
	return &Aggregator{
		writer:  opts.Writer,
		version: opts.Version,
		merge:   NewMergeService(opts.Logger),
		logger:  opts.Logger.With("component", "aggregator"),
	}
}

// Build parsea cada sección de forma independiente: un fallo deja la sección
// vacía y añade un aviso, nunca aborta el documento. Si hay Writer, el
// documento se escribe en layout.FinalJSON().
func (a *Aggregator) Build(ctx context.Context, layout store.Layout, target domain.Target, run RunResult) (*domain.ResultDocument, []string) {
	doc := &domain.ResultDocument{
		ScanInfo: domain.ScanInfo{
			ScanID:     uuid.NewString(),
			Target:     target.Value,
			TargetKind: target.Kind,
			Timestamp:  run.StartedAt,
			FinishedAt: run.FinishedAt,
			Aborted:    run.Aborted,
			Version:    a.version,
			Directory:  layout.Root,
			Modules:    append([]domain.ModuleOutcome{}, run.Outcomes...),
		},
	}
	if doc.ScanInfo.Timestamp.IsZero() {
		doc.ScanInfo.Timestamp = time.Now()
	}
	if doc.ScanInfo.FinishedAt.IsZero() {
		doc.ScanInfo.FinishedAt = time.Now()
	}

	var (
		mu       sync.Mutex
		warnings []string
	)
	warn := func(section string, err error) {
		mu.Lock()
		defer mu.Unlock()
		warnings = append(warnings, fmt.Sprintf("%s: %v", section, err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSectionWorkers)

	g.Go(func() error {
		if !layout.Ready(domain.ArtifactWhois) || gctx.Err() != nil {
			return nil
		}
		raw, err := os.ReadFile(layout.Artifact(domain.ArtifactWhois))
		if err == nil {
			doc.Whois, err = parsers.ParseWhois(string(raw))
		}
		if err != nil {
			warn("whois", err)
		}
		return nil
	})

	g.Go(func() error {
		if !layout.Ready(domain.ArtifactDig) || gctx.Err() != nil {
			return nil
		}
		sec, err := parseFile(layout.Artifact(domain.ArtifactDig), parsers.ParseDig)
		if err != nil {
			warn("dns", err)
			return nil
		}
		doc.DNS = sec
		return nil
	})

	g.Go(func() error {
		if gctx.Err() != nil {
			return nil
		}
		sec, err := a.subdomains(layout)
		if err != nil {
			warn("subdomains", err)
			return nil
		}
		doc.Subdomains = sec
		return nil
	})

	g.Go(func() error {
		if !layout.Ready(domain.ArtifactAliveJSON) || gctx.Err() != nil {
			return nil
		}
		sec, err := parseFile(layout.Artifact(domain.ArtifactAliveJSON), parsers.ParseServices)
		if err != nil {
			warn("services", err)
			return nil
		}
		if sec.SkippedLines > 0 {
			warn("services", fmt.Errorf("%d malformed lines skipped", sec.SkippedLines))
		}
		doc.Services = sec
		return nil
	})

	g.Go(func() error {
		files := layout.Glob(domain.ArtifactNmapGlob)
		if len(files) == 0 || gctx.Err() != nil {
			return nil
		}
		sec, errs := parsers.ParseNmapFiles(files)
		for _, err := range errs {
			warn("nmap", err)
		}
		doc.Nmap = sec
		return nil
	})

	_ = g.Wait()

	sort.Strings(warnings)
	doc.ScanInfo.Warnings = warnings

	if a.writer != nil {
		if err := a.writer.Render(doc, layout.FinalJSON()); err != nil {
			a.logger.Err(err, "phase", "write", "path", layout.FinalJSON())
			warnings = append(warnings, fmt.Sprintf("final.json: %v", err))
		}
	}

	a.logger.Info("result document built", "target", target.Value, "sections", doc.SectionCount(), "warnings", len(warnings))
	return doc, warnings
}

// subdomains usa alive.txt si existe, si no merged_subs.txt y en último
// término la unión de las herramientas de descubrimiento.
func (a *Aggregator) subdomains(layout store.Layout) (*domain.SubdomainSection, error) {
	discovery, err := a.merge.Union(map[string]string{
		"subfinder": layout.Artifact(domain.ArtifactSubfinder),
		"amass":     layout.Artifact(domain.ArtifactAmass),
	})
	if err != nil {
		return nil, err
	}

	sec := &domain.SubdomainSection{Discovery: discovery.Counts}
	if len(sec.Discovery) == 0 {
		sec.Discovery = nil
	}

	switch {
	case layout.Ready(domain.ArtifactAlive):
		lines, err := layout.ReadLines(domain.ArtifactAlive)
		if err != nil {
			return nil, err
		}
		sec.Entries, sec.Origin = parsers.UniqueSorted(lines), "alive"
	case layout.Ready(domain.ArtifactMerged):
		lines, err := layout.ReadLines(domain.ArtifactMerged)
		if err != nil {
			return nil, err
		}
		sec.Entries, sec.Origin = parsers.UniqueSorted(lines), "merged"
	case len(discovery.Lines) > 0:
		sec.Entries, sec.Origin = discovery.Lines, "discovery"
	default:
		return nil, nil
	}

	sec.Total = len(sec.Entries)
	return sec, nil
}

func parseFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return parse(f)
}
