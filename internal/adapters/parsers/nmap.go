// internal/adapters/parsers/nmap.go
package parsers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Ullaakut/nmap/v3"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
)

// ParseNmapFiles combina uno o más informes XML de nmap (-oX). Un archivo
// ilegible se salta y se devuelve en errs; la sección solo falla si ningún
// archivo se pudo leer.
func ParseNmapFiles(paths []string) (*domain.NmapSection, []error) {
	sec := &domain.NmapSection{Hosts: []domain.NmapHost{}}
	var errs []error
	var summaries []string

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "read %s", filepath.Base(path)))
			continue
		}
		var run nmap.Run
		if err := nmap.Parse(data, &run); err != nil {
			errs = append(errs, errors.Wrapf(errors.Join(errors.ErrMalformed, err), "parse %s", filepath.Base(path)))
			continue
		}

		sec.Files = append(sec.Files, filepath.Base(path))
		for _, h := range run.Hosts {
			sec.Hosts = append(sec.Hosts, nmapHost(h))
		}
		if s := strings.TrimSpace(run.Stats.Finished.Summary); s != "" {
			summaries = append(summaries, s)
		}
	}

	if len(sec.Files) == 0 {
		if len(errs) == 0 {
			errs = append(errs, errors.Wrap(errors.ErrNotFound, "no nmap reports"))
		}
		return nil, errs
	}
	sec.Summary = orNA(strings.Join(summaries, "; "))
	return sec, errs
}

func nmapHost(h nmap.Host) domain.NmapHost {
	out := domain.NmapHost{
		Address:     domain.NotAvailable,
		AddressType: domain.NotAvailable,
		Hostnames:   []string{},
		Status:      orNA(h.Status.State),
		OS:          domain.NotAvailable,
		Ports:       make([]domain.NmapPort, 0, len(h.Ports)),
	}
	// prefer the IP over the MAC address
	for _, a := range h.Addresses {
		if a.AddrType == "mac" && out.Address != domain.NotAvailable {
			continue
		}
		out.Address = orNA(a.Addr)
		out.AddressType = orNA(a.AddrType)
		if a.AddrType != "mac" {
			break
		}
	}
	for _, hn := range h.Hostnames {
		if hn.Name != "" {
			out.Hostnames = append(out.Hostnames, hn.Name)
		}
	}
	if len(h.OS.Matches) > 0 {
		out.OS = orNA(h.OS.Matches[0].Name)
	}
	for _, p := range h.Ports {
		out.Ports = append(out.Ports, domain.NmapPort{
			Port:     p.ID,
			Protocol: orNA(p.Protocol),
			State:    orNA(p.State.State),
			Service:  orNA(p.Service.Name),
			Product:  orNA(p.Service.Product),
			Version:  orNA(p.Service.Version),
		})
	}
	return out
}
