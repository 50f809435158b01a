// internal/adapters/output/fixtures_test.go
package output

import (
	"time"

	"vajra/internal/core/domain"
)

func sampleDocument() *domain.ResultDocument {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.ResultDocument{
		ScanInfo: domain.ScanInfo{
			ScanID:     "6f1c2a52-0000-4000-8000-000000000001",
			Target:     "example.com",
			TargetKind: domain.TargetKindHost,
			Timestamp:  start,
			FinishedAt: start.Add(90 * time.Second),
			Directory:  "Results/example.com_20260301_100000",
			Modules: []domain.ModuleOutcome{
				{ID: "2", Name: "subfinder", Status: domain.StatusSucceeded, Launched: true, ExitCode: 0, Duration: 40 * time.Second},
				{ID: "4", Name: "httpx", Status: domain.StatusFailed, Reason: domain.ReasonMissingInput, ExitCode: -1},
			},
			Warnings: []string{"services: 1 malformed lines skipped"},
		},
		Subdomains: &domain.SubdomainSection{
			Total:   2,
			Entries: []string{"a.example.com", "<b>.example.com"},
			Origin:  "merged",
		},
		Nmap: &domain.NmapSection{
			Files:   []string{"nmap_top1000.xml"},
			Summary: "1 IP address (1 host up)",
			Hosts: []domain.NmapHost{{
				Address: "93.184.216.34", Status: "up", OS: domain.NotAvailable,
				Ports: []domain.NmapPort{{Port: 443, Protocol: "tcp", State: "open", Service: "https", Product: "nginx", Version: domain.NotAvailable}},
			}},
		},
	}
}
