// internal/adapters/output/table_test.go
package output

import (
	"bytes"
	"strings"
	"testing"

	"vajra/internal/core/domain"
)

func TestOutputTable(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputTable(&buf, sampleDocument()); err != nil {
		t.Fatalf("OutputTable() failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"VAJRA Scan Results",
		"example.com (host)",
		"MODULE", "STATUS", "REASON",
		"subfinder", "succeeded",
		"httpx", "missing_input",
		"2 (merged)",
		"1 hosts, 1 ports [nmap_top1000.xml]",
		"Warnings (1)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q\n%s", want, output)
		}
	}

	// whois, dns y services no existen
	if got := strings.Count(output, domain.NotAvailable); got != 3 {
		t.Errorf("expected 3 N/A sections, got %d\n%s", got, output)
	}
}

func TestOutputTable_NoModules(t *testing.T) {
	doc := &domain.ResultDocument{ScanInfo: domain.ScanInfo{Target: "10.0.0.1", TargetKind: domain.TargetKindIP, Aborted: true}}

	var buf bytes.Buffer
	if err := OutputTable(&buf, doc); err != nil {
		t.Fatalf("OutputTable() failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "No modules ran.") {
		t.Error("output should report no modules")
	}
	if !strings.Contains(output, "Aborted:") {
		t.Error("output should flag aborted scans")
	}
}
