// internal/adapters/output/json_test.go
package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vajra/internal/core/domain"
)

func TestJSONRenderer_Render(t *testing.T) {
	path := filepath.Join(t.TempDir(), "JSON", "final.json")
	r := NewJSONRenderer()

	if r.Name() != "json" {
		t.Errorf("expected name json, got %s", r.Name())
	}
	if err := r.Render(sampleDocument(), path); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("final.json not written: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"scan_info", "subdomains", "nmap"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected key %q in final.json", key)
		}
	}
	for _, key := range []string{"whois", "dns", "services"} {
		if _, ok := decoded[key]; ok {
			t.Errorf("absent section %q should be omitted", key)
		}
	}

	var doc domain.ResultDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.ScanInfo.Target != "example.com" || len(doc.ScanInfo.Modules) != 2 {
		t.Errorf("scan info not preserved: %+v", doc.ScanInfo)
	}
	if doc.ScanInfo.Modules[1].Reason != domain.ReasonMissingInput {
		t.Errorf("expected missing_input reason, got %q", doc.ScanInfo.Modules[1].Reason)
	}
}

func TestJSONRenderer_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "final.json")
	if err := NewJSONRenderer().Render(sampleDocument(), path); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "final.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only final.json, got %v", names)
	}
}

func TestJSONRenderer_NilDocument(t *testing.T) {
	if err := NewJSONRenderer().Render(nil, filepath.Join(t.TempDir(), "x.json")); err == nil {
		t.Error("expected error for nil document")
	}
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputJSON(&buf, sampleDocument(), false); err != nil {
		t.Fatalf("OutputJSON() failed: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Errorf("compact output should be a single line, got %q", out)
	}
	if !strings.Contains(out, `"origin":"merged"`) {
		t.Errorf("output should contain subdomain origin: %s", out)
	}
}
