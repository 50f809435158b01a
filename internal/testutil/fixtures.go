// internal/testutil/fixtures.go
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FixtureDomains contiene dominios de prueba válidos.
var FixtureDomains = []string{
	"example.com",
	"test.example.com",
	"sub.example.co.uk",
}

// FixtureInvalidTargets contiene entradas que el resolver debe rechazar.
var FixtureInvalidTargets = []string{
	"",
	"not a domain",
	"-invalid.com",
	"example..com",
	"10.0.0.0/33",
	"https://example.com",
}

// WriteLines escribe un artifact de texto, una entrada por línea.
func WriteLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	data := strings.Join(lines, "\n")
	if len(lines) > 0 {
		data += "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadLines lee un archivo y devuelve sus líneas no vacías.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var out []string
	for _, l := range strings.Split(string(data), "\n") {
		if s := strings.TrimSpace(l); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WriteScript crea un ejecutable /bin/sh que simula una herramienta externa.
// Los tests que lo usan se saltan en plataformas sin shell POSIX.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	RequireUnix(t)
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
	return path
}

// RequireUnix salta el test fuera de sistemas con señales POSIX.
func RequireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("requires a POSIX shell and job-control signals")
	}
}
