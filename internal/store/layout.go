// internal/store/layout.go
package store

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/validator"
)

// Nombres de los subdirectorios de un escaneo.
const (
	DirLogs        = "Logs"
	DirReports     = "Reports"
	DirScreenshots = "Screenshots"
	DirJSON        = "JSON"

	// FinalJSONName es el documento unificado que consume el renderer.
	FinalJSONName = "final.json"

	// TimestampLayout es el sufijo de la carpeta de cada escaneo.
	TimestampLayout = "20060102_150405"
)

// Layout es el árbol de un escaneo:
// <base>/[<group>/]<target>_<timestamp>/{Logs,Reports,Screenshots,JSON}.
// Cada módulo escribe en Logs con un nombre fijo; el agregador lee de ahí.
type Layout struct {
	Root        string
	Logs        string
	Reports     string
	Screenshots string
	JSON        string
}

// New crea el árbol de directorios para target. group no vacío anida el
// escaneo bajo <base>/<group>/ (entrada por archivo de lista).
func New(base, group string, target domain.Target, now time.Time) (Layout, error) {
	if base == "" {
		base = "Results"
	}
	parent := base
	if g := validator.DirSafe(group); g != "" {
		parent = filepath.Join(base, g)
	}

	name := fmt.Sprintf("%s_%s", target.DirName(), now.Format(TimestampLayout))
	l := Open(filepath.Join(parent, name))

	for _, dir := range []string{l.Logs, l.Reports, l.Screenshots, l.JSON} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Layout{}, errors.Wrapf(err, "create %s", dir)
		}
	}
	return l, nil
}

// Open describe un árbol existente sin crearlo.
func Open(root string) Layout {
	return Layout{
		Root:        root,
		Logs:        filepath.Join(root, DirLogs),
		Reports:     filepath.Join(root, DirReports),
		Screenshots: filepath.Join(root, DirScreenshots),
		JSON:        filepath.Join(root, DirJSON),
	}
}

// Artifact devuelve la ruta de un artifact dentro de Logs.
func (l Layout) Artifact(name string) string {
	return filepath.Join(l.Logs, name)
}

// FinalJSON devuelve la ruta del documento unificado.
func (l Layout) FinalJSON() string {
	return filepath.Join(l.JSON, FinalJSONName)
}

// ReportPath devuelve la ruta del informe HTML de target.
func (l Layout) ReportPath(target domain.Target) string {
	return filepath.Join(l.Reports, fmt.Sprintf("report_%s.html", target.DirName()))
}

// Ready es el contrato entre módulos: el artifact existe y no está vacío.
func (l Layout) Ready(name string) bool {
	fi, err := os.Stat(l.Artifact(name))
	return err == nil && fi.Mode().IsRegular() && fi.Size() > 0
}

// Glob devuelve los artifacts de Logs que coinciden con pattern, ordenados.
func (l Layout) Glob(pattern string) []string {
	matches, err := filepath.Glob(filepath.Join(l.Logs, pattern))
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

// ReadLines lee un artifact de texto: líneas recortadas, sin vacías.
func (l Layout) ReadLines(name string) ([]string, error) {
	return ReadLines(l.Artifact(name))
}

// WriteLinesAtomic reemplaza un artifact con una entrada por línea.
func (l Layout) WriteLinesAtomic(name string, lines []string) error {
	return WriteLinesAtomic(l.Artifact(name), lines)
}

// WriteLinesAtomic escribe lines en path, una por línea.
func WriteLinesAtomic(path string, lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return WriteFileAtomic(path, buf.Bytes())
}

// ReadLines lee un archivo de texto y descarta las líneas en blanco.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return out, errors.Wrapf(err, "read %s", path)
	}
	return out, nil
}

// WriteFileAtomic escribe en un temporal del mismo directorio y lo renombra,
// de modo que un lector nunca ve un archivo a medio escribir.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.Wrapf(err, "chmod %s", tmpName)
	}
	return errors.Wrapf(os.Rename(tmpName, path), "rename to %s", path)
}
