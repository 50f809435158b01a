// internal/adapters/parsers/httpx.go
package parsers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
)

// Probe es una línea de la salida JSONL de httpx (-json).
type Probe struct {
	Timestamp     string     `json:"timestamp"`
	URL           string     `json:"url"`
	Input         string     `json:"input"`
	Host          string     `json:"host"`
	Port          FlexString `json:"port"`
	Scheme        string     `json:"scheme"`
	Path          string     `json:"path"`
	Method        string     `json:"method"`
	Title         string     `json:"title,omitempty"`
	Webserver     string     `json:"webserver,omitempty"`
	ContentType   string     `json:"content_type,omitempty"`
	ContentLength int        `json:"content_length,omitempty"`
	StatusCode    int        `json:"status_code"`
	Failed        bool       `json:"failed"`
	TechDetect    []string   `json:"tech,omitempty"`
	IP            string     `json:"ip,omitempty"`
	CNAME         []string   `json:"cname,omitempty"`
	CDN           FlexString `json:"cdn,omitempty"`
	CDNName       string     `json:"cdn_name,omitempty"`
}

// FlexString acepta string o número: httpx cambió el tipo de "port" y "cdn"
// entre versiones.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(string(b))
	return nil
}

// Hostname devuelve el host del probe: primero desde url, luego host.
func (p Probe) Hostname() string {
	if h := Hostname(p.URL); h != "" {
		return h
	}
	return Hostname(p.Host)
}

// ServiceEntry convierte el probe al modelo de resultado.
func (p Probe) ServiceEntry() domain.ServiceEntry {
	cdn := p.CDNName
	if cdn == "" && p.CDN != "" && p.CDN != "false" {
		cdn = string(p.CDN)
	}
	port := string(p.Port)
	if _, err := strconv.Atoi(port); err != nil {
		port = ""
	}
	return domain.ServiceEntry{
		URL:           p.URL,
		Host:          p.Hostname(),
		Input:         p.Input,
		IP:            p.IP,
		Scheme:        p.Scheme,
		Port:          port,
		StatusCode:    p.StatusCode,
		Title:         p.Title,
		Webserver:     p.Webserver,
		ContentType:   p.ContentType,
		ContentLength: p.ContentLength,
		Tech:          p.TechDetect,
		CDN:           cdn,
	}
}

// ParseProbes lee JSONL de httpx. Las líneas vacías se ignoran; las que no
// son JSON válido, o no tienen ni url ni host, se cuentan en skipped.
func ParseProbes(r io.Reader) (probes []Probe, skipped int, err error) {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, 10*1024*1024)

	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var p Probe
		if err := json.Unmarshal(line, &p); err != nil {
			skipped++
			continue
		}
		if p.URL == "" && p.Host == "" {
			skipped++
			continue
		}
		if p.Failed {
			continue
		}
		probes = append(probes, p)
	}
	if err := sc.Err(); err != nil {
		return probes, skipped, errors.Wrap(err, "read httpx output")
	}
	return probes, skipped, nil
}

// AliveHosts devuelve los hostnames únicos y ordenados de probes.
func AliveHosts(probes []Probe) []string {
	hosts := make([]string, 0, len(probes))
	for _, p := range probes {
		if h := p.Hostname(); h != "" {
			hosts = append(hosts, h)
		}
	}
	return UniqueSorted(hosts)
}

// ParseServices construye la sección services. Un archivo sin ninguna línea
// válida es ErrMalformed.
func ParseServices(r io.Reader) (*domain.ServiceSection, error) {
	probes, skipped, err := ParseProbes(r)
	if err != nil {
		return nil, err
	}
	if len(probes) == 0 && skipped > 0 {
		return nil, errors.Wrapf(errors.ErrMalformed, "httpx output: %d unreadable lines", skipped)
	}

	sec := &domain.ServiceSection{
		Entries:      make([]domain.ServiceEntry, 0, len(probes)),
		SkippedLines: skipped,
	}
	for _, p := range probes {
		sec.Entries = append(sec.Entries, p.ServiceEntry())
	}
	sec.Total = len(sec.Entries)
	return sec, nil
}
