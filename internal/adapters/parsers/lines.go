// Package parsers turns raw tool artifacts into the typed sections of the
// result document. Each parser is independent and tolerant: a bad line is
// skipped, a bad file is reported as errors.ErrMalformed.
package parsers

import (
	"net"
	"net/url"
	"sort"
	"strings"
)

// UniqueSorted devuelve las entradas no vacías, recortadas, sin duplicados y
// en orden lexicográfico.
func UniqueSorted(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Hostname extrae el host de una URL o de "host:port". Devuelve "" si no hay
// nada utilizable.
func Hostname(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return strings.ToLower(u.Hostname())
	}
	if h, _, err := net.SplitHostPort(raw); err == nil {
		return strings.ToLower(h)
	}
	return strings.ToLower(strings.TrimSuffix(raw, "."))
}
