// internal/adapters/parsers/dig.go
package parsers

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/miekg/dns"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
)

// ParseDig lee la sección de respuesta de dig (+noall +answer) y agrupa los
// registros por tipo. Comentarios y líneas que no son un RR válido se
// ignoran.
func ParseDig(r io.Reader) (*domain.DNSSection, error) {
	sec := &domain.DNSSection{Records: make(map[string][]string)}
	seen := make(map[string]struct{})
	skipped := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		rr, err := dns.NewRR(line)
		if err != nil || rr == nil {
			skipped++
			continue
		}

		hdr := rr.Header()
		rtype := dns.TypeToString[hdr.Rrtype]
		value := strings.TrimSpace(strings.TrimPrefix(rr.String(), hdr.String()))
		key := rtype + "\x00" + value
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		sec.Records[rtype] = append(sec.Records[rtype], value)
		sec.Total++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read dig output")
	}
	if sec.Total == 0 {
		return nil, errors.Wrapf(errors.ErrMalformed, "dig output: no records (%d unreadable lines)", skipped)
	}
	for _, values := range sec.Records {
		sort.Strings(values)
	}
	return sec, nil
}
