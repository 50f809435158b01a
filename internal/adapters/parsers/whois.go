// internal/adapters/parsers/whois.go
package parsers

import (
	"bufio"
	"strings"

	whoisparser "github.com/likexian/whois-parser"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
)

const (
	WhoisParserStructured = "structured"
	WhoisParserLines      = "lines"
)

// ParseWhois extrae la sección whois. Primero intenta el parser estructurado;
// si falla (registro desconocido, formato raro) cae a una extracción por
// claves línea a línea.
func ParseWhois(raw string) (*domain.WhoisSection, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.Wrap(errors.ErrMalformed, "whois output is empty")
	}
	if info, err := whoisparser.Parse(raw); err == nil && info.Domain != nil && info.Domain.Domain != "" {
		return fromWhoisInfo(info), nil
	}
	return parseWhoisLines(raw)
}

func fromWhoisInfo(info whoisparser.WhoisInfo) *domain.WhoisSection {
	d := info.Domain
	sec := &domain.WhoisSection{
		DomainName:   orNA(d.Domain),
		CreationDate: orNA(d.CreatedDate),
		UpdatedDate:  orNA(d.UpdatedDate),
		ExpiryDate:   orNA(d.ExpirationDate),
		NameServers:  lowerAll(d.NameServers),
		Status:       d.Status,
		DNSSEC:       "unsigned",
		Parser:       WhoisParserStructured,
		Registrar:    domain.NotAvailable,
	}
	if d.DNSSec {
		sec.DNSSEC = "signed"
	}
	if info.Registrar != nil {
		sec.Registrar = orNA(firstNonEmpty(info.Registrar.Name, info.Registrar.Organization))
	}
	sec.Registrant = domain.Contact{
		Name:         domain.NotAvailable,
		Organization: domain.NotAvailable,
		Email:        domain.NotAvailable,
	}
	if c := info.Registrant; c != nil {
		sec.Registrant = domain.Contact{
			Name:         orNA(c.Name),
			Organization: orNA(c.Organization),
			Email:        orNA(c.Email),
		}
	}
	return sec
}

// whoisKeys mapea etiquetas habituales de servidores whois a campos.
var whoisKeys = map[string]string{
	"domain name":                            "domain",
	"domain":                                 "domain",
	"registrar":                              "registrar",
	"sponsoring registrar":                   "registrar",
	"creation date":                          "created",
	"created":                                "created",
	"created on":                             "created",
	"registered on":                          "created",
	"updated date":                           "updated",
	"last updated":                           "updated",
	"last modified":                          "updated",
	"changed":                                "updated",
	"registry expiry date":                   "expiry",
	"registrar registration expiration date": "expiry",
	"expiration date":                        "expiry",
	"expiry date":                            "expiry",
	"expires":                                "expiry",
	"paid-till":                              "expiry",
	"registrant name":                        "registrant_name",
	"registrant":                             "registrant_name",
	"registrant organization":                "registrant_org",
	"org":                                    "registrant_org",
	"registrant email":                       "registrant_email",
	"name server":                            "ns",
	"nserver":                                "ns",
	"dnssec":                                 "dnssec",
	"domain status":                          "status",
	"status":                                 "status",
}

func parseWhoisLines(raw string) (*domain.WhoisSection, error) {
	fields := make(map[string]string)
	var ns, status []string

	sc := bufio.NewScanner(strings.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ">>>") {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field, known := whoisKeys[strings.ToLower(strings.TrimSpace(k))]
		v = strings.TrimSpace(v)
		if !known || v == "" {
			continue
		}
		switch field {
		case "ns":
			ns = append(ns, strings.TrimSuffix(strings.ToLower(strings.Fields(v)[0]), "."))
		case "status":
			status = append(status, strings.Fields(v)[0])
		default:
			if _, set := fields[field]; !set {
				fields[field] = v
			}
		}
	}

	if len(fields) == 0 && len(ns) == 0 {
		return nil, errors.Wrap(errors.ErrMalformed, "whois output has no recognizable fields")
	}

	return &domain.WhoisSection{
		DomainName:   orNA(strings.ToLower(fields["domain"])),
		Registrar:    orNA(fields["registrar"]),
		CreationDate: orNA(fields["created"]),
		UpdatedDate:  orNA(fields["updated"]),
		ExpiryDate:   orNA(fields["expiry"]),
		Registrant: domain.Contact{
			Name:         orNA(fields["registrant_name"]),
			Organization: orNA(fields["registrant_org"]),
			Email:        orNA(fields["registrant_email"]),
		},
		NameServers: UniqueSorted(ns),
		DNSSEC:      orNA(fields["dnssec"]),
		Status:      UniqueSorted(status),
		Parser:      WhoisParserLines,
	}, nil
}

func orNA(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return domain.NotAvailable
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return UniqueSorted(out)
}
