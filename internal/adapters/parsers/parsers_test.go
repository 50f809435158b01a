// internal/adapters/parsers/parsers_test.go
package parsers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestUniqueSorted(t *testing.T) {
	got := UniqueSorted([]string{"b.example.com", " a.example.com ", "", "b.example.com", "c.example.com"})
	assert.Equal(t, []string{"a.example.com", "b.example.com", "c.example.com"}, got)
	assert.Empty(t, UniqueSorted(nil))
}

func TestHostname(t *testing.T) {
	tests := map[string]string{
		"https://B.example.com/path":  "b.example.com",
		"http://a.example.com:8080":   "a.example.com",
		"a.example.com:443":           "a.example.com",
		"example.com.":                "example.com",
		"[2001:db8::1]:443":           "2001:db8::1",
		"":                            "",
		"https://[2001:db8::1]:8443/": "2001:db8::1",
	}
	for in, want := range tests {
		assert.Equal(t, want, Hostname(in), in)
	}
}

func TestParseServices(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "alive.json"))
	require.NoError(t, err)
	defer f.Close()

	sec, err := ParseServices(f)
	require.NoError(t, err)

	assert.Equal(t, 2, sec.Total)
	assert.Equal(t, 2, sec.SkippedLines, "one non-JSON line and one line without url or host")

	b := sec.Entries[0]
	assert.Equal(t, "b.example.com", b.Host, "hostname comes from url before host")
	assert.Equal(t, "443", b.Port)
	assert.Equal(t, []string{"Nginx"}, b.Tech)

	a := sec.Entries[1]
	assert.Equal(t, "8080", a.Port, "numeric port is accepted")
	assert.Equal(t, "cloudflare", a.CDN)
	assert.Equal(t, 301, a.StatusCode)
}

func TestParseServices_AllMalformed(t *testing.T) {
	_, err := ParseServices(strings.NewReader("nope\n{broken\n"))
	assert.True(t, errors.Is(err, errors.ErrMalformed))
}

func TestAliveHosts(t *testing.T) {
	probes, skipped, err := ParseProbes(strings.NewReader(readFixture(t, "alive.json")))
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, AliveHosts(probes))
}

func TestParseDig(t *testing.T) {
	sec, err := ParseDig(strings.NewReader(readFixture(t, "dig.txt")))
	require.NoError(t, err)

	assert.Equal(t, 6, sec.Total, "duplicate NS collapsed, comment and garbage skipped")
	assert.Equal(t, []string{"93.184.216.34"}, sec.Records["A"])
	assert.Equal(t, []string{"a.iana-servers.net.", "b.iana-servers.net."}, sec.Records["NS"])
	assert.Equal(t, []string{"0 ."}, sec.Records["MX"])
	assert.Equal(t, []string{`"v=spf1 -all"`}, sec.Records["TXT"])
	assert.Len(t, sec.Records["AAAA"], 1)
}

func TestParseDig_NoRecords(t *testing.T) {
	_, err := ParseDig(strings.NewReader(";; nothing\nnot a record\n"))
	assert.True(t, errors.Is(err, errors.ErrMalformed))
}

func TestParseWhois(t *testing.T) {
	sec, err := ParseWhois(readFixture(t, "whois_com.txt"))
	require.NoError(t, err)

	assert.Equal(t, "example.com", sec.DomainName)
	assert.Equal(t, "RESERVED-Internet Assigned Numbers Authority", sec.Registrar)
	assert.Equal(t, "1995-08-14T04:00:00Z", sec.CreationDate)
	assert.Equal(t, []string{"a.iana-servers.net", "b.iana-servers.net"}, sec.NameServers)
	assert.NotEmpty(t, sec.Parser)
}

func TestParseWhoisLines(t *testing.T) {
	sec, err := parseWhoisLines(readFixture(t, "whois_ru.txt"))
	require.NoError(t, err)

	assert.Equal(t, WhoisParserLines, sec.Parser)
	assert.Equal(t, "example.ru", sec.DomainName)
	assert.Equal(t, "RU-CENTER-RU", sec.Registrar)
	assert.Equal(t, "2026-02-03T21:00:00Z", sec.ExpiryDate)
	assert.Equal(t, "Example LLC", sec.Registrant.Organization)
	assert.Equal(t, domain.NotAvailable, sec.Registrant.Email)
	assert.Equal(t, domain.NotAvailable, sec.UpdatedDate)
	assert.Equal(t, []string{"ns1.example.ru", "ns2.example.ru"}, sec.NameServers)
}

func TestParseWhois_Malformed(t *testing.T) {
	_, err := ParseWhois("   \n")
	assert.True(t, errors.Is(err, errors.ErrMalformed))

	_, err = ParseWhois("hello world\nnothing to see\n")
	assert.True(t, errors.Is(err, errors.ErrMalformed))
}

func TestParseNmapFiles(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "nmap_udp.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<nmaprun><host>"), 0o644))

	sec, errs := ParseNmapFiles([]string{filepath.Join("testdata", "nmap_top1000.xml"), bad})
	require.NotNil(t, sec)
	require.Len(t, errs, 1, "bad report reported but not fatal")

	assert.Equal(t, []string{"nmap_top1000.xml"}, sec.Files)
	require.Len(t, sec.Hosts, 1)
	h := sec.Hosts[0]
	assert.Equal(t, "93.184.216.34", h.Address)
	assert.Equal(t, "ipv4", h.AddressType)
	assert.Equal(t, "up", h.Status)
	assert.Equal(t, []string{"example.com"}, h.Hostnames)
	assert.Equal(t, "Linux 5.0 - 5.14", h.OS)

	require.Len(t, h.Ports, 2)
	assert.Equal(t, domain.NmapPort{Port: 443, Protocol: "tcp", State: "open", Service: "https", Product: "nginx", Version: "1.25.3"}, h.Ports[0])
	assert.Equal(t, domain.NotAvailable, h.Ports[1].Product)
	assert.Equal(t, domain.NotAvailable, h.Ports[1].Version)
	assert.Contains(t, sec.Summary, "1 host up")
}

func TestParseNmapFiles_None(t *testing.T) {
	sec, errs := ParseNmapFiles([]string{filepath.Join(t.TempDir(), "missing.xml")})
	assert.Nil(t, sec)
	assert.Len(t, errs, 1)
}
