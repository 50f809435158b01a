// internal/platform/validator/validator_test.go
package validator

import (
	"testing"

	"vajra/internal/testutil"
)

func TestIsDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid domain", "example.com", true},
		{"valid subdomain", "test.example.com", true},
		{"service label", "_dmarc.example.com", true},
		{"empty string", "", false},
		{"too long", string(make([]byte, 300)), false},
		{"ip address", "192.168.1.1", false},
		{"invalid chars", "exam ple.com", false},
		{"starts with hyphen", "-example.com", false},
		{"ends with hyphen", "example-.com", false},
		{"empty label", "example..com", false},
		{"single label", "localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsDomain(tt.input), tt.expected, "domain validation")
		})
	}
}

func TestNormalizeDomain(t *testing.T) {
	testutil.AssertEqual(t, NormalizeDomain("  WWW.Example.COM. "), "www.example.com", "keeps www, trims dot")
}

func TestIsCIDR(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"10.0.0.0/8", true},
		{"192.168.1.0/24", true},
		{"2001:db8::/32", true},
		{"10.0.0.0/33", false},
		{"10.0.0.1", false},
		{"example.com/24", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testutil.AssertEqual(t, IsCIDR(tt.input), tt.expected, "cidr validation")
		})
	}
}

func TestNormalizeIPAndCIDR(t *testing.T) {
	testutil.AssertEqual(t, NormalizeIP(" 2001:0db8::0001 "), "2001:db8::1", "ipv6 canonical form")
	testutil.AssertEqual(t, NormalizeIP("nope"), "", "invalid ip")
	testutil.AssertEqual(t, NormalizeCIDR("192.168.1.77/24"), "192.168.1.0/24", "network address")
}

func TestDirSafe(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"example.com", "example.com"},
		{"192.168.1.0/24", "192.168.1.0_24"},
		{"fe80::1", "fe801"},
		{"bad name;rm -rf", "badnamerm-rf"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testutil.AssertEqual(t, DirSafe(tt.input), tt.expected, "sanitized dir")
		})
	}
}
