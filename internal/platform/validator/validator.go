// internal/platform/validator/validator.go
package validator

import (
	"net"
	"regexp"
	"strings"
)

var (
	domainRegex   = regexp.MustCompile(`^([a-zA-Z0-9_]([a-zA-Z0-9\-_]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)
	dirSafeRegexp = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// Domain validators

// IsDomain verifica si un string es un dominio válido.
// Acepta punycode y etiquetas con guión bajo (registros de servicio).
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !domainRegex.MatchString(domain) {
		return false
	}
	// Verificar que no sea una IP
	return net.ParseIP(domain) == nil
}

// NormalizeDomain normaliza un dominio a su forma canónica: minúsculas,
// sin espacios ni punto final. No elimina "www." porque es un host distinto
// a efectos de escaneo.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimSuffix(domain, ".")
}

// Network validators

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
func IsIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// IsCIDR verifica si un string es un bloque CIDR válido.
func IsCIDR(s string) bool {
	if !strings.Contains(s, "/") {
		return false
	}
	_, _, err := net.ParseCIDR(s)
	return err == nil
}

// NormalizeIP normaliza una IP a su forma canónica.
// Si la IP es inválida, retorna string vacío.
func NormalizeIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return ""
	}
	return parsed.String()
}

// NormalizeCIDR devuelve el bloque con la dirección de red canónica.
func NormalizeCIDR(s string) string {
	_, network, err := net.ParseCIDR(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return network.String()
}

// Filesystem helpers

// DirSafe reduce un valor a caracteres seguros para un nombre de carpeta.
// "/" se convierte en "_" para que los CIDR sigan siendo legibles.
func DirSafe(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "/", "_")
	return dirSafeRegexp.ReplaceAllString(s, "")
}
