// internal/core/domain/result.go
package domain

import "time"

// NotAvailable es el valor por defecto para campos ausentes en la salida de una herramienta.
const NotAvailable = "N/A"

// ResultDocument es el modelo unificado que produce el agregador, una vez
// por target. Cada sección es nil si su artifact no existía o no se pudo
// parsear. Es el contrato de JSON/final.json.
type ResultDocument struct {
	ScanInfo   ScanInfo          `json:"scan_info"`
	Whois      *WhoisSection     `json:"whois,omitempty"`
	DNS        *DNSSection       `json:"dns,omitempty"`
	Subdomains *SubdomainSection `json:"subdomains,omitempty"`
	Services   *ServiceSection   `json:"services,omitempty"`
	Nmap       *NmapSection      `json:"nmap,omitempty"`
}

// ScanInfo son los metadatos del escaneo.
type ScanInfo struct {
	ScanID     string          `json:"scan_id"`
	Target     string          `json:"target"`
	TargetKind TargetKind      `json:"target_kind"`
	Timestamp  time.Time       `json:"timestamp"`
	FinishedAt time.Time       `json:"finished_at"`
	Aborted    bool            `json:"aborted"`
	Version    string          `json:"version,omitempty"`
	Directory  string          `json:"directory"`
	Modules    []ModuleOutcome `json:"modules"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// WhoisSection contiene los datos de registro del dominio.
type WhoisSection struct {
	DomainName   string   `json:"domain_name"`
	Registrar    string   `json:"registrar"`
	CreationDate string   `json:"creation_date"`
	UpdatedDate  string   `json:"updated_date"`
	ExpiryDate   string   `json:"expiry_date"`
	Registrant   Contact  `json:"registrant"`
	NameServers  []string `json:"name_servers"`
	DNSSEC       string   `json:"dnssec"`
	Status       []string `json:"status,omitempty"`

	// Parser indica qué estrategia extrajo los campos ("structured" o "lines")
	Parser string `json:"parser"`
}

// Contact es un contacto del registro whois.
type Contact struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
}

// DNSSection agrupa los registros de dig por tipo.
type DNSSection struct {
	Total   int                 `json:"total"`
	Records map[string][]string `json:"records"`
}

// SubdomainSection es la lista de subdominios del target.
type SubdomainSection struct {
	Total   int      `json:"total"`
	Entries []string `json:"entries"`

	// Origin indica de dónde salen: "alive", "merged" o "discovery"
	Origin string `json:"origin"`

	// Discovery cuenta las entradas por herramienta de descubrimiento
	Discovery map[string]int `json:"discovery,omitempty"`
}

// ServiceSection son los servicios web vivos detectados por httpx.
type ServiceSection struct {
	Total        int            `json:"total"`
	Entries      []ServiceEntry `json:"entries"`
	SkippedLines int            `json:"skipped_lines,omitempty"`
}

// ServiceEntry es un servicio HTTP vivo.
type ServiceEntry struct {
	URL           string   `json:"url"`
	Host          string   `json:"host"`
	Input         string   `json:"input,omitempty"`
	IP            string   `json:"ip,omitempty"`
	Scheme        string   `json:"scheme,omitempty"`
	Port          string   `json:"port,omitempty"`
	StatusCode    int      `json:"status_code"`
	Title         string   `json:"title,omitempty"`
	Webserver     string   `json:"webserver,omitempty"`
	ContentType   string   `json:"content_type,omitempty"`
	ContentLength int      `json:"content_length,omitempty"`
	Tech          []string `json:"tech,omitempty"`
	CDN           string   `json:"cdn,omitempty"`
}

// NmapSection es el resultado de uno o más escaneos de nmap.
type NmapSection struct {
	Files   []string   `json:"files"`
	Hosts   []NmapHost `json:"hosts"`
	Summary string     `json:"summary"`
}

// NmapHost es un host del informe de nmap.
type NmapHost struct {
	Address     string     `json:"address"`
	AddressType string     `json:"address_type"`
	Hostnames   []string   `json:"hostnames"`
	Status      string     `json:"status"`
	OS          string     `json:"os"`
	Ports       []NmapPort `json:"ports"`
}

// NmapPort es un puerto con su servicio detectado.
type NmapPort struct {
	Port     uint16 `json:"port"`
	Protocol string `json:"protocol"`
	State    string `json:"state"`
	Service  string `json:"service"`
	Product  string `json:"product"`
	Version  string `json:"version"`
}

// SectionCount devuelve cuántas secciones de datos están presentes.
func (d *ResultDocument) SectionCount() int {
	n := 0
	if d.Whois != nil {
		n++
	}
	if d.DNS != nil {
		n++
	}
	if d.Subdomains != nil {
		n++
	}
	if d.Services != nil {
		n++
	}
	if d.Nmap != nil {
		n++
	}
	return n
}
