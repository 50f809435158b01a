// internal/adapters/output/report_html.go
package output

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/store"
)

const reportTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>VAJRA report - {{.ScanInfo.Target}}</title></head>
<body>
<h1>VAJRA report: {{.ScanInfo.Target}}</h1>
<p>Scan {{.ScanInfo.ScanID}} ({{.ScanInfo.TargetKind}}), {{stamp .ScanInfo.Timestamp}} to {{stamp .ScanInfo.FinishedAt}}{{if .ScanInfo.Aborted}}, aborted by operator{{end}}</p>

<h2>Modules</h2>
<table border="1">
<tr><th>Module</th><th>Status</th><th>Reason</th><th>Exit</th><th>Duration</th></tr>
{{range .ScanInfo.Modules}}<tr><td>{{.Name}}</td><td>{{.Status}}</td><td>{{.Reason}}</td><td>{{if .Launched}}{{.ExitCode}}{{else}}-{{end}}</td><td>{{dur .Duration}}</td></tr>
{{end}}</table>

{{with .Whois}}<h2>Whois</h2>
<ul>
<li>Domain: {{.DomainName}}</li>
<li>Registrar: {{.Registrar}}</li>
<li>Created: {{.CreationDate}} / Updated: {{.UpdatedDate}} / Expires: {{.ExpiryDate}}</li>
<li>Registrant: {{.Registrant.Name}} {{.Registrant.Organization}} {{.Registrant.Email}}</li>
<li>Name servers: {{range .NameServers}}{{.}} {{end}}</li>
<li>DNSSEC: {{.DNSSEC}}</li>
</ul>
{{end}}
{{with .DNS}}<h2>DNS ({{.Total}})</h2>
<table border="1">
{{range $type, $values := .Records}}{{range $values}}<tr><td>{{$type}}</td><td>{{.}}</td></tr>
{{end}}{{end}}</table>
{{end}}
{{with .Subdomains}}<h2>Subdomains ({{.Total}}, {{.Origin}})</h2>
<ul>
{{range .Entries}}<li>{{.}}</li>
{{end}}</ul>
{{end}}
{{with .Services}}<h2>Services ({{.Total}})</h2>
<table border="1">
<tr><th>URL</th><th>Status</th><th>Title</th><th>Server</th><th>Tech</th></tr>
{{range .Entries}}<tr><td>{{.URL}}</td><td>{{.StatusCode}}</td><td>{{.Title}}</td><td>{{.Webserver}}</td><td>{{range .Tech}}{{.}} {{end}}</td></tr>
{{end}}</table>
{{end}}
{{with .Nmap}}<h2>Nmap</h2>
<p>{{.Summary}}</p>
{{range .Hosts}}<h3>{{.Address}} {{range .Hostnames}}({{.}}) {{end}}{{.Status}}, OS {{.OS}}</h3>
<table border="1">
<tr><th>Port</th><th>Proto</th><th>State</th><th>Service</th><th>Product</th><th>Version</th></tr>
{{range .Ports}}<tr><td>{{.Port}}</td><td>{{.Protocol}}</td><td>{{.State}}</td><td>{{.Service}}</td><td>{{.Product}}</td><td>{{.Version}}</td></tr>
{{end}}</table>
{{end}}{{end}}
{{with .ScanInfo.Warnings}}<h2>Warnings</h2>
<ul>
{{range .}}<li>{{.}}</li>
{{end}}</ul>
{{end}}</body>
</html>
`

// HTMLRenderer genera Reports/report_<target>.html sin estilos.
type HTMLRenderer struct {
	tmpl *template.Template
}

var _ ports.ReportRenderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer compila la plantilla del informe.
func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"stamp": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
		"dur":   func(d time.Duration) string { return d.Round(time.Second).String() },
	}
	return &HTMLRenderer{
		tmpl: template.Must(template.New("report").Funcs(funcs).Parse(reportTemplate)),
	}
}

// Name retorna "html".
func (r *HTMLRenderer) Name() string { return "html" }

// Render ejecuta la plantilla y escribe el informe de forma atómica.
func (r *HTMLRenderer) Render(doc *domain.ResultDocument, path string) error {
	if doc == nil {
		return fmt.Errorf("nil result document")
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := store.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
