// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"vajra/internal/core/domain"
)

// OutputTable imprime un resumen legible del documento: un módulo por fila y
// el recuento de cada sección.
func OutputTable(out io.Writer, doc *domain.ResultDocument) error {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	info := doc.ScanInfo

	fmt.Fprintf(w, "\n=== VAJRA Scan Results ===\n")
	fmt.Fprintf(w, "Target:\t%s (%s)\n", info.Target, info.TargetKind)
	fmt.Fprintf(w, "Scan ID:\t%s\n", info.ScanID)
	fmt.Fprintf(w, "Duration:\t%s\n", info.FinishedAt.Sub(info.Timestamp).Round(time.Millisecond))
	fmt.Fprintf(w, "Directory:\t%s\n", info.Directory)
	if info.Aborted {
		fmt.Fprintf(w, "Aborted:\tyes\n")
	}
	fmt.Fprintln(w)

	if len(info.Modules) > 0 {
		fmt.Fprintln(w, "MODULE\tSTATUS\tREASON\tEXIT\tDURATION")
		fmt.Fprintln(w, "------\t------\t------\t----\t--------")
		for _, m := range info.Modules {
			exit := "-"
			if m.Launched {
				exit = fmt.Sprint(m.ExitCode)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				m.Name,
				m.Status,
				m.Reason,
				exit,
				m.Duration.Round(time.Millisecond),
			)
		}
	} else {
		fmt.Fprintln(w, "No modules ran.")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "SECTION\tRESULT")
	fmt.Fprintln(w, "-------\t------")
	for _, row := range sectionRows(doc) {
		fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	if len(info.Warnings) > 0 {
		fmt.Fprintf(out, "\nWarnings (%d):\n", len(info.Warnings))
		for i, warning := range info.Warnings {
			fmt.Fprintf(out, "  %d. %s\n", i+1, warning)
		}
	}
	fmt.Fprintln(out)
	return nil
}

func sectionRows(doc *domain.ResultDocument) [][2]string {
	na := domain.NotAvailable
	rows := [][2]string{
		{"whois", na},
		{"dns", na},
		{"subdomains", na},
		{"services", na},
		{"nmap", na},
	}
	if doc.Whois != nil {
		rows[0][1] = fmt.Sprintf("%s (%s)", doc.Whois.DomainName, doc.Whois.Registrar)
	}
	if doc.DNS != nil {
		rows[1][1] = fmt.Sprintf("%d records", doc.DNS.Total)
	}
	if doc.Subdomains != nil {
		rows[2][1] = fmt.Sprintf("%d (%s)", doc.Subdomains.Total, doc.Subdomains.Origin)
	}
	if doc.Services != nil {
		rows[3][1] = fmt.Sprintf("%d live services", doc.Services.Total)
	}
	if doc.Nmap != nil {
		ports := 0
		for _, h := range doc.Nmap.Hosts {
			ports += len(h.Ports)
		}
		rows[4][1] = fmt.Sprintf("%d hosts, %d ports [%s]", len(doc.Nmap.Hosts), ports, strings.Join(doc.Nmap.Files, ","))
	}
	return rows
}
