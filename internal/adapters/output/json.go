// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/store"
)

// JSONRenderer escribe el documento unificado (JSON/final.json).
type JSONRenderer struct {
	// Pretty indenta la salida
	Pretty bool
}

var _ ports.ReportRenderer = (*JSONRenderer)(nil)

// NewJSONRenderer crea el renderer de final.json.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{Pretty: true}
}

// Name retorna "json".
func (r *JSONRenderer) Name() string { return "json" }

// Render serializa doc y lo escribe en path de forma atómica.
func (r *JSONRenderer) Render(doc *domain.ResultDocument, path string) error {
	if doc == nil {
		return fmt.Errorf("nil result document")
	}
	var (
		data []byte
		err  error
	)
	if r.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = append(data, '\n')
	if err := store.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// OutputJSON escribe doc en w. Se usa para volcar el resultado por stdout.
func OutputJSON(w io.Writer, doc *domain.ResultDocument, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}
