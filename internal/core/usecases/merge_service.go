// internal/core/usecases/merge_service.go
package usecases

import (
	"vajra/internal/adapters/parsers"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
	"vajra/internal/store"
)

// MergeService consolida artifacts de texto de varias herramientas en una
// única lista ordenada y sin duplicados.
type MergeService struct {
	logger logx.Logger
}

// NewMergeService crea una nueva instancia del servicio de merge.
func NewMergeService(logger logx.Logger) *MergeService {
	if logger == nil {
		logger = logx.Discard()
	}
	return &MergeService{
		logger: logger.With("component", "merge-service"),
	}
}

// MergeResult es la unión de varios artifacts.
type MergeResult struct {
	Lines []string

	// Counts son las entradas no vacías aportadas por cada archivo leído
	Counts map[string]int
}

// Union lee los archivos indicados y devuelve su unión. Los archivos que no
// existen se ignoran; cualquier otro error de lectura se devuelve.
func (m *MergeService) Union(paths map[string]string) (MergeResult, error) {
	res := MergeResult{Counts: make(map[string]int, len(paths))}
	var all []string

	for name, path := range paths {
		lines, err := store.ReadLines(path)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return MergeResult{}, errors.Wrapf(err, "read %s", name)
		}
		res.Counts[name] = len(lines)
		all = append(all, lines...)
	}

	res.Lines = parsers.UniqueSorted(all)
	m.logger.Debug("merged artifacts", "files", len(res.Counts), "entries", len(res.Lines))
	return res, nil
}

// Write escribe la unión en path de forma atómica.
func (m *MergeService) Write(path string, res MergeResult) error {
	if err := store.WriteLinesAtomic(path, res.Lines); err != nil {
		return errors.Wrap(err, "write merged artifact")
	}
	return nil
}
