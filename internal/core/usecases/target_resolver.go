// internal/core/usecases/target_resolver.go
package usecases

import (
	"fmt"
	"path/filepath"
	"strings"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/validator"
	"vajra/internal/store"
)

// TargetSet es el resultado de resolver la entrada del operador.
type TargetSet struct {
	// Group agrupa los resultados de una lista bajo Results/<group>/
	Group    string
	Targets  []domain.Target
	Warnings []string
}

// ResolveTargets convierte la entrada cruda en targets canónicos. "@path" lee
// una lista (una entrada por línea, '#' comenta); cualquier otro valor es un
// único target.
func ResolveTargets(input string) (TargetSet, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return TargetSet{}, domain.ErrEmptyTarget
	}

	ref := domain.ParseInputRef(input)
	if !ref.List {
		t, err := domain.NewTarget(ref.Value)
		if err != nil {
			return TargetSet{}, err
		}
		return TargetSet{Targets: []domain.Target{t}}, nil
	}

	lines, err := store.ReadLines(ref.Value)
	if err != nil {
		return TargetSet{}, errors.Wrapf(err, "read target list %s", ref.Value)
	}

	set := TargetSet{Group: listGroup(ref.Value)}
	seen := make(map[string]bool, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		t, err := domain.NewTarget(line)
		if err != nil {
			set.Warnings = append(set.Warnings, fmt.Sprintf("entry %d: %q dropped: %v", i+1, line, err))
			continue
		}
		if seen[t.Value] {
			continue
		}
		seen[t.Value] = true
		set.Targets = append(set.Targets, t)
	}

	if len(set.Targets) == 0 {
		return set, errors.Wrap(domain.ErrNoTargets, ref.Value)
	}
	return set, nil
}

// listGroup deriva el nombre de grupo del archivo: base sin extensión.
func listGroup(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return validator.DirSafe(base)
}
