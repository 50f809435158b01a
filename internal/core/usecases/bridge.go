// internal/core/usecases/bridge.go
package usecases

import (
	"strings"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
	"vajra/internal/store"
)

// ErrMissingInput indica que un módulo no tiene de qué alimentarse: sus
// fuentes no existen o están vacías y no aplica el fallback al target.
var ErrMissingInput = errors.New("missing input")

// Bridge resuelve la entrada de cada módulo a partir de los artifacts que
// dejaron los anteriores. No ejecuta nada.
type Bridge struct {
	merge  *MergeService
	logger logx.Logger
}

// NewBridge crea un Bridge.
func NewBridge(logger logx.Logger) *Bridge {
	if logger == nil {
		logger = logx.Discard()
	}
	return &Bridge{
		merge:  NewMergeService(logger),
		logger: logger.With("component", "bridge"),
	}
}

// Prepare devuelve la referencia de entrada de step. Un módulo sin Requires
// recibe el target. Con varias entradas declaradas, la última resuelta es la
// que recibe el módulo; todas deben estar disponibles.
func (b *Bridge) Prepare(step domain.PlanStep, plan domain.ExecutionPlan, layout store.Layout) (domain.InputRef, error) {
	ref := plan.Target.Ref()
	for _, in := range step.Module.Requires {
		r, err := b.prepareInput(in, plan, layout)
		if err != nil {
			return domain.InputRef{}, errors.Wrapf(err, "%s", step.Module.Name)
		}
		ref = r
	}
	return ref, nil
}

func (b *Bridge) prepareInput(in domain.InputSpec, plan domain.ExecutionPlan, layout store.Layout) (domain.InputRef, error) {
	var ready []string
	producers := 0
	for _, src := range in.Sources {
		if _, ok := plan.Producer(src); ok {
			producers++
		}
		if layout.Ready(src) {
			ready = append(ready, src)
		}
	}

	if len(ready) == 0 {
		if producers == 0 && in.TargetFallback {
			b.logger.Debug("no producer in plan, using target", "input", in.Kind, "target", plan.Target.Value)
			return plan.Target.Ref(), nil
		}
		return domain.InputRef{}, errors.Wrapf(ErrMissingInput, "%s: none of %s is ready", in.Kind, strings.Join(in.Sources, ", "))
	}

	if len(in.Sources) == 1 {
		return domain.ListRef(layout.Artifact(ready[0])), nil
	}

	paths := make(map[string]string, len(ready))
	for _, src := range ready {
		paths[src] = layout.Artifact(src)
	}
	res, err := b.merge.Union(paths)
	if err != nil {
		return domain.InputRef{}, err
	}
	if len(res.Lines) == 0 {
		return domain.InputRef{}, errors.Wrapf(ErrMissingInput, "%s: union of %s is empty", in.Kind, strings.Join(ready, ", "))
	}

	merged := layout.Artifact(in.Merged)
	if err := b.merge.Write(merged, res); err != nil {
		return domain.InputRef{}, err
	}
	b.logger.Info("inputs merged", "input", in.Kind, "sources", strings.Join(ready, ","), "entries", len(res.Lines), "artifact", in.Merged)
	return domain.ListRef(merged), nil
}
