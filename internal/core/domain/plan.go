// internal/core/domain/plan.go
package domain

// PlanStep es un módulo del plan con sus parámetros resueltos.
type PlanStep struct {
	Module ModuleDescriptor
	Params Params

	// Interactive permite preguntar al operador por los Choices del módulo
	Interactive bool
}

// ExecutionPlan es la secuencia ordenada de módulos para un target.
// Se construye una vez y es de solo lectura durante la ejecución.
type ExecutionPlan struct {
	Target     Target
	Steps      []PlanStep
	Unattended bool
	Report     bool
	Warnings   []string
}

// Empty indica un plan sin módulos (no-op, no error).
func (p ExecutionPlan) Empty() bool { return len(p.Steps) == 0 }

// IDs devuelve los ids en orden de ejecución.
func (p ExecutionPlan) IDs() []ModuleID {
	ids := make([]ModuleID, len(p.Steps))
	for i, s := range p.Steps {
		ids[i] = s.Module.ID
	}
	return ids
}

// Producer devuelve el paso que produce artifact, si existe en el plan.
func (p ExecutionPlan) Producer(artifact string) (PlanStep, bool) {
	for _, s := range p.Steps {
		if s.Module.ProducesArtifact(artifact) {
			return s, true
		}
	}
	return PlanStep{}, false
}

// WithTarget devuelve una copia del plan apuntando a otro target.
func (p ExecutionPlan) WithTarget(t Target) ExecutionPlan {
	cp := p
	cp.Target = t
	cp.Steps = make([]PlanStep, len(p.Steps))
	for i, s := range p.Steps {
		s.Params = s.Params.Clone()
		cp.Steps[i] = s
	}
	return cp
}
