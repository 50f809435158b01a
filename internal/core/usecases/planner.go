// internal/core/usecases/planner.go
package usecases

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/logx"
	"vajra/internal/platform/registry"
)

// runAllTokens son las formas aceptadas de "ejecutar todo".
var runAllTokens = map[string]bool{"0": true, "all": true, "*": true, "a": true}

// IsRunAll indica si la selección es el centinela de ejecutar todo.
func IsRunAll(selection string) bool {
	return runAllTokens[strings.ToLower(strings.TrimSpace(selection))]
}

// PlanOptions ajusta el plan más allá de la selección.
type PlanOptions struct {
	// Report habilita el informe HTML
	Report bool

	// Unattended desactiva las preguntas por módulo en una selección explícita
	Unattended bool

	// Params son overrides de configuración para selecciones explícitas
	// (por ejemplo el tipo de escaneo de nmap por defecto)
	Params map[domain.ModuleID]domain.Params
}

// Planner traduce la selección del operador a un ExecutionPlan.
type Planner struct {
	modules []ports.Module
	logger  logx.Logger
}

// NewPlanner crea un planner sobre los módulos construidos. Los ordena por
// Order para que el plan siga siempre el orden canónico.
func NewPlanner(modules []ports.Module, logger logx.Logger) *Planner {
	if logger == nil {
		logger = logx.Discard()
	}
	sorted := append([]ports.Module(nil), modules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Descriptor().Order < sorted[j].Descriptor().Order
	})
	return &Planner{modules: sorted, logger: logger.With("component", "planner")}
}

// Modules devuelve los descriptores disponibles en orden canónico.
func (p *Planner) Modules() []domain.ModuleDescriptor {
	out := make([]domain.ModuleDescriptor, len(p.modules))
	for i, m := range p.modules {
		out[i] = m.Descriptor()
	}
	return out
}

// Plan construye el plan para target. Una selección sin módulos válidos da un
// plan vacío, no un error; el error queda para grafos incoherentes.
func (p *Planner) Plan(selection string, target domain.Target, opts PlanOptions) (domain.ExecutionPlan, error) {
	plan := domain.ExecutionPlan{Target: target, Report: opts.Report}

	if IsRunAll(selection) {
		plan.Unattended = true
		for _, m := range p.modules {
			d := m.Descriptor()
			plan.Steps = append(plan.Steps, domain.PlanStep{Module: d, Params: d.Defaults.Clone()})
		}
	} else {
		plan.Unattended = opts.Unattended
		picked := make(map[domain.ModuleID]bool)
		for _, tok := range splitSelection(selection) {
			d, ok := p.lookup(tok)
			if !ok {
				plan.Warnings = append(plan.Warnings, fmt.Sprintf("unknown module %q ignored", tok))
				continue
			}
			picked[d.ID] = true
		}
		for _, m := range p.modules {
			d := m.Descriptor()
			if !picked[d.ID] {
				continue
			}
			params, warn := p.params(d, opts.Params[d.ID])
			if warn != "" {
				plan.Warnings = append(plan.Warnings, warn)
			}
			plan.Steps = append(plan.Steps, domain.PlanStep{
				Module:      d,
				Params:      params,
				Interactive: !opts.Unattended,
			})
		}
	}

	if err := buildDependencyGraph(plan.Steps).validateOrder(); err != nil {
		return domain.ExecutionPlan{}, err
	}

	for _, w := range plan.Warnings {
		p.logger.Warn("plan", "target", target.Value, "warning", w)
	}
	p.logger.Debug("plan built", "target", target.Value, "modules", fmt.Sprint(plan.IDs()), "unattended", plan.Unattended)
	return plan, nil
}

// params combina defaults con overrides; un override fuera de Choices se
// descarta con un aviso.
func (p *Planner) params(d domain.ModuleDescriptor, override domain.Params) (domain.Params, string) {
	params := d.Defaults.Clone()
	if len(override) == 0 {
		return params, ""
	}
	if err := registry.ValidateParams(d, override); err != nil {
		return params, fmt.Sprintf("%s: configured params ignored: %v", d.Name, err)
	}
	for k, v := range override {
		if v != "" {
			params[k] = v
		}
	}
	return params, ""
}

func (p *Planner) lookup(token string) (domain.ModuleDescriptor, bool) {
	for _, m := range p.modules {
		d := m.Descriptor()
		if string(d.ID) == token || strings.EqualFold(d.Name, token) {
			return d, true
		}
	}
	return domain.ModuleDescriptor{}, false
}

// splitSelection separa por comas y espacios.
func splitSelection(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
