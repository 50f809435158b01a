// internal/core/domain/outcome.go
package domain

import "time"

// ModuleOutcome registra cómo terminó un módulo del plan.
type ModuleOutcome struct {
	ID        ModuleID      `json:"id"`
	Name      string        `json:"name"`
	Status    ModuleStatus  `json:"status"`
	Reason    OutcomeReason `json:"reason,omitempty"`
	Launched  bool          `json:"launched"`
	ExitCode  int           `json:"exit_code"`
	Input     string        `json:"input,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	Detail    string        `json:"detail,omitempty"`
}

// NewOutcome crea el outcome de un módulo que no llegó a lanzarse.
func NewOutcome(d ModuleDescriptor, status ModuleStatus, reason OutcomeReason) ModuleOutcome {
	return ModuleOutcome{ID: d.ID, Name: d.Name, Status: status, Reason: reason, ExitCode: -1}
}

// Succeeded indica éxito.
func (o ModuleOutcome) Succeeded() bool { return o.Status == StatusSucceeded }
