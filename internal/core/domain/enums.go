// internal/core/domain/enums.go
package domain

// TargetKind clasifica el valor de un Target.
type TargetKind string

const (
	TargetKindHost TargetKind = "host"
	TargetKindIP   TargetKind = "ip"
	TargetKindCIDR TargetKind = "cidr"
)

// IsValid verifica si el tipo de target es conocido.
func (k TargetKind) IsValid() bool {
	switch k {
	case TargetKindHost, TargetKindIP, TargetKindCIDR:
		return true
	default:
		return false
	}
}

func (k TargetKind) String() string { return string(k) }

// ModuleStatus es el estado final de un módulo dentro de un plan.
type ModuleStatus string

const (
	StatusSucceeded ModuleStatus = "succeeded"
	StatusFailed    ModuleStatus = "failed"
	StatusSkipped   ModuleStatus = "skipped"
	// StatusAborted marca el módulo en vuelo cuando el operador sale.
	StatusAborted ModuleStatus = "aborted"
	// StatusNotRun marca los módulos que quedaron detrás de un quit.
	StatusNotRun ModuleStatus = "not_run"
)

// IsValid verifica si el estado es conocido.
func (s ModuleStatus) IsValid() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusSkipped, StatusAborted, StatusNotRun:
		return true
	default:
		return false
	}
}

func (s ModuleStatus) String() string { return string(s) }

// OutcomeReason explica por qué un módulo no terminó con éxito.
type OutcomeReason string

const (
	ReasonNone         OutcomeReason = ""
	ReasonLaunchFailed OutcomeReason = "launch_failed"
	ReasonExitCode     OutcomeReason = "exit_code"
	ReasonTimeout      OutcomeReason = "timeout"
	ReasonMissingInput OutcomeReason = "missing_input"
	ReasonOperatorSkip OutcomeReason = "operator_skip"
	ReasonOperatorQuit OutcomeReason = "operator_quit"
)

func (r OutcomeReason) String() string {
	if r == ReasonNone {
		return "-"
	}
	return string(r)
}
