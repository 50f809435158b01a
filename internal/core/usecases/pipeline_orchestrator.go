// internal/core/usecases/pipeline_orchestrator.go
package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vajra/internal/control"
	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
	"vajra/internal/platform/ui"
	"vajra/internal/store"
)

const (
	// DefaultPollInterval es el tick del bucle de supervisión
	DefaultPollInterval = 50 * time.Millisecond

	// MaxPollInterval acota el tick: una orden del operador nunca espera más
	MaxPollInterval = time.Second

	// DefaultGrace es la espera entre SIGTERM y SIGKILL
	DefaultGrace = 5 * time.Second

	// DefaultPromptTimeout es lo que espera una pregunta de parámetros
	DefaultPromptTimeout = 30 * time.Second
)

// PipelineOrchestrator ejecuta un ExecutionPlan módulo a módulo, aplicando en
// cada tick las órdenes del operador que publica el listener en RuntimeState.
type PipelineOrchestrator struct {
	modules  map[domain.ModuleID]ports.Module
	launcher ports.Launcher
	state    *control.RuntimeState
	operator ports.Operator
	bridge   *Bridge
	logger   logx.Logger

	// UI Presenter para visualización del progreso
	presenter ui.Presenter

	pollInterval  time.Duration
	grace         time.Duration
	promptTimeout time.Duration
}

// PipelineOrchestratorOptions configura el pipeline orchestrator.
type PipelineOrchestratorOptions struct {
	Modules  []ports.Module
	Launcher ports.Launcher
	State    *control.RuntimeState

	// Operator responde las preguntas interactivas; nil = sin preguntas
	Operator ports.Operator

	Bridge    *Bridge
	Presenter ui.Presenter
	Logger    logx.Logger

	PollInterval  time.Duration
	Grace         time.Duration
	PromptTimeout time.Duration
}

// RunResult es el resultado del bucle del plan para un target.
type RunResult struct {
	Outcomes []domain.ModuleOutcome

	// Aborted indica que el operador (o una señal) pidió salir
	Aborted bool

	StartedAt  time.Time
	FinishedAt time.Time
}

// Counts devuelve cuántos outcomes hay de cada estado.
func (r RunResult) Counts() map[domain.ModuleStatus]int {
	out := make(map[domain.ModuleStatus]int)
	for _, o := range r.Outcomes {
		out[o.Status]++
	}
	return out
}

// ClampPollInterval aplica default y máximo al intervalo de poll.
func ClampPollInterval(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultPollInterval
	case d > MaxPollInterval:
		return MaxPollInterval
	default:
		return d
	}
}

// NewPipelineOrchestrator crea una nueva instancia del pipeline orchestrator.
func NewPipelineOrchestrator(opts PipelineOrchestratorOptions) *PipelineOrchestrator {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.State == nil {
		opts.State = control.NewRuntimeState()
	}
	if opts.Bridge == nil {
		opts.Bridge = NewBridge(opts.Logger)
	}
	if opts.Grace <= 0 {
		opts.Grace = DefaultGrace
	}
	if opts.PromptTimeout <= 0 {
		opts.PromptTimeout = DefaultPromptTimeout
	}

	mods := make(map[domain.ModuleID]ports.Module, len(opts.Modules))
	for _, m := range opts.Modules {
		mods[m.Descriptor().ID] = m
	}

	return &PipelineOrchestrator{
		modules:       mods,
		launcher:      opts.Launcher,
		state:         opts.State,
		operator:      opts.Operator,
		bridge:        opts.Bridge,
		logger:        opts.Logger.With("component", "pipeline_orchestrator"),
		presenter:     opts.Presenter,
		pollInterval:  ClampPollInterval(opts.PollInterval),
		grace:         opts.Grace,
		promptTimeout: opts.PromptTimeout,
	}
}

// State devuelve el estado compartido con el listener.
func (p *PipelineOrchestrator) State() *control.RuntimeState { return p.state }

// Run ejecuta el plan. Nunca devuelve error: cada fallo queda en el outcome
// de su módulo. Tras un quit los módulos pendientes quedan como not_run.
func (p *PipelineOrchestrator) Run(ctx context.Context, plan domain.ExecutionPlan, layout store.Layout) RunResult {
	res := RunResult{StartedAt: time.Now()}
	if plan.Empty() {
		p.logger.Info("empty plan, nothing to run", "target", plan.Target.Value)
		res.FinishedAt = time.Now()
		return res
	}

	graph := buildDependencyGraph(plan.Steps)
	cascade := make(map[domain.ModuleID]string)

	p.logger.Info("pipeline started", "target", plan.Target.Value, "modules", len(plan.Steps), "unattended", plan.Unattended)

	for i, step := range plan.Steps {
		if p.quitting(ctx) {
			res.Aborted = true
			for _, rest := range plan.Steps[i:] {
				o := domain.NewOutcome(rest.Module, domain.StatusNotRun, domain.ReasonOperatorQuit)
				res.Outcomes = append(res.Outcomes, o)
				p.finish(o)
			}
			break
		}

		gen := p.state.Begin(step.Module.ID, step.Module.Name)
		outcome := p.runStep(ctx, i, step, plan, layout, gen, graph, cascade)
		p.state.End(gen)

		res.Outcomes = append(res.Outcomes, outcome)
		p.finish(outcome)

		if outcome.Status == domain.StatusFailed && outcome.Reason != domain.ReasonMissingInput {
			p.starve(step.Module, graph, layout, cascade)
		}

		if outcome.Status == domain.StatusAborted {
			res.Aborted = true
		}
	}

	res.FinishedAt = time.Now()
	p.logger.Info("pipeline finished", "target", plan.Target.Value,
		"duration", res.FinishedAt.Sub(res.StartedAt).Round(time.Millisecond), "aborted", res.Aborted)
	return res
}

func (p *PipelineOrchestrator) quitting(ctx context.Context) bool {
	if ctx.Err() != nil {
		p.state.Request(control.ActionQuit)
	}
	return p.state.QuitRequested()
}

func (p *PipelineOrchestrator) runStep(
	ctx context.Context,
	index int,
	step domain.PlanStep,
	plan domain.ExecutionPlan,
	layout store.Layout,
	gen uint64,
	graph *dependencyGraph,
	cascade map[domain.ModuleID]string,
) domain.ModuleOutcome {
	d := step.Module
	logger := p.logger.With("module", d.Name)

	if detail, ok := cascade[d.ID]; ok {
		o := domain.NewOutcome(d, domain.StatusSkipped, domain.ReasonMissingInput)
		o.Detail = detail
		logger.Info("skipped, no input can reach it", "detail", detail)
		return o
	}

	mod, ok := p.modules[d.ID]
	if !ok {
		o := domain.NewOutcome(d, domain.StatusFailed, domain.ReasonLaunchFailed)
		o.Detail = errors.Wrap(domain.ErrModuleNotFound, d.Name).Error()
		return o
	}

	ref, err := p.bridge.Prepare(step, plan, layout)
	if err != nil {
		if errors.Is(err, ErrMissingInput) {
			return p.missingInput(ctx, step, graph, cascade, err)
		}
		o := domain.NewOutcome(d, domain.StatusFailed, domain.ReasonLaunchFailed)
		o.Detail = err.Error()
		logger.Err(err, "phase", "prepare")
		return o
	}

	// skip o quit pedidos durante el merge se aplican antes de lanzar
	if o, stop := p.pending(d); stop {
		return o
	}

	params := step.Params.Clone()
	if step.Interactive && !plan.Unattended {
		params = p.resolveParams(ctx, d, params)
		if o, stop := p.pending(d); stop {
			return o
		}
	}

	inv := ports.Invocation{
		Target:         plan.Target,
		Input:          ref,
		Params:         params,
		LogsDir:        layout.Logs,
		ScreenshotsDir: layout.Screenshots,
	}

	cmd, err := mod.Build(inv)
	if err != nil {
		o := domain.NewOutcome(d, domain.StatusFailed, domain.ReasonLaunchFailed)
		o.Input = ref.String()
		o.Detail = err.Error()
		logger.Warn("cannot build command", "error", err)
		return o
	}

	p.presenter.StartModule(ui.ModuleInfo{
		Index:   index + 1,
		Total:   len(plan.Steps),
		Name:    d.Name,
		Command: cmd.String(),
	})

	started := time.Now()
	proc, err := p.launcher.Start(ctx, cmd)
	if err != nil {
		o := domain.NewOutcome(d, domain.StatusFailed, domain.ReasonLaunchFailed)
		o.Input = ref.String()
		o.StartedAt = started
		o.Detail = err.Error()
		logger.Warn("launch failed", "error", err)
		return o
	}
	if err := p.state.Attach(gen, proc.PID()); err != nil {
		logger.Err(err, "phase", "attach")
	}

	o := p.supervise(ctx, d, proc, logger)
	o.Input = ref.String()
	o.StartedAt = started
	o.Duration = time.Since(started)

	// tras quit o skip solo cuenta lo que el módulo dejó escrito
	stopped := o.Status == domain.StatusAborted || o.Status == domain.StatusSkipped
	if post, ok := mod.(ports.PostRunner); ok && !stopped {
		if err := post.AfterRun(inv); err != nil {
			logger.Warn("post-run step failed", "error", err)
		}
	}
	return o
}

// supervise hace poll del proceso y aplica las decisiones del operador hasta
// que termina. El timeout cuenta solo el tiempo en ejecución, no en pausa.
func (p *PipelineOrchestrator) supervise(ctx context.Context, d domain.ModuleDescriptor, proc ports.Process, logger logx.Logger) domain.ModuleOutcome {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	var (
		paused      bool
		warnedPause bool
		running     time.Duration
		last        = time.Now()
		ctxDone     = ctx.Done()
	)

	launched := func(status domain.ModuleStatus, reason domain.OutcomeReason, code int) domain.ModuleOutcome {
		o := domain.NewOutcome(d, status, reason)
		o.Launched = true
		o.ExitCode = code
		if status != domain.StatusSucceeded {
			o.Detail = proc.Detail()
		}
		return o
	}
	terminate := func() int {
		if err := proc.Terminate(p.grace); err != nil {
			logger.Warn("terminate", "error", err)
		}
		if exited, code := proc.Poll(); exited {
			return code
		}
		return -1
	}

	for {
		select {
		case <-proc.Done():
		case <-ticker.C:
		case <-ctxDone:
			ctxDone = nil
			logger.Info("interrupted, stopping pipeline")
			p.state.Request(control.ActionQuit)
		}

		now := time.Now()
		if !paused {
			running += now.Sub(last)
		}
		last = now

		if exited, code := proc.Poll(); exited {
			if code == 0 {
				return launched(domain.StatusSucceeded, domain.ReasonNone, code)
			}
			return launched(domain.StatusFailed, domain.ReasonExitCode, code)
		}

		dec := p.state.Decide()
		switch {
		case dec.Quit:
			logger.Info("quit requested, terminating")
			return launched(domain.StatusAborted, domain.ReasonOperatorQuit, terminate())

		case dec.Skip:
			logger.Info("skip requested, terminating")
			return launched(domain.StatusSkipped, domain.ReasonOperatorSkip, terminate())

		case dec.Paused && !paused:
			paused = true
			if err := proc.Pause(); err != nil {
				if !errors.IsUnsupported(err) || !warnedPause {
					p.presenter.Warning(fmt.Sprintf("%s: pause not enforced: %v", d.Name, err))
				}
				warnedPause = warnedPause || errors.IsUnsupported(err)
			}
			p.presenter.ModuleState(d.Name, ui.StatusPaused, "")
			logger.Info("paused")

		case !dec.Paused && paused:
			paused = false
			if err := proc.Resume(); err != nil && !errors.IsUnsupported(err) {
				logger.Warn("resume", "error", err)
			}
			p.presenter.ModuleState(d.Name, ui.StatusRunning, "resumed")
			logger.Info("resumed")
		}

		if d.Timeout > 0 && !paused && running >= d.Timeout {
			logger.Warn("timeout, terminating", "timeout", d.Timeout)
			o := launched(domain.StatusFailed, domain.ReasonTimeout, terminate())
			o.Detail = errors.Wrapf(errors.ErrTimeout, "%s after %s", d.Name, d.Timeout).Error()
			return o
		}
	}
}

// pending aplica un skip o quit pedido antes de lanzar el módulo.
func (p *PipelineOrchestrator) pending(d domain.ModuleDescriptor) (domain.ModuleOutcome, bool) {
	dec := p.state.Decide()
	switch {
	case dec.Quit:
		return domain.NewOutcome(d, domain.StatusAborted, domain.ReasonOperatorQuit), true
	case dec.Skip:
		return domain.NewOutcome(d, domain.StatusSkipped, domain.ReasonOperatorSkip), true
	}
	return domain.ModuleOutcome{}, false
}

// missingInput registra failed(missing_input) y marca a todos los
// dependientes transitivos para que se salten sin lanzarse. Un módulo
// Critical en un plan interactivo pregunta antes si el operador prefiere
// saltarlo; los dependientes caen igual.
func (p *PipelineOrchestrator) missingInput(
	ctx context.Context,
	step domain.PlanStep,
	graph *dependencyGraph,
	cascade map[domain.ModuleID]string,
	cause error,
) domain.ModuleOutcome {
	d := step.Module
	o := domain.NewOutcome(d, domain.StatusFailed, domain.ReasonMissingInput)
	o.Detail = cause.Error()
	p.logger.Warn("missing input", "module", d.Name, "error", cause)

	for _, dep := range graph.dependents(d.ID) {
		if _, marked := cascade[dep]; !marked {
			cascade[dep] = fmt.Sprintf("upstream %s produced no input", d.Name)
		}
	}

	if !d.Critical || !step.Interactive || p.operator == nil {
		return o
	}

	deps := graph.dependentNames(d.ID)
	list := "none"
	if len(deps) > 0 {
		list = strings.Join(deps, ", ")
	}
	q := fmt.Sprintf("%s has no input. Skip %s and its dependents (%s)? [y/N]", d.Name, d.Name, list)
	answer, err := p.operator.Prompt(ctx, q, p.promptTimeout)
	if err != nil {
		p.logger.Debug("critical prompt without answer", "module", d.Name, "error", err)
		return o
	}
	if strings.EqualFold(strings.TrimSpace(answer), "y") || strings.EqualFold(strings.TrimSpace(answer), "yes") {
		o.Status = domain.StatusSkipped
		o.Reason = domain.ReasonOperatorSkip
	}
	return o
}

// starve marca como skipped(missing_input) a los consumidores que solo d
// podía alimentar cuando d falla sin dejar sus artifacts, y sigue la cadena
// desde cada uno de ellos.
func (p *PipelineOrchestrator) starve(d domain.ModuleDescriptor, graph *dependencyGraph, layout store.Layout, cascade map[domain.ModuleID]string) {
	queue := []domain.ModuleID{d.ID}
	for len(queue) > 0 {
		from := queue[0]
		queue = queue[1:]
		for _, dep := range graph.directDependents(from) {
			if _, marked := cascade[dep]; marked {
				continue
			}
			if !graph.starvedBy(from, dep, layout.Ready) {
				continue
			}
			cascade[dep] = fmt.Sprintf("upstream %s failed without output", d.Name)
			p.logger.Info("dependent will be skipped", "module", dep, "upstream", d.Name)
			queue = append(queue, dep)
		}
	}
}

// resolveParams pregunta por cada Choice del módulo. Timeout, respuesta vacía
// o inválida dejan el valor por defecto.
func (p *PipelineOrchestrator) resolveParams(ctx context.Context, d domain.ModuleDescriptor, params domain.Params) domain.Params {
	if p.operator == nil {
		return params
	}
	for _, key := range d.ChoiceKeys() {
		opts := d.Choices[key]
		def := params.Get(key, opts[0])

		entries := make([]ui.MenuEntry, len(opts))
		for i, opt := range opts {
			entries[i] = ui.MenuEntry{Key: fmt.Sprint(i + 1), Label: opt}
		}
		p.presenter.Menu(fmt.Sprintf("%s %s", d.Name, key), entries)

		q := fmt.Sprintf("%s %s [%s] (default %s):", d.Name, key, strings.Join(opts, "/"), def)
		answer, err := p.operator.Prompt(ctx, q, p.promptTimeout)
		if err != nil {
			if errors.IsTimeout(err) {
				p.presenter.Info(fmt.Sprintf("no answer, using %s=%s", key, def))
			}
			params[key] = def
			continue
		}
		choice, ok := pickChoice(answer, opts)
		if !ok {
			if strings.TrimSpace(answer) != "" {
				p.presenter.Warning(fmt.Sprintf("invalid %s %q, using %s", key, answer, def))
			}
			choice = def
		}
		params[key] = choice
	}
	return params
}

// pickChoice acepta la opción por nombre o por su número en el menú.
func pickChoice(answer string, opts []string) (string, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false
	}
	for i, opt := range opts {
		if strings.EqualFold(answer, opt) || answer == fmt.Sprint(i+1) {
			return opt, true
		}
	}
	return "", false
}

func (p *PipelineOrchestrator) finish(o domain.ModuleOutcome) {
	reason := ""
	if o.Reason != domain.ReasonNone {
		reason = o.Reason.String()
	}
	p.presenter.FinishModule(ui.ModuleResult{
		Name:     o.Name,
		Status:   ui.ParseStatus(o.Status.String()),
		Reason:   reason,
		ExitCode: o.ExitCode,
		Duration: o.Duration,
		Detail:   o.Detail,
	})
}
