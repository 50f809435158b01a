// internal/core/usecases/scan_runner.go
package usecases

import (
	"context"
	"time"

	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/platform/logx"
	"vajra/internal/platform/ui"
	"vajra/internal/store"
)

// ScanRunnerOptions configura el ScanRunner.
type ScanRunnerOptions struct {
	Planner      *Planner
	Orchestrator *PipelineOrchestrator
	Aggregator   *Aggregator

	// Renderers generan los informes legibles cuando el plan los pide
	Renderers []ports.ReportRenderer

	// OutputDir es la raíz de resultados (default "Results")
	OutputDir string

	// Trigger se muestra al operador al empezar cada target
	Trigger string

	Presenter ui.Presenter
	Logger    logx.Logger

	// Now se sustituye en tests
	Now func() time.Time
}

// TargetReport es lo que produjo un target.
type TargetReport struct {
	Target   domain.Target
	Layout   store.Layout
	Run      RunResult
	Document *domain.ResultDocument
	Warnings []string
	Err      error
}

// ScanRunner recorre los targets en secuencia: plan, ejecución, agregado e
// informe. El fallo de un target no afecta a los siguientes; un quit sí.
type ScanRunner struct {
	planner      *Planner
	orchestrator *PipelineOrchestrator
	aggregator   *Aggregator
	renderers    []ports.ReportRenderer
	outputDir    string
	trigger      string
	presenter    ui.Presenter
	logger       logx.Logger
	now          func() time.Time
}

// NewScanRunner crea un ScanRunner.
func NewScanRunner(opts ScanRunnerOptions) *ScanRunner {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "Results"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ScanRunner{
		planner:      opts.Planner,
		orchestrator: opts.Orchestrator,
		aggregator:   opts.Aggregator,
		renderers:    opts.Renderers,
		outputDir:    opts.OutputDir,
		trigger:      opts.Trigger,
		presenter:    opts.Presenter,
		logger:       opts.Logger.With("component", "scan_runner"),
		now:          opts.Now,
	}
}

// Run planifica una vez la selección y la ejecuta sobre cada target. Solo
// devuelve error si el plan no se puede construir.
func (r *ScanRunner) Run(ctx context.Context, set TargetSet, selection string, opts PlanOptions) ([]TargetReport, error) {
	if len(set.Targets) == 0 {
		return nil, domain.ErrNoTargets
	}
	for _, w := range set.Warnings {
		r.presenter.Warning(w)
	}

	plan, err := r.planner.Plan(selection, set.Targets[0], opts)
	if err != nil {
		return nil, err
	}
	for _, w := range plan.Warnings {
		r.presenter.Warning(w)
	}
	if plan.Empty() {
		r.logger.Info("no modules selected, nothing to do")
		r.presenter.Info("no modules selected, nothing to do")
		return nil, nil
	}

	reports := make([]TargetReport, 0, len(set.Targets))
	for i, target := range set.Targets {
		if ctx.Err() != nil || r.orchestrator.State().QuitRequested() {
			r.logger.Info("quit requested, remaining targets not scanned", "remaining", len(set.Targets)-i)
			break
		}
		rep := r.runTarget(ctx, set.Group, plan.WithTarget(target), i+1, len(set.Targets))
		reports = append(reports, rep)
	}
	return reports, nil
}

func (r *ScanRunner) runTarget(ctx context.Context, group string, plan domain.ExecutionPlan, index, total int) TargetReport {
	rep := TargetReport{Target: plan.Target}
	logger := r.logger.With("target", plan.Target.Value)

	layout, err := store.New(r.outputDir, group, plan.Target, r.now())
	if err != nil {
		rep.Err = err
		logger.Err(err, "phase", "layout")
		r.presenter.Error(err.Error())
		return rep
	}
	rep.Layout = layout

	names := make([]string, len(plan.Steps))
	for i, s := range plan.Steps {
		names[i] = s.Module.Name
	}
	r.presenter.Start(ui.ScanInfo{
		Target:     plan.Target.Value,
		Kind:       plan.Target.Kind.String(),
		Directory:  layout.Root,
		Modules:    names,
		Unattended: plan.Unattended,
		Trigger:    r.trigger,
		Index:      index,
		Total:      total,
	})

	rep.Run = r.orchestrator.Run(ctx, plan, layout)

	// el agregado corre siempre, también tras un quit o una señal
	aggCtx := context.WithoutCancel(ctx)
	rep.Document, rep.Warnings = r.aggregator.Build(aggCtx, layout, plan.Target, rep.Run)
	for _, w := range rep.Warnings {
		logger.Warn("aggregation", "warning", w)
	}

	reportPath := ""
	if plan.Report {
		for _, rd := range r.renderers {
			path := layout.ReportPath(plan.Target)
			if err := rd.Render(rep.Document, path); err != nil {
				logger.Err(err, "phase", "report", "renderer", rd.Name())
				r.presenter.Warning("report " + rd.Name() + ": " + err.Error())
				continue
			}
			reportPath = path
		}
	}

	counts := rep.Run.Counts()
	r.presenter.Finish(ui.ScanStats{
		Target:    plan.Target.Value,
		Duration:  rep.Run.FinishedAt.Sub(rep.Run.StartedAt),
		Succeeded: counts[domain.StatusSucceeded],
		Failed:    counts[domain.StatusFailed],
		Skipped:   counts[domain.StatusSkipped],
		Aborted:   counts[domain.StatusAborted],
		NotRun:    counts[domain.StatusNotRun],
		Sections:  rep.Document.SectionCount(),
		FinalJSON: layout.FinalJSON(),
		Report:    reportPath,
		Quit:      rep.Run.Aborted,
	})
	return rep
}
