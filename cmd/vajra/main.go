// cmd/vajra/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"vajra/internal/adapters/output"
	"vajra/internal/control"
	"vajra/internal/core/domain"
	"vajra/internal/core/ports"
	"vajra/internal/core/usecases"
	"vajra/internal/modules"
	"vajra/internal/platform/config"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
	"vajra/internal/platform/registry"
	"vajra/internal/platform/ui"
	"vajra/internal/supervisor"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Códigos de salida
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Config: defaults -> YAML -> ENV -> flags
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try: vajra -h for help")
		return exitUsage
	}
	if cfg.ShowHelp {
		config.PrintHelp()
	}
	if cfg.PrintVersion {
		config.PrintVersion(version, commit, date)
	}

	// 2. Logger y presenter. Con la UI pretty el log solo muestra avisos
	// salvo que se pida debug.
	logger := logx.NewWithLevel(logx.ParseLevel(cfg.LogLevel))
	mode := ui.ParseUIMode(cfg.Output.UI)
	if mode == ui.UIModePretty && logx.ParseLevel(cfg.LogLevel) == logx.LevelInfo {
		logger.SetLevel(logx.LevelWarn)
	}
	presenter := ui.New(mode)
	defer presenter.Close()

	logger.Info("VAJRA starting",
		"version", version,
		"commit", commit,
		"date", date,
		"config", cfg.ConfigPath,
	)

	// 3. Módulos desde el registry con las rutas y timeouts configurados
	mods, err := buildModules(cfg, logger)
	if err != nil {
		logger.Err(err, "phase", "module-build")
		presenter.Error(err.Error())
		return exitUsage
	}

	if cfg.CheckOnly {
		return checkTools(mods)
	}

	presenter.Banner()
	reportMissingTools(presenter, logger, modules.Preflight(mods))

	// 4. Contexto con señales para un cierre limpio
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	// 5. Consola única del operador: menú inicial, prompts y canal de control
	console := control.NewConsole(os.Stdin, presenter)
	defer console.Close()

	planner := usecases.NewPlanner(mods, logger)
	if err := askMissing(ctx, &cfg, console, presenter, planner.Modules()); err != nil {
		logger.Err(err, "phase", "menu")
		presenter.Error(err.Error())
		if ctx.Err() != nil || errors.IsCanceled(err) {
			return exitInterrupted
		}
		return exitUsage
	}

	set, err := usecases.ResolveTargets(cfg.Core.Target)
	if err != nil {
		logger.Err(err, "phase", "targets")
		presenter.Error(err.Error())
		return exitUsage
	}

	// 6. Supervisor, estado compartido y listener de control
	state := control.NewRuntimeState()
	if controlEnabled(cfg.Runtime.Control) {
		listener := control.NewListener(control.ListenerOptions{
			Console:     console,
			State:       state,
			Presenter:   presenter,
			Logger:      logger,
			Trigger:     cfg.Runtime.Trigger,
			MenuTimeout: cfg.Runtime.MenuTimeout,
		})
		listener.Start()
		defer listener.Stop()
	} else {
		logger.Debug("control listener disabled", "mode", cfg.Runtime.Control)
	}

	orch := usecases.NewPipelineOrchestrator(usecases.PipelineOrchestratorOptions{
		Modules:       mods,
		Launcher:      supervisor.New(supervisor.Options{Logger: logger}),
		State:         state,
		Operator:      console,
		Bridge:        usecases.NewBridge(logger),
		Presenter:     presenter,
		Logger:        logger,
		PollInterval:  cfg.Runtime.PollInterval,
		Grace:         cfg.Runtime.Grace,
		PromptTimeout: cfg.Runtime.PromptTimeout,
	})

	runner := usecases.NewScanRunner(usecases.ScanRunnerOptions{
		Planner:      planner,
		Orchestrator: orch,
		Aggregator: usecases.NewAggregator(usecases.AggregatorOptions{
			Writer:  output.NewJSONRenderer(),
			Version: version,
			Logger:  logger,
		}),
		Renderers: []ports.ReportRenderer{output.NewHTMLRenderer()},
		OutputDir: cfg.Output.Dir,
		Trigger:   cfg.Runtime.Trigger,
		Presenter: presenter,
		Logger:    logger,
	})

	// 7. Ejecución secuencial de los targets
	reports, err := runner.Run(ctx, set, cfg.Core.Modules, usecases.PlanOptions{
		Report:     cfg.Core.Report,
		Unattended: cfg.Core.Unattended,
		Params: map[domain.ModuleID]domain.Params{
			modules.IDNmap: {modules.ParamScan: cfg.Nmap.Scan},
		},
	})
	if err != nil {
		logger.Err(err, "phase", "plan")
		presenter.Error(err.Error())
		return exitUsage
	}

	// 8. Salidas por stdout
	code := exitOK
	for _, rep := range reports {
		if rep.Err != nil {
			code = exitFailure
			continue
		}
		if err := writeOutputs(cfg, rep.Document); err != nil {
			logger.Err(err, "phase", "output", "target", rep.Target.Value)
			code = exitFailure
		}
	}

	logger.Info("VAJRA finished", "targets", len(reports), "requested", len(set.Targets))

	if ctx.Err() != nil {
		return exitInterrupted
	}
	return code
}

// buildModules instancia los módulos registrados aplicando tools y timeouts.
func buildModules(cfg config.Config, logger logx.Logger) ([]ports.Module, error) {
	reg := registry.Global()
	configs, unknown := cfg.ModuleConfigs(func(name string) (domain.ModuleID, bool) {
		d, ok := reg.Lookup(name)
		return d.ID, ok
	})
	for _, name := range unknown {
		logger.Warn("configuration for unknown module ignored", "module", name)
	}

	mods, err := reg.Build(configs, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build modules: %w", err)
	}
	if len(mods) == 0 {
		return nil, fmt.Errorf("no modules registered")
	}
	return mods, nil
}

// checkTools imprime qué binarios faltan. Sale con 1 si alguno no tiene
// alternativa nativa.
func checkTools(mods []ports.Module) int {
	missing := modules.Preflight(mods)
	if len(missing) == 0 {
		fmt.Println("all tools found")
		return exitOK
	}
	code := exitOK
	for _, m := range missing {
		note := ""
		if m.Fallback {
			note = " (native fallback available)"
		} else {
			code = exitFailure
		}
		fmt.Printf("missing %-10s %s%s\n", m.Name, m.Binary, note)
	}
	return code
}

func reportMissingTools(presenter ui.Presenter, logger logx.Logger, missing []modules.Missing) {
	for _, m := range missing {
		logger.Debug("tool not in PATH", "module", m.Name, "binary", m.Binary, "fallback", m.Fallback)
		if m.Fallback {
			presenter.Info(fmt.Sprintf("%s not found, %s will use its native client", m.Binary, m.Name))
			continue
		}
		presenter.Warning(fmt.Sprintf("%s not found, %s will fail to launch", m.Binary, m.Name))
	}
}

// controlEnabled decide si arranca el listener según --control.
func controlEnabled(mode string) bool {
	switch mode {
	case config.ControlForce:
		return true
	case config.ControlOff:
		return false
	default:
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
}

// writeOutputs vuelca por stdout lo que piden --table y --json.
func writeOutputs(cfg config.Config, doc *domain.ResultDocument) error {
	if doc == nil {
		return nil
	}
	if cfg.Output.Table {
		if err := output.OutputTable(os.Stdout, doc); err != nil {
			return fmt.Errorf("table output: %w", err)
		}
	}
	if cfg.Output.JSON {
		if err := output.OutputJSON(os.Stdout, doc, true); err != nil {
			return fmt.Errorf("json output: %w", err)
		}
	}
	return nil
}

// rootContextWithSignals crea el contexto raíz cancelado por SIGINT/SIGTERM.
// El orquestador trata la cancelación como un quit: termina el módulo en
// curso y aun así agrega lo que haya.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanupCancel := func() {
		signal.Stop(ch)
		baseCancel()
	}
	return base, cleanupCancel
}
