// internal/control/listener.go
package control

import (
	"fmt"
	"sync"
	"time"

	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
	"vajra/internal/platform/ui"
)

const (
	DefaultTrigger        = "00"
	DefaultMenuTimeout    = 5 * time.Second
	DefaultSampleInterval = 100 * time.Millisecond
)

// ListenerOptions configura el Listener.
type ListenerOptions struct {
	Console   *Console
	State     *RuntimeState
	Presenter ui.Presenter
	Logger    logx.Logger

	// Trigger es la línea que abre el menú de control
	Trigger string

	// MenuTimeout cierra el menú sin cambios si el operador no elige
	MenuTimeout time.Duration

	// SampleInterval acota cuánto retiene la entrada cada muestreo
	SampleInterval time.Duration
}

// Listener es el canal de control en segundo plano: un único goroutine por
// run que detecta el trigger, muestra el menú y traduce la elección a una
// transición de RuntimeState. Nunca toca el proceso hijo: el bucle del plan
// aplica la decisión en su siguiente tick.
type Listener struct {
	console     *Console
	state       *RuntimeState
	presenter   ui.Presenter
	logger      logx.Logger
	trigger     string
	menuTimeout time.Duration
	sample      time.Duration

	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewListener crea un listener sin arrancarlo.
func NewListener(opts ListenerOptions) *Listener {
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.Logger == nil {
		opts.Logger = logx.Discard()
	}
	if opts.Trigger == "" {
		opts.Trigger = DefaultTrigger
	}
	if opts.MenuTimeout <= 0 {
		opts.MenuTimeout = DefaultMenuTimeout
	}
	if opts.SampleInterval <= 0 {
		opts.SampleInterval = DefaultSampleInterval
	}
	return &Listener{
		console:     opts.Console,
		state:       opts.State,
		presenter:   opts.Presenter,
		logger:      opts.Logger.With("component", "control"),
		trigger:     opts.Trigger,
		menuTimeout: opts.MenuTimeout,
		sample:      opts.SampleInterval,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Trigger devuelve la secuencia que abre el menú.
func (l *Listener) Trigger() string { return l.trigger }

// Start arranca el goroutine de escucha. Llamadas repetidas no hacen nada.
func (l *Listener) Start() {
	l.startOnce.Do(func() {
		l.logger.Debug("control listener started", "trigger", l.trigger)
		go l.run()
	})
}

// Stop detiene el listener y espera a que su goroutine termine.
func (l *Listener) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
	// never started: nothing to wait for
	l.startOnce.Do(func() { close(l.done) })
	<-l.done
}

func (l *Listener) run() {
	defer close(l.done)
	for {
		select {
		case <-l.stop:
			return
		case <-l.console.EOF():
			l.logger.Debug("operator input closed, control listener exiting")
			return
		default:
		}

		l.console.sample(l.stop, l.sample, l.handle)
	}
}

// handle corre con la entrada reservada. El trigger abre el menú; p, r, s y
// q se aplican directamente; el resto se ignora.
func (l *Listener) handle(line string) {
	if line == l.trigger {
		l.menu()
		return
	}
	if action := ParseAction(line); action != ActionReturn {
		l.apply(action)
	}
}

// menu se llama con la entrada ya reservada, así que ningún prompt puede
// robar la respuesta.
func (l *Listener) menu() {
	snap := l.state.Snapshot()
	l.presenter.ControlMenu(ui.ControlInfo{
		Module:  snap.Name,
		Phase:   string(snap.Phase),
		Timeout: l.menuTimeout,
	})

	line, err := l.console.next(l.stop, l.menuTimeout)
	if err != nil {
		if errors.IsTimeout(err) {
			l.presenter.Info("control menu closed, scan continues")
		}
		return
	}

	action := ParseAction(line)
	if action == ActionReturn {
		l.presenter.Info("returning to scan")
		return
	}
	l.apply(action)
}

func (l *Listener) apply(action Action) {
	snap, err := l.state.Request(action)
	if err != nil {
		l.logger.Debug("control action rejected", "action", action, "error", err.Error())
		l.presenter.Warning(fmt.Sprintf("cannot %s: %v", action, err))
		return
	}
	l.logger.Info("control action accepted", "action", action, "module", snap.Name)
	l.presenter.Info(describe(action, snap))
}

func describe(a Action, snap Snapshot) string {
	name := snap.Name
	if name == "" {
		name = "scan"
	}
	switch a {
	case ActionPause:
		return fmt.Sprintf("pausing %s", name)
	case ActionResume:
		return fmt.Sprintf("resuming %s", name)
	case ActionSkip:
		return fmt.Sprintf("skipping %s", name)
	case ActionQuit:
		return "quitting after the current module is stopped"
	default:
		return string(a)
	}
}
