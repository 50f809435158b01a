// Package control holds the runtime state shared between the plan loop and
// the operator control listener, plus the listener itself.
package control

import (
	"strings"
	"sync"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
)

var (
	// ErrInvalidTransition indica una acción que no aplica al estado actual
	// (resume sin pausa, pause sobre un módulo ya pausado...).
	ErrInvalidTransition = errors.New("invalid runtime transition")

	// ErrNoActiveModule indica una acción de módulo sin módulo en curso.
	ErrNoActiveModule = errors.New("no module is running")

	// ErrStaleModule indica un handle que pertenece a un módulo anterior.
	ErrStaleModule = errors.New("stale module generation")
)

// Action es una orden del operador.
type Action string

const (
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionSkip   Action = "skip"
	ActionQuit   Action = "quit"
	ActionReturn Action = "return"
)

// ParseAction traduce una tecla del menú. Cualquier otra entrada vuelve a la
// ejecución sin cambios.
func ParseAction(s string) Action {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "pause":
		return ActionPause
	case "r", "resume":
		return ActionResume
	case "s", "skip":
		return ActionSkip
	case "q", "quit", "exit":
		return ActionQuit
	default:
		return ActionReturn
	}
}

// Phase es el estado visible del módulo en curso.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRunning    Phase = "running"
	PhasePaused     Phase = "paused"
	PhaseTerminated Phase = "terminated"
)

// Decision es lo que el bucle del plan debe aplicar en el siguiente tick.
// Prioridad: Quit, luego Skip, luego Paused.
type Decision struct {
	Quit   bool
	Skip   bool
	Paused bool
}

// Snapshot es una copia consistente del estado.
type Snapshot struct {
	Module     domain.ModuleID
	Name       string
	Generation uint64
	PID        int
	Phase      Phase
	Paused     bool
	Skip       bool
	Quit       bool
}

// RuntimeState es el único estado mutable compartido entre el bucle del plan
// y el listener. Todas las lecturas y escrituras pasan por mu.
type RuntimeState struct {
	mu     sync.Mutex
	module domain.ModuleID
	name   string
	gen    uint64
	pid    int
	active bool
	paused bool
	skip   bool
	quit   bool
}

// NewRuntimeState crea un estado sin módulo activo.
func NewRuntimeState() *RuntimeState {
	return &RuntimeState{}
}

// Begin entra en RUNNING para un módulo nuevo. Limpia pause y skip del módulo
// anterior; quit se conserva porque es terminal para todo el run.
func (s *RuntimeState) Begin(id domain.ModuleID, name string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.module = id
	s.name = name
	s.pid = 0
	s.active = true
	s.paused = false
	s.skip = false
	return s.gen
}

// Attach asocia el pid del hijo al módulo de la generación gen.
func (s *RuntimeState) Attach(gen uint64, pid int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active || gen != s.gen {
		return ErrStaleModule
	}
	s.pid = pid
	return nil
}

// End cierra el módulo de la generación gen.
func (s *RuntimeState) End(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.active = false
	s.pid = 0
	s.paused = false
	s.skip = false
}

// Request aplica una acción del operador según la máquina de estados:
//
//	RUNNING --pause--> PAUSED --resume--> RUNNING
//	RUNNING|PAUSED --skip--> TERMINATED(skip)
//	any --quit--> TERMINATED(quit)
//
// Repetir skip o quit no es un error.
func (s *RuntimeState) Request(a Action) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a {
	case ActionQuit:
		s.quit = true
		return s.snapshotLocked(), nil
	case ActionReturn:
		return s.snapshotLocked(), nil
	}

	if !s.active {
		return s.snapshotLocked(), ErrNoActiveModule
	}
	terminating := s.skip || s.quit

	switch a {
	case ActionSkip:
		s.skip = true
	case ActionPause:
		if terminating || s.paused {
			return s.snapshotLocked(), errors.Wrapf(ErrInvalidTransition, "pause while %s", s.phaseLocked())
		}
		s.paused = true
	case ActionResume:
		if terminating || !s.paused {
			return s.snapshotLocked(), errors.Wrapf(ErrInvalidTransition, "resume while %s", s.phaseLocked())
		}
		s.paused = false
	default:
		return s.snapshotLocked(), errors.Wrapf(ErrInvalidTransition, "unknown action %q", a)
	}
	return s.snapshotLocked(), nil
}

// Decide devuelve la decisión vigente para el módulo en curso.
func (s *RuntimeState) Decide() Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.quit:
		return Decision{Quit: true}
	case s.skip:
		return Decision{Skip: true}
	default:
		return Decision{Paused: s.paused}
	}
}

// QuitRequested indica si el operador pidió salir.
func (s *RuntimeState) QuitRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quit
}

// Snapshot devuelve una copia del estado.
func (s *RuntimeState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *RuntimeState) snapshotLocked() Snapshot {
	return Snapshot{
		Module:     s.module,
		Name:       s.name,
		Generation: s.gen,
		PID:        s.pid,
		Phase:      s.phaseLocked(),
		Paused:     s.paused,
		Skip:       s.skip,
		Quit:       s.quit,
	}
}

func (s *RuntimeState) phaseLocked() Phase {
	switch {
	case s.quit || (s.active && s.skip):
		return PhaseTerminated
	case !s.active:
		return PhaseIdle
	case s.paused:
		return PhasePaused
	default:
		return PhaseRunning
	}
}
