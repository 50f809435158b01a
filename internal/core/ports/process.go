// internal/core/ports/process.go
package ports

import (
	"context"
	"strings"
	"time"
)

// Checkpoint lo llaman las funciones nativas entre pasos: bloquea mientras
// el proceso está pausado y devuelve error si fue terminado.
type Checkpoint func() error

// NativeFunc es un módulo ejecutado dentro del proceso de VAJRA en lugar de
// un binario externo.
type NativeFunc func(ctx context.Context, checkpoint Checkpoint) error

// Command describe una ejecución de módulo.
type Command struct {
	// Module es el nombre del módulo (logs y errores)
	Module string

	Path string
	Args []string
	Env  []string

	// StdoutPath redirige stdout a un archivo (vacío = descartar)
	StdoutPath string

	// Native sustituye al binario cuando no es nil
	Native NativeFunc
}

// IsNative indica si el comando se ejecuta dentro del proceso.
func (c Command) IsNative() bool { return c.Native != nil }

// String devuelve una representación legible del comando para logs.
func (c Command) String() string {
	if c.IsNative() {
		return c.Module + " (native)"
	}
	parts := append([]string{c.Path}, c.Args...)
	s := strings.Join(parts, " ")
	if c.StdoutPath != "" {
		s += " > " + c.StdoutPath
	}
	return s
}

// Process es el handle de un módulo en ejecución. Pause/Resume son una
// capacidad de plataforma: si no existe devuelven errors.ErrUnsupported y el
// orquestador se limita a no avanzar.
type Process interface {
	PID() int

	// Done se cierra cuando el proceso termina
	Done() <-chan struct{}

	// Poll es la comprobación no bloqueante de liveness
	Poll() (exited bool, exitCode int)

	Pause() error
	Resume() error

	// Terminate pide la terminación y espera como mucho grace antes de forzarla.
	// Es idempotente.
	Terminate(grace time.Duration) error

	// Detail devuelve información de diagnóstico tras terminar (stderr, error)
	Detail() string
}

// Launcher arranca comandos. Lo implementa el supervisor.
type Launcher interface {
	Start(ctx context.Context, cmd Command) (Process, error)
}
