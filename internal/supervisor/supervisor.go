// Package supervisor runs one module at a time as a child process and
// mediates its lifecycle: start, poll, pause, resume and bounded terminate.
package supervisor

import (
	"context"
	"os"
	"os/exec"
	"time"

	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
)

// ErrLaunch marca un módulo que no pudo arrancar (binario ausente, no
// ejecutable, stdout no escribible). Es un fallo de módulo, nunca fatal.
var ErrLaunch = errors.New("module launch failed")

const (
	defaultStderrLimit = 8 * 1024
	defaultWaitDelay   = 2 * time.Second
)

// Options configura el Supervisor.
type Options struct {
	Logger logx.Logger

	// StderrLimit es cuántos bytes finales de stderr se conservan
	StderrLimit int

	// WaitDelay acota la espera de I/O tras la salida del hijo
	WaitDelay time.Duration
}

// Supervisor implementa ports.Launcher.
type Supervisor struct {
	logger      logx.Logger
	stderrLimit int
	waitDelay   time.Duration
}

var _ ports.Launcher = (*Supervisor)(nil)

// New crea un Supervisor.
func New(opts Options) *Supervisor {
	if opts.Logger == nil {
		opts.Logger = logx.Discard()
	}
	if opts.StderrLimit <= 0 {
		opts.StderrLimit = defaultStderrLimit
	}
	if opts.WaitDelay <= 0 {
		opts.WaitDelay = defaultWaitDelay
	}
	return &Supervisor{
		logger:      opts.Logger.With("component", "supervisor"),
		stderrLimit: opts.StderrLimit,
		waitDelay:   opts.WaitDelay,
	}
}

// Start lanza cmd. El hijo recibe stdin vacío para no competir con la
// consola del operador, y va en su propio grupo de procesos para que
// pause/terminate alcancen también a sus descendientes.
func (s *Supervisor) Start(ctx context.Context, cmd ports.Command) (ports.Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCanceled, cmd.Module)
	}
	if cmd.IsNative() {
		p := startNative(ctx, cmd)
		s.logger.Debug("native module started", "module", cmd.Module)
		return p, nil
	}
	if cmd.Path == "" {
		return nil, errors.Errorf("%w: %s: empty command path", ErrLaunch, cmd.Module)
	}

	c := exec.Command(cmd.Path, cmd.Args...)
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdin = nil
	c.WaitDelay = s.waitDelay
	setProcAttr(c)

	var stdout *os.File
	if cmd.StdoutPath != "" {
		f, err := os.Create(cmd.StdoutPath)
		if err != nil {
			return nil, errors.Errorf("%w: %s: open stdout: %w", ErrLaunch, cmd.Module, err)
		}
		stdout = f
		c.Stdout = f
	}
	stderr := newTailBuffer(s.stderrLimit)
	c.Stderr = stderr

	if err := c.Start(); err != nil {
		if stdout != nil {
			stdout.Close()
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			err = errors.Join(err, errors.ErrNotFound)
		}
		return nil, errors.Errorf("%w: %s: %w", ErrLaunch, cmd.Module, err)
	}

	p := &execProcess{
		cmd:    c,
		stdout: stdout,
		stderr: stderr,
		done:   make(chan struct{}),
		logger: s.logger.With("module", cmd.Module, "pid", c.Process.Pid),
	}
	go p.wait()

	s.logger.Debug("child started", "module", cmd.Module, "pid", c.Process.Pid, "cmd", cmd.String())
	return p, nil
}
