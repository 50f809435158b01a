// internal/supervisor/process.go
package supervisor

import (
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"vajra/internal/platform/errors"
	"vajra/internal/platform/logx"
)

// execProcess es un módulo externo en ejecución.
type execProcess struct {
	cmd    *exec.Cmd
	stdout *os.File
	stderr *tailBuffer
	logger logx.Logger

	done chan struct{}

	mu       sync.Mutex
	exitCode int
	waitErr  error
	paused   bool

	termOnce sync.Once
}

func (p *execProcess) wait() {
	err := p.cmd.Wait()
	if p.stdout != nil {
		p.stdout.Close()
	}

	code := 0
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			code = ee.ExitCode()
		} else {
			code = -1
		}
	}

	p.mu.Lock()
	p.exitCode = code
	p.waitErr = err
	p.paused = false
	p.mu.Unlock()
	close(p.done)

	p.logger.Debug("child exited", "exit_code", code)
}

func (p *execProcess) PID() int { return p.cmd.Process.Pid }

func (p *execProcess) Done() <-chan struct{} { return p.done }

func (p *execProcess) Poll() (bool, int) {
	select {
	case <-p.done:
		p.mu.Lock()
		defer p.mu.Unlock()
		return true, p.exitCode
	default:
		return false, 0
	}
}

func (p *execProcess) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Pause suspende el grupo del hijo sin perder estado.
func (p *execProcess) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused || p.exited() {
		return nil
	}
	if err := suspend(p.cmd.Process); err != nil {
		return err
	}
	p.paused = true
	p.logger.Debug("child paused")
	return nil
}

// Resume reanuda un hijo suspendido.
func (p *execProcess) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused || p.exited() {
		p.paused = false
		return nil
	}
	if err := resume(p.cmd.Process); err != nil {
		return err
	}
	p.paused = false
	p.logger.Debug("child resumed")
	return nil
}

// Terminate pide la salida, espera como mucho grace, fuerza con kill y
// espera otra vez de forma acotada. Llamadas repetidas no hacen nada.
func (p *execProcess) Terminate(grace time.Duration) error {
	var err error
	p.termOnce.Do(func() {
		if p.exited() {
			return
		}
		p.mu.Lock()
		wasPaused := p.paused
		p.mu.Unlock()

		if sigErr := interrupt(p.cmd.Process, wasPaused); sigErr != nil && !errors.Is(sigErr, os.ErrProcessDone) {
			p.logger.Warn("terminate signal failed, forcing kill", "error", sigErr.Error())
		}

		select {
		case <-p.done:
			return
		case <-time.After(grace):
		}

		p.logger.Warn("child ignored termination, killing", "grace", grace.String())
		if killErr := kill(p.cmd.Process); killErr != nil && !errors.Is(killErr, os.ErrProcessDone) {
			err = errors.Wrap(killErr, "kill child")
		}

		select {
		case <-p.done:
		case <-time.After(grace):
			// considered gone regardless; the wait goroutine finishes on its own
			p.logger.Warn("child still not reaped after kill")
		}
	})
	return err
}

func (p *execProcess) Detail() string {
	p.mu.Lock()
	waitErr := p.waitErr
	p.mu.Unlock()

	var parts []string
	if waitErr != nil {
		parts = append(parts, waitErr.Error())
	}
	if tail := strings.TrimSpace(p.stderr.String()); tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ": ")
}
