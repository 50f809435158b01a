// internal/supervisor/native.go
package supervisor

import (
	"context"
	"sync"
	"time"

	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
)

// nativeProcess ejecuta un ports.NativeFunc en una goroutine. Pause y Resume
// son cooperativos: la función se detiene en su siguiente Checkpoint.
type nativeProcess struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	paused   bool
	resumeCh chan struct{}
	err      error
	code     int

	termOnce sync.Once
}

func startNative(parent context.Context, cmd ports.Command) *nativeProcess {
	ctx, cancel := context.WithCancel(parent)
	p := &nativeProcess{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		err := cmd.Native(ctx, p.checkpoint)
		code := 0
		switch {
		case err == nil:
		case ctx.Err() != nil:
			code = -1
		default:
			code = 1
		}
		p.mu.Lock()
		p.err = err
		p.code = code
		p.mu.Unlock()
		cancel()
		close(p.done)
	}()
	return p
}

func (p *nativeProcess) checkpoint() error {
	for {
		if p.ctx.Err() != nil {
			return errors.Wrap(errors.ErrCanceled, "native module terminated")
		}
		p.mu.Lock()
		if !p.paused {
			p.mu.Unlock()
			return nil
		}
		ch := p.resumeCh
		p.mu.Unlock()

		select {
		case <-ch:
		case <-p.ctx.Done():
		}
	}
}

// PID es 0: el módulo corre dentro de VAJRA.
func (p *nativeProcess) PID() int { return 0 }

func (p *nativeProcess) Done() <-chan struct{} { return p.done }

func (p *nativeProcess) Poll() (bool, int) {
	select {
	case <-p.done:
		p.mu.Lock()
		defer p.mu.Unlock()
		return true, p.code
	default:
		return false, 0
	}
}

func (p *nativeProcess) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused {
		p.paused = true
		p.resumeCh = make(chan struct{})
	}
	return nil
}

func (p *nativeProcess) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.paused = false
		close(p.resumeCh)
	}
	return nil
}

// Terminate cancela el contexto y espera como mucho grace. Una función que
// ignore su contexto se abandona: el proceso se considera terminado igual.
func (p *nativeProcess) Terminate(grace time.Duration) error {
	p.termOnce.Do(func() {
		p.cancel()
		select {
		case <-p.done:
		case <-time.After(grace):
		}
	})
	return nil
}

func (p *nativeProcess) Detail() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err.Error()
	}
	return ""
}
