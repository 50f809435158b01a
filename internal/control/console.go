// internal/control/console.go
package control

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"vajra/internal/core/ports"
	"vajra/internal/platform/errors"
	"vajra/internal/platform/ui"
)

// ErrConsoleClosed se devuelve al leer de una consola cerrada.
var ErrConsoleClosed = errors.New("console closed")

// Console es el dueño único de la entrada del operador. Una goroutine
// convierte la entrada en líneas; quien quiera leerlas debe tener inputMu,
// de modo que un prompt del orquestador y el listener de control nunca
// compiten por la misma línea.
type Console struct {
	presenter ui.Presenter

	lines  chan string
	eof    chan struct{}
	closed chan struct{}

	closeOnce sync.Once
	inputMu   sync.Mutex
}

var _ ports.Operator = (*Console)(nil)

// NewConsole empieza a leer r en segundo plano.
func NewConsole(r io.Reader, presenter ui.Presenter) *Console {
	if presenter == nil {
		presenter = ui.NewNoopPresenter()
	}
	c := &Console{
		presenter: presenter,
		lines:     make(chan string, 16),
		eof:       make(chan struct{}),
		closed:    make(chan struct{}),
	}
	go c.read(r)
	return c
}

func (c *Console) read(r io.Reader) {
	defer close(c.eof)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		select {
		case c.lines <- strings.TrimSpace(sc.Text()):
		case <-c.closed:
			return
		}
	}
}

// Close deja de entregar líneas. La goroutine lectora termina cuando la
// entrada llega a EOF.
func (c *Console) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// EOF se cierra cuando la entrada se agota.
func (c *Console) EOF() <-chan struct{} { return c.eof }

// Prompt implementa ports.Operator. Bloquea el muestreo del listener hasta
// que el operador responde, vence timeout o se cancela ctx.
func (c *Console) Prompt(ctx context.Context, question string, timeout time.Duration) (string, error) {
	c.inputMu.Lock()
	defer c.inputMu.Unlock()

	c.presenter.Prompt(question)
	return c.next(ctx.Done(), timeout)
}

// tryLock intenta reservar la entrada sin bloquear.
func (c *Console) tryLock() bool { return c.inputMu.TryLock() }

func (c *Console) unlock() { c.inputMu.Unlock() }

// next lee una línea. El llamador debe tener inputMu. timeout <= 0 espera
// indefinidamente.
func (c *Console) next(cancel <-chan struct{}, timeout time.Duration) (string, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}

	select {
	case line := <-c.lines:
		return line, nil
	case <-expired:
		return "", errors.Wrap(errors.ErrTimeout, "operator input")
	case <-cancel:
		return "", errors.ErrCanceled
	case <-c.closed:
		return "", ErrConsoleClosed
	case <-c.eof:
		// lines queued before EOF are still delivered
		select {
		case line := <-c.lines:
			return line, nil
		default:
			return "", io.EOF
		}
	}
}

// sample espera una línea durante d como mucho y llama a handle sin soltar
// la entrada, así lo que handle lea después tampoco lo ve un prompt. Si un
// prompt tiene la entrada reservada no lee nada.
func (c *Console) sample(stop <-chan struct{}, d time.Duration, handle func(line string)) bool {
	if !c.tryLock() {
		select {
		case <-stop:
		case <-time.After(d):
		}
		return false
	}
	defer c.unlock()

	line, err := c.next(stop, d)
	if err != nil {
		return false
	}
	handle(line)
	return true
}
