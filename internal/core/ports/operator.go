// internal/core/ports/operator.go
package ports

import (
	"context"
	"time"
)

// Operator es el canal de preguntas al operador. Las implementaciones deben
// garantizar exclusión mutua con el listener de control sobre la misma entrada.
type Operator interface {
	// Prompt muestra question y devuelve la línea respondida. Si vence
	// timeout devuelve "" y errors.ErrTimeout.
	Prompt(ctx context.Context, question string, timeout time.Duration) (string, error)
}
