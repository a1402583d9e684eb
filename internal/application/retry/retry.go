// Package retry reintenta lecturas puras ante fallos transitorios de E/S.
// Las escrituras nunca pasan por aquí: reintentarlas sin clave de idempotencia
// podría duplicar efectos.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Alojamientos-api/internal/domain"
)

// Policy número de intentos y espera inicial (se duplica en cada intento).
type Policy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultPolicy tres intentos con 50ms, 100ms.
var DefaultPolicy = Policy{Attempts: 3, Backoff: 50 * time.Millisecond}

// Read ejecuta fn hasta Attempts veces mientras falle con domain.ErrTransientIO.
func Read[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	wait := p.Backoff
	var (
		out T
		err error
	)
	for i := 0; i < attempts; i++ {
		out, err = fn(ctx)
		if err == nil || !errors.Is(err, domain.ErrTransientIO) {
			return out, err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, errors.Join(domain.ErrTransientIO, ctx.Err())
		case <-time.After(wait):
		}
		wait *= 2
	}
	return out, err
}
