// Package retry implementa reintentos con backoff exponencial acotado como una
// máquina de estados explícita:
//
//	idle → retrying(attempt, nextDelay) → succeeded | exhausted
//
// El tiempo se inyecta con Clock para poder probarla sin temporizadores reales.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// Phase es la fase actual de la máquina de estados.
type Phase int

const (
	Idle Phase = iota
	Retrying
	Succeeded
	Exhausted
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Retrying:
		return "retrying"
	case Succeeded:
		return "succeeded"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Policy define el backoff: la espera tras el fallo n es
// min(Max, Initial × Multiplier^n), hasta MaxRetries reintentos.
type Policy struct {
	Initial    time.Duration
	Multiplier float64
	Max        time.Duration
	MaxRetries int
}

// DefaultPolicy: 500ms × 1.5^n con tope de 5s y 12 reintentos (≈ 1 minuto).
var DefaultPolicy = Policy{
	Initial:    500 * time.Millisecond,
	Multiplier: 1.5,
	Max:        5 * time.Second,
	MaxRetries: 12,
}

// Delay devuelve la espera que sigue al fallo número failure (desde 1).
func (p Policy) Delay(failure int) time.Duration {
	mult := p.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(p.Initial) * math.Pow(mult, float64(failure))
	if p.Max > 0 && d > float64(p.Max) {
		return p.Max
	}
	return time.Duration(d)
}

// State es una instantánea de la máquina.
type State struct {
	Phase     Phase
	Attempt   int           // fallos registrados hasta ahora
	NextDelay time.Duration // espera antes del próximo intento (solo en Retrying)
	LastErr   error
}

// Backoff es la máquina de estados. No es segura para uso concurrente.
type Backoff struct {
	policy Policy
	state  State
}

// NewBackoff crea una máquina en estado Idle.
func NewBackoff(p Policy) *Backoff {
	return &Backoff{policy: p}
}

// State devuelve el estado actual.
func (b *Backoff) State() State { return b.state }

// Fail registra un intento fallido. Pasa a Retrying con la próxima espera o a
// Exhausted si ya se agotaron los reintentos. En estados terminales no cambia.
func (b *Backoff) Fail(err error) State {
	if b.state.Phase == Succeeded || b.state.Phase == Exhausted {
		return b.state
	}
	b.state.Attempt++
	b.state.LastErr = err
	if b.state.Attempt > b.policy.MaxRetries {
		b.state.Phase = Exhausted
		b.state.NextDelay = 0
		return b.state
	}
	b.state.Phase = Retrying
	b.state.NextDelay = b.policy.Delay(b.state.Attempt)
	return b.state
}

// Succeed registra un intento exitoso.
func (b *Backoff) Succeed() State {
	if b.state.Phase == Exhausted {
		return b.state
	}
	b.state.Phase = Succeeded
	b.state.NextDelay = 0
	b.state.LastErr = nil
	return b.state
}

// Reset vuelve a Idle.
func (b *Backoff) Reset() {
	b.state = State{}
}

// Clock abstrae el paso del tiempo.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// SystemClock usa el reloj real.
type SystemClock struct{}

// After delega en time.After.
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// ErrExhausted envuelve el último error cuando se agotan los reintentos.
var ErrExhausted = errors.New("reintentos agotados")

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marca un error como no reintentable: Do lo devuelve de inmediato.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Options ajusta Do.
type Options struct {
	Clock Clock
	// Retryable decide si un error merece reintento; nil = todos (salvo Permanent).
	Retryable func(error) bool
	// OnRetry se invoca antes de cada espera.
	OnRetry func(State)
}

// Do ejecuta op hasta que tenga éxito, devuelva un error no reintentable, se
// agoten los reintentos o se cancele ctx.
func Do(ctx context.Context, p Policy, opts Options, op func(context.Context) error) error {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	b := NewBackoff(p)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := op(ctx)
		if err == nil {
			b.Succeed()
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if opts.Retryable != nil && !opts.Retryable(err) {
			return err
		}
		st := b.Fail(err)
		if st.Phase == Exhausted {
			return fmt.Errorf("%w tras %d intentos: %w", ErrExhausted, st.Attempt, err)
		}
		if opts.OnRetry != nil {
			opts.OnRetry(st)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(st.NextDelay):
		}
	}
}
