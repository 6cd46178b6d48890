// Package breaker protects the market-data upstream with a circuit breaker.
// After a run of consecutive failures the circuit opens and requests fail
// fast until a cooldown elapses; a success in half-open state closes it.
package breaker

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// State represents the current state of the circuit breaker
type State int

// Circuit breaker states
const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Tripped, requests fail fast
	StateHalfOpen              // Cooldown elapsed, probing with live traffic
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// ErrOpen is returned while the circuit is open.
var ErrOpen = errors.New("market data temporarily unavailable")

// Breaker is a consecutive-failure circuit breaker.
type Breaker struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration
	state     State
	failures  int
	openedAt  time.Time
}

// New creates a Breaker that opens after threshold consecutive failures and
// stays open for cooldown.
func New(threshold int, cooldown time.Duration) *Breaker {
	if threshold < 1 {
		threshold = 1
	}
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		state:     StateClosed,
	}
}

// Allow reports whether a request may proceed. While open and inside the
// cooldown it returns ErrOpen; after the cooldown the breaker transitions to
// half-open and lets one request probe the upstream.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if time.Since(b.openedAt) < b.cooldown {
			return ErrOpen
		}
		b.state = StateHalfOpen
		logrus.Info("Circuit breaker half-open, probing market data upstream")
	}
	return nil
}

// RecordSuccess resets the failure count and closes the circuit.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateClosed {
		logrus.Info("Circuit breaker closed")
	}
	b.state = StateClosed
	b.failures = 0
}

// RecordFailure counts a failure and trips the circuit at the threshold. A
// failed half-open probe re-opens immediately.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.threshold {
		if b.state != StateOpen {
			logrus.Warnf("Circuit breaker tripped after %d consecutive failures", b.failures)
		}
		b.state = StateOpen
		b.openedAt = time.Now()
	}
}

// CurrentState returns the breaker state for status reporting.
func (b *Breaker) CurrentState() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}
