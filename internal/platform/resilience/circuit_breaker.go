package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreakerConfig mirrors the *_CIRCUIT_* environment settings.
// Zero values fall back to 3 failures, 30s open, 1 half-open probe.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 3
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 30 * time.Second
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = 1
	}
	return c
}

// CircuitBreaker fails fast once a dependency keeps failing. It never retries;
// while open, Guard returns ErrCircuitOpen without calling fn.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state    CircuitState
	failures int
	openedAt time.Time
	probes   int
	passed   int

	now      func() time.Time
	onChange func(from, to CircuitState)
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		state: CircuitStateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers fn to run after every transition, outside the lock.
func (b *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

func (b *CircuitBreaker) Enabled() bool {
	return b.cfg.Enabled
}

// Guard runs fn under the breaker. countsAsFailure decides which errors trip
// it; nil counts every error. A disabled breaker only runs fn.
func (b *CircuitBreaker) Guard(fn func() error, countsAsFailure func(error) bool) error {
	if !b.cfg.Enabled {
		return fn()
	}

	if err := b.enter(); err != nil {
		return err
	}

	err := fn()
	b.leave(err != nil && (countsAsFailure == nil || countsAsFailure(err)))
	return err
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) enter() error {
	b.mu.Lock()
	from := b.state

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		b.moveTo(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			b.mu.Unlock()
			b.notify(from, CircuitStateHalfOpen)
			return ErrCircuitOpen
		}
		b.probes++
	}

	to := b.state
	b.mu.Unlock()
	b.notify(from, to)
	return nil
}

func (b *CircuitBreaker) leave(failed bool) {
	b.mu.Lock()
	from := b.state

	switch b.state {
	case CircuitStateClosed:
		if !failed {
			b.failures = 0
			break
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		if failed {
			b.moveTo(CircuitStateOpen)
			break
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.moveTo(CircuitStateClosed)
		}
	case CircuitStateOpen:
		if failed {
			b.openedAt = b.now()
		}
	}

	to := b.state
	b.mu.Unlock()
	b.notify(from, to)
}

// moveTo resets the counters of the state being entered. Callers hold mu.
func (b *CircuitBreaker) moveTo(state CircuitState) {
	b.state = state
	b.probes = 0
	b.passed = 0
	switch state {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}

func (b *CircuitBreaker) notify(from, to CircuitState) {
	if from == to {
		return
	}
	b.mu.Lock()
	fn := b.onChange
	b.mu.Unlock()
	if fn != nil {
		fn(from, to)
	}
}
