// Package locking grants mutually-exclusive, timeout-bounded access to a
// logical resource key (an account number). At most one live lease exists per
// key; keys are independent, so operations on different accounts never
// contend. A process-local implementation is sufficient for a single-process
// deployment; the Redis-backed one preserves the serialization guarantee when
// several processes share one store.
package locking

import (
	"context"
	"time"
)

// Lease is the right, held by exactly one caller at a time, to mutate the
// state guarded by a key. Release is idempotent and must be called on every
// exit path of the critical section.
type Lease interface {
	Release()
}

// Manager hands out leases. Acquire blocks until the current holder's lease
// ends or the configured wait bound elapses, whichever comes first; on timeout
// it returns apperrors.ErrLockTimeout without granting access.
type Manager interface {
	Acquire(ctx context.Context, key string) (Lease, error)
}

// Options bound the wait for a lease.
type Options struct {
	// WaitTimeout is the total time a caller may wait for a busy key.
	WaitTimeout time.Duration
	// RetryInterval is the cadence of re-attempts while waiting. A periodic
	// re-attempt rather than a single blocking wait keeps the waiter
	// responsive to context cancellation and makes liveness observable.
	RetryInterval time.Duration
	// Expiry is how long an externalized lock is held before auto-expiring.
	// Ignored by the process-local manager, whose leases cannot be orphaned.
	Expiry time.Duration
}

// DefaultOptions returns wait bounds suited to short critical sections.
func DefaultOptions() Options {
	return Options{
		WaitTimeout:   5 * time.Second,
		RetryInterval: 50 * time.Millisecond,
		Expiry:        10 * time.Second,
	}
}
