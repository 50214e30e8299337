package locking

import (
	"context"
	"sync"
	"time"

	"github.com/yangsb/account-ledger/internal/apperrors"
)

// LocalManager implements Manager with in-process per-key mutexes. Entries are
// refcounted so keys that no one holds or waits on are reclaimed.
type LocalManager struct {
	opts Options

	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int // holders + waiters, guarded by LocalManager.mu
}

// NewLocalManager creates a process-local lock manager.
func NewLocalManager(opts Options) *LocalManager {
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = DefaultOptions().WaitTimeout
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultOptions().RetryInterval
	}
	return &LocalManager{
		opts:  opts,
		locks: make(map[string]*keyLock),
	}
}

var _ Manager = (*LocalManager)(nil)

// Acquire grants the key's lease, waiting up to WaitTimeout with periodic
// re-attempts. On timeout or context cancellation no lease is granted and the
// caller must not proceed.
func (m *LocalManager) Acquire(ctx context.Context, key string) (Lease, error) {
	kl := m.retain(key)

	if kl.mu.TryLock() {
		return m.newLease(key, kl), nil
	}

	deadline := time.NewTimer(m.opts.WaitTimeout)
	defer deadline.Stop()
	retry := time.NewTicker(m.opts.RetryInterval)
	defer retry.Stop()

	for {
		select {
		case <-retry.C:
			if kl.mu.TryLock() {
				return m.newLease(key, kl), nil
			}
		case <-deadline.C:
			m.release(key, kl)
			return nil, apperrors.Wrapf(apperrors.ErrLockTimeout, nil,
				"account %s is busy, gave up after %s", key, m.opts.WaitTimeout)
		case <-ctx.Done():
			m.release(key, kl)
			return nil, apperrors.Wrap(apperrors.ErrLockTimeout, ctx.Err())
		}
	}
}

func (m *LocalManager) retain(key string) *keyLock {
	m.mu.Lock()
	defer m.mu.Unlock()
	kl, ok := m.locks[key]
	if !ok {
		kl = &keyLock{}
		m.locks[key] = kl
	}
	kl.refs++
	return kl
}

func (m *LocalManager) release(key string, kl *keyLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(m.locks, key)
	}
}

func (m *LocalManager) newLease(key string, kl *keyLock) Lease {
	l := &localLease{}
	l.release = func() {
		kl.mu.Unlock()
		m.release(key, kl)
	}
	return l
}

type localLease struct {
	once    sync.Once
	release func()
}

// Release ends the lease. Safe to call more than once.
func (l *localLease) Release() {
	l.once.Do(l.release)
}
