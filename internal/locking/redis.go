package locking

import (
	"context"
	"sync"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"

	"github.com/yangsb/account-ledger/internal/apperrors"
)

const redisKeyPrefix = "lock:account:"

// RedisManager implements Manager on top of redsync (RedLock). Use it when
// multiple processes share one ledger store: the per-account serialization
// guarantee then has to hold across processes, not just goroutines.
type RedisManager struct {
	rs   *redsync.Redsync
	opts Options
}

// NewRedisManager creates a Redis-backed lock manager from an existing client.
func NewRedisManager(client *goredislib.Client, opts Options) *RedisManager {
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = DefaultOptions().WaitTimeout
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultOptions().RetryInterval
	}
	if opts.Expiry <= 0 {
		opts.Expiry = DefaultOptions().Expiry
	}
	return &RedisManager{
		rs:   redsync.New(goredis.NewPool(client)),
		opts: opts,
	}
}

var _ Manager = (*RedisManager)(nil)

// Acquire grants the key's lease or fails with apperrors.ErrLockTimeout once
// the retry budget derived from WaitTimeout/RetryInterval is spent. The lock
// auto-expires after Expiry so a crashed holder cannot deadlock the key.
func (m *RedisManager) Acquire(ctx context.Context, key string) (Lease, error) {
	tries := int(m.opts.WaitTimeout/m.opts.RetryInterval) + 1
	mutex := m.rs.NewMutex(redisKeyPrefix+key,
		redsync.WithExpiry(m.opts.Expiry),
		redsync.WithTries(tries),
		redsync.WithRetryDelay(m.opts.RetryInterval),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrLockTimeout, err)
	}
	return &redisLease{mutex: mutex}, nil
}

type redisLease struct {
	once  sync.Once
	mutex *redsync.Mutex
}

// Release unlocks the distributed mutex. Safe to call more than once; an
// already-expired lock is not an error worth surfacing to the caller, who is
// past the critical section either way.
func (l *redisLease) Release() {
	l.once.Do(func() {
		// Detached context: the lease must be released even when the request
		// context is already canceled.
		_, _ = l.mutex.UnlockContext(context.Background())
	})
}
