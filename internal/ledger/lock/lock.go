// Package lock serialises ledger mutations per user. RedisLocker coordinates
// across replicas; KeyedMutex covers single-process deployments and tests.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"

	"propaudit/pkg/platform/sentinel"
)

const (
	defaultTTL       = 10 * time.Second
	defaultRetryWait = 50 * time.Millisecond
	defaultRetries   = 20
	keyPrefix        = "ledger:lock:"
)

// RedisLocker obtains short-lived Redis locks with bounded retries.
type RedisLocker struct {
	client  *redislock.Client
	ttl     time.Duration
	wait    time.Duration
	retries int
}

type Option func(*RedisLocker)

// WithTTL sets how long a lock survives if its holder dies.
func WithTTL(ttl time.Duration) Option {
	return func(l *RedisLocker) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithRetry sets the linear backoff interval and attempt limit.
func WithRetry(wait time.Duration, retries int) Option {
	return func(l *RedisLocker) {
		if wait > 0 {
			l.wait = wait
		}
		if retries >= 0 {
			l.retries = retries
		}
	}
}

func NewRedis(client redislock.RedisClient, opts ...Option) *RedisLocker {
	l := &RedisLocker{
		client:  redislock.New(client),
		ttl:     defaultTTL,
		wait:    defaultRetryWait,
		retries: defaultRetries,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	lk, err := l.client.Obtain(ctx, keyPrefix+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.wait), l.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: lock %s held elsewhere", sentinel.ErrConflict, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: obtain lock: %v", sentinel.ErrUnavailable, err)
	}
	return func(ctx context.Context) error {
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release lock: %w", err)
		}
		return nil
	}, nil
}

// KeyedMutex is an in-process lock per key. Entries are dropped once no
// goroutine holds or waits on them.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

func (k *KeyedMutex) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{sem: make(chan struct{}, 1)}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func(context.Context) error {
			once.Do(func() {
				<-e.sem
				k.unref(key, e)
			})
			return nil
		}, nil
	case <-ctx.Done():
		k.unref(key, e)
		return nil, ctx.Err()
	}
}

func (k *KeyedMutex) unref(key string, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
}

// size reports tracked keys; used by tests to check cleanup.
func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
