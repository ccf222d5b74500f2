// Package cache memoizes next-guess decisions keyed by the full play history.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"crosswarped.com/wordlecalc/pkg/primitives"
	"golang.org/x/sync/singleflight"
)

// Store is a persistent key-value store. Get reports ok=false for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is a Store backed by a map. The zero value is ready to use.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string]string)
	}
	s.m[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// HistoryCache maps a play history to the guess chosen for it.
//
// Store failures never surface from Get: a broken or corrupt store behaves like an
// empty one. Concurrent Compute calls for the same history share one computation.
type HistoryCache struct {
	store     Store
	namespace string
	logger    *slog.Logger
	group     singleflight.Group
}

// Option configures a HistoryCache.
type Option func(*HistoryCache)

// WithNamespace prefixes every key, so caches built from different word lists can
// share one store.
func WithNamespace(ns string) Option {
	return func(c *HistoryCache) {
		c.namespace = ns
	}
}

// WithLogger sets the logger for store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *HistoryCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a HistoryCache over store.
func New(store Store, opts ...Option) *HistoryCache {
	c := &HistoryCache{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HistoryCache) key(h primitives.History) string {
	if c.namespace == "" {
		return h.Key()
	}
	return c.namespace + "|" + h.Key()
}

// Get returns the cached guess for h, if any.
func (c *HistoryCache) Get(ctx context.Context, h primitives.History) (primitives.Word, bool) {
	start := time.Now()
	w, ok := c.read(ctx, c.key(h))
	recordGetLatency(ctx, time.Since(start), ok)
	if ok {
		recordHit(ctx)
	} else {
		recordMiss(ctx)
	}
	return w, ok
}

// read looks key up without counting a hit or miss. Store failures and corrupt values
// are logged and reported as absent.
func (c *HistoryCache) read(ctx context.Context, key string) (primitives.Word, bool) {
	v, ok, err := c.store.Get(ctx, key)
	if err != nil {
		recordStoreError(ctx, "get")
		c.logger.Warn("history cache read failed, treating as miss",
			slog.String("key", key), slog.String("error", err.Error()))
		return primitives.Word{}, false
	}
	if !ok {
		return primitives.Word{}, false
	}
	w, err := primitives.ParseWord(v)
	if err != nil {
		recordStoreError(ctx, "decode")
		c.logger.Warn("history cache holds a corrupt value, treating as miss",
			slog.String("key", key), slog.String("value", v))
		return primitives.Word{}, false
	}
	return w, true
}

// Put stores guess for h. The write goes straight to the store.
func (c *HistoryCache) Put(ctx context.Context, h primitives.History, guess primitives.Word) error {
	if err := c.store.Put(ctx, c.key(h), guess.String()); err != nil {
		recordStoreError(ctx, "put")
		return err
	}
	return nil
}

// Invalidate removes the entry for h, if present.
func (c *HistoryCache) Invalidate(ctx context.Context, h primitives.History) error {
	if err := c.store.Delete(ctx, c.key(h)); err != nil {
		recordStoreError(ctx, "delete")
		return err
	}
	recordInvalidation(ctx)
	return nil
}

// GetOrCompute returns the cached guess for h, or calls Compute.
func (c *HistoryCache) GetOrCompute(
	ctx context.Context,
	h primitives.History,
	compute func(context.Context) (primitives.Word, error),
) (guess primitives.Word, hit bool, err error) {
	if w, ok := c.Get(ctx, h); ok {
		return w, true, nil
	}
	return c.Compute(ctx, h, compute)
}

// Compute is for callers whose Get for h just missed. It calls compute and stores the
// result, running at most one compute per history across concurrent callers.
// hit is false only for the caller whose compute ran; callers that received another
// caller's result, or found the guess stored meanwhile, get true. A failed store write
// is logged and does not fail the call.
func (c *HistoryCache) Compute(
	ctx context.Context,
	h primitives.History,
	compute func(context.Context) (primitives.Word, error),
) (guess primitives.Word, hit bool, err error) {
	key := c.key(h)
	ran := false
	v, err, _ := c.group.Do(key, func() (any, error) {
		ran = true
		// Another caller may have stored it since our Get.
		if w, ok := c.read(ctx, key); ok {
			return result{guess: w, cached: true}, nil
		}
		w, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Put(ctx, h, w); err != nil {
			c.logger.Warn("history cache write failed",
				slog.String("key", key), slog.String("error", err.Error()))
		}
		return result{guess: w}, nil
	})
	if err != nil {
		return primitives.Word{}, false, err
	}
	r := v.(result)
	return r.guess, r.cached || !ran, nil
}

type result struct {
	guess  primitives.Word
	cached bool
}
