// Package collection implements the persisted collection controller: a named
// array of records loaded once from a domain.RecordStore, held in memory as
// the source of truth and written through to the store after every mutation.
//
// Mutations update memory first and then write through. A failed write is
// logged, marks the collection dirty and is retried by Flush; memory is never
// rolled back.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

var (
	ErrNotFound    = errors.New("collection: record not found")
	ErrDuplicateID = errors.New("collection: duplicate id")
)

const DefaultWriteTimeout = 3 * time.Second

type State int32

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

type Config[T any] struct {
	// Seed returns the default dataset written on first run. A nil Seed
	// means the collection starts empty and nothing is bootstrapped.
	Seed func() []T

	// Codec defaults to ArrayCodec.
	Codec Codec[T]

	// NotFound is returned by Find, Update and Delete for unknown ids.
	NotFound error

	Logger       *zap.Logger
	WriteTimeout time.Duration

	// OnDirty is called after a failed write. It must not block.
	OnDirty func(key string)
}

type Collection[K comparable, T domain.Entity[K, T]] struct {
	key          string
	store        domain.RecordStore
	codec        Codec[T]
	seed         func() []T
	notFound     error
	logger       *zap.Logger
	writeTimeout time.Duration
	onDirty      func(key string)

	initOnce sync.Once
	ready    chan struct{}
	state    atomic.Int32

	mu      sync.RWMutex
	items   []T
	version uint64

	writeMu sync.Mutex
	dirty   atomic.Bool
}

func New[K comparable, T domain.Entity[K, T]](key string, store domain.RecordStore, cfg Config[T]) *Collection[K, T] {
	c := &Collection[K, T]{
		key:          key,
		store:        store,
		codec:        cfg.Codec,
		seed:         cfg.Seed,
		notFound:     cfg.NotFound,
		logger:       cfg.Logger,
		writeTimeout: cfg.WriteTimeout,
		onDirty:      cfg.OnDirty,
		ready:        make(chan struct{}),
		items:        []T{},
	}
	if c.codec == nil {
		c.codec = ArrayCodec[T]{}
	}
	if c.notFound == nil {
		c.notFound = ErrNotFound
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("collection").With(zap.String("key", key))
	if c.writeTimeout <= 0 {
		c.writeTimeout = DefaultWriteTimeout
	}
	return c
}

func (c *Collection[K, T]) Key() string { return c.key }

func (c *Collection[K, T]) State() State { return State(c.state.Load()) }

// Dirty reports whether memory holds changes the store has not accepted yet.
func (c *Collection[K, T]) Dirty() bool { return c.dirty.Load() }

// Initialize loads the collection once per process. Absent or undecodable
// values are replaced by the seed, which is written through. A failed read
// falls back to the seed in memory only, so a transient store error never
// overwrites stored data. Initialize never fails.
func (c *Collection[K, T]) Initialize(ctx context.Context) {
	c.initOnce.Do(func() {
		c.state.Store(int32(StateLoading))

		items, bootstrap := c.load(ctx)

		c.mu.Lock()
		c.items = items
		c.version++
		version := c.version
		c.mu.Unlock()

		c.state.Store(int32(StateReady))
		close(c.ready)

		if bootstrap {
			c.persist(ctx, items, version)
		}
	})
}

func (c *Collection[K, T]) load(ctx context.Context) ([]T, bool) {
	readCtx, cancel := context.WithTimeout(ctx, c.writeTimeout)
	defer cancel()

	raw, err := c.store.Get(readCtx, c.key)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		c.logger.Info("no stored value, seeding defaults")
		return c.seedItems(), c.seed != nil
	case err != nil:
		c.logger.Error("failed to read collection, using defaults", zap.Error(err))
		return c.seedItems(), false
	}

	items, err := c.codec.Decode(raw)
	if err == nil {
		if id, dup := findDuplicate[K](items); dup {
			err = fmt.Errorf("%w: %v", ErrDuplicateID, id)
		}
	}
	if err != nil {
		c.logger.Warn("stored value is corrupted, reseeding", zap.Error(err))
		return c.seedItems(), c.seed != nil
	}

	c.logger.Debug("collection loaded", zap.Int("count", len(items)))
	return items, false
}

func (c *Collection[K, T]) seedItems() []T {
	if c.seed == nil {
		return []T{}
	}
	return cloneAll(c.seed())
}

// List returns a deep copy of the current records. It never blocks on
// loading; before the collection is ready it returns an empty slice.
func (c *Collection[K, T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.items)
}

func (c *Collection[K, T]) Find(id K) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.GetID() == id {
			return item.Clone(), nil
		}
	}
	var zero T
	return zero, c.notFound
}

// Mutate computes the next array from a copy of the current one, publishes it
// and writes it through. Calls made before the collection is ready wait for
// the load to finish or for ctx to end.
func (c *Collection[K, T]) Mutate(ctx context.Context, fn func(current []T) ([]T, error)) ([]T, error) {
	if err := c.awaitReady(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	next, err := fn(cloneAll(c.items))
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if next == nil {
		next = []T{}
	}
	if id, dup := findDuplicate[K](next); dup {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrDuplicateID, id)
	}
	c.items = next
	c.version++
	version := c.version
	c.mu.Unlock()

	c.persist(ctx, next, version)
	return cloneAll(next), nil
}

// Add appends the record produced by build, which receives the current records.
func (c *Collection[K, T]) Add(ctx context.Context, build func(current []T) (T, error)) (T, error) {
	var added T
	_, err := c.Mutate(ctx, func(current []T) ([]T, error) {
		item, err := build(current)
		if err != nil {
			return nil, err
		}
		added = item
		return append(current, item), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return added.Clone(), nil
}

// Update replaces the record with the given id by fn's result.
func (c *Collection[K, T]) Update(ctx context.Context, id K, fn func(T) (T, error)) (T, error) {
	var updated T
	_, err := c.Mutate(ctx, func(current []T) ([]T, error) {
		for i, item := range current {
			if item.GetID() != id {
				continue
			}
			next, err := fn(item)
			if err != nil {
				return nil, err
			}
			if next.GetID() != id {
				return nil, fmt.Errorf("collection %s: update must not change id %v", c.key, id)
			}
			current[i] = next
			updated = next
			return current, nil
		}
		return nil, c.notFound
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated.Clone(), nil
}

func (c *Collection[K, T]) Delete(ctx context.Context, id K) error {
	_, err := c.Mutate(ctx, func(current []T) ([]T, error) {
		out := make([]T, 0, len(current))
		found := false
		for _, item := range current {
			if item.GetID() == id {
				found = true
				continue
			}
			out = append(out, item)
		}
		if !found {
			return nil, c.notFound
		}
		return out, nil
	})
	return err
}

// Reset empties the collection and removes its key from the store.
func (c *Collection[K, T]) Reset(ctx context.Context) error {
	if err := c.awaitReady(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.items = []T{}
	c.version++
	c.mu.Unlock()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.writeTimeout)
	defer cancel()

	if err := c.store.Remove(writeCtx, c.key); err != nil {
		c.markDirty(err)
		return nil
	}
	c.dirty.Store(false)
	return nil
}

// Flush writes the current records if a previous write failed.
func (c *Collection[K, T]) Flush(ctx context.Context) error {
	if !c.dirty.Load() || c.State() != StateReady {
		return nil
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.RLock()
	items := c.items
	version := c.version
	c.mu.RUnlock()

	if err := c.write(ctx, items); err != nil {
		return fmt.Errorf("collection %s: flush: %w", c.key, err)
	}

	c.mu.RLock()
	current := c.version
	c.mu.RUnlock()
	if current == version {
		c.dirty.Store(false)
	}
	c.logger.Info("pending changes flushed", zap.Int("count", len(items)))
	return nil
}

// persist writes the snapshot taken at version unless a newer mutation has
// been published meanwhile; that mutation writes its own snapshot.
func (c *Collection[K, T]) persist(ctx context.Context, items []T, version uint64) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.RLock()
	stale := version != c.version
	c.mu.RUnlock()
	if stale {
		return
	}

	if err := c.write(ctx, items); err != nil {
		c.markDirty(err)
		return
	}
	c.dirty.Store(false)
}

// write must be called with writeMu held. The caller's cancellation does not
// abort a write already started; only the write timeout does.
func (c *Collection[K, T]) write(ctx context.Context, items []T) error {
	raw, err := c.codec.Encode(items)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.writeTimeout)
	defer cancel()

	return c.store.Set(writeCtx, c.key, raw)
}

func (c *Collection[K, T]) markDirty(err error) {
	c.dirty.Store(true)
	c.logger.Warn("write-through failed, collection marked dirty", zap.Error(err))
	if c.onDirty != nil {
		c.onDirty(c.key)
	}
}

func (c *Collection[K, T]) awaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	default:
	}

	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("collection %s: waiting for load: %w", c.key, ctx.Err())
	}
}

func cloneAll[K comparable, T domain.Entity[K, T]](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func findDuplicate[K comparable, T domain.Entity[K, T]](items []T) (K, bool) {
	seen := make(map[K]struct{}, len(items))
	for _, item := range items {
		id := item.GetID()
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	var zero K
	return zero, false
}

// NextID returns the identity for a new record of an integer-keyed
// collection: one past the largest id in use, or 1 when empty.
func NextID[T domain.Entity[int, T]](items []T) int {
	next := 1
	for _, item := range items {
		if id := item.GetID(); id >= next {
			next = id + 1
		}
	}
	return next
}
