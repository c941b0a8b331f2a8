package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Flusher is a collection whose pending changes can be written again.
type Flusher interface {
	Key() string
	Dirty() bool
	Flush(ctx context.Context) error
}

type SyncJob struct {
	Key string
}

// SyncWorker retries failed write-throughs. Collections enqueue their key
// when a write fails; a periodic sweep also catches anything still dirty.
type SyncWorker struct {
	jobs     chan SyncJob
	interval time.Duration
	logger   *zap.Logger

	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration

	mu      sync.RWMutex
	targets map[string]Flusher

	wg sync.WaitGroup
}

func NewSyncWorker(interval time.Duration, logger *zap.Logger) *SyncWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncWorker{
		jobs:        make(chan SyncJob, 100),
		interval:    interval,
		logger:      logger.Named("sync"),
		maxAttempts: 5,
		baseDelay:   200 * time.Millisecond,
		maxDelay:    10 * time.Second,
		targets:     make(map[string]Flusher),
	}
}

// WithBackoff overrides the retry policy of a single job.
func (w *SyncWorker) WithBackoff(maxAttempts int, base, maxDelay time.Duration) *SyncWorker {
	w.maxAttempts = maxAttempts
	w.baseDelay = base
	w.maxDelay = maxDelay
	return w
}

func (w *SyncWorker) Register(targets ...Flusher) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, t := range targets {
		w.targets[t.Key()] = t
	}
}

func (w *SyncWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.logger.Info("sync worker started", zap.Duration("interval", w.interval))

		var tick <-chan time.Time
		if w.interval > 0 {
			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-tick:
				w.sweep(ctx)
			case <-ctx.Done():
				w.logger.Info("sync worker shutting down")
				return
			}
		}
	}()
}

// Wait blocks until the worker goroutine has returned.
func (w *SyncWorker) Wait() {
	w.wg.Wait()
}

// Enqueue never blocks; it is safe to call from a collection's dirty hook.
func (w *SyncWorker) Enqueue(key string) {
	select {
	case w.jobs <- SyncJob{Key: key}:
	default:
		w.logger.Warn("sync queue full, dropping job", zap.String("key", key))
	}
}

// FlushAll flushes every dirty collection once and joins the failures.
func (w *SyncWorker) FlushAll(ctx context.Context) error {
	var errs []error
	for _, t := range w.snapshot() {
		if !t.Dirty() {
			continue
		}
		if err := t.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Pending lists the keys of collections that are still dirty.
func (w *SyncWorker) Pending() []string {
	var keys []string
	for _, t := range w.snapshot() {
		if t.Dirty() {
			keys = append(keys, t.Key())
		}
	}
	return keys
}

func (w *SyncWorker) snapshot() []Flusher {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Flusher, 0, len(w.targets))
	for _, t := range w.targets {
		out = append(out, t)
	}
	return out
}

func (w *SyncWorker) processJob(ctx context.Context, job SyncJob) {
	w.mu.RLock()
	target, ok := w.targets[job.Key]
	w.mu.RUnlock()
	if !ok {
		w.logger.Warn("no collection registered for key", zap.String("key", job.Key))
		return
	}

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		if !target.Dirty() {
			return nil
		}
		if err := target.Flush(ctx); err != nil {
			w.logger.Warn("flush failed",
				zap.String("key", job.Key),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		w.logger.Info("collection synced", zap.String("key", job.Key), zap.Int("attempt", attempt))
		return nil
	}, w.policy(ctx))

	switch {
	case err == nil:
	case ctx.Err() != nil:
		w.logger.Debug("sync retry cancelled", zap.String("key", job.Key))
	default:
		w.logger.Error("giving up on collection until next sweep",
			zap.String("key", job.Key),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
	}
}

// policy is exponential with jitter, capped at maxDelay, and stops after
// maxAttempts flushes or when ctx ends.
func (w *SyncWorker) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = w.baseDelay
	exp.MaxInterval = w.maxDelay
	exp.MaxElapsedTime = 0
	exp.Reset()

	retries := 0
	if w.maxAttempts > 1 {
		retries = w.maxAttempts - 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

func (w *SyncWorker) sweep(ctx context.Context) {
	for _, t := range w.snapshot() {
		if !t.Dirty() {
			continue
		}
		if err := t.Flush(ctx); err != nil {
			w.logger.Warn("sweep flush failed", zap.String("key", t.Key()), zap.Error(err))
		}
	}
}
