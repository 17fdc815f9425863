package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
	"golang.org/x/sync/singleflight"
)

// ListKey is the cache key holding the serialized task list.
const ListKey = "tasks:list"

// Stats counts cache outcomes for List.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Errors uint64 `json:"errors"`
}

// CachedTaskStore decorates a store.TaskStore with a cache-aside task list.
type CachedTaskStore struct {
	next    store.TaskStore
	backend Backend
	ttl     time.Duration
	logger  *slog.Logger
	group   singleflight.Group

	// generation is bumped by every successful write. A list load only
	// caches its result if no write completed while it was running.
	generation atomic.Uint64

	hits   atomic.Uint64
	misses atomic.Uint64
	errors atomic.Uint64
}

// NewCachedTaskStore wraps next. Cached lists expire after ttl.
func NewCachedTaskStore(next store.TaskStore, backend Backend, ttl time.Duration, logger *slog.Logger) *CachedTaskStore {
	if next == nil {
		panic("next store cannot be nil")
	}
	if backend == nil {
		panic("cache backend cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CachedTaskStore{
		next:    next,
		backend: backend,
		ttl:     ttl,
		logger:  logger.With(slog.String("component", "task_cache")),
	}
}

var _ store.TaskStore = (*CachedTaskStore)(nil)

// List implements store.TaskStore.List
// Concurrent misses share a single query against the wrapped store.
func (c *CachedTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	data, found, err := c.backend.Get(ctx, ListKey)
	if err != nil {
		c.errors.Add(1)
		log.Warn("task list cache read failed", slog.String("error", redact.Error(err)))
	}
	if found {
		var tasks []domain.Task
		if err := json.Unmarshal(data, &tasks); err == nil && tasks != nil {
			c.hits.Add(1)
			log.Debug("task list cache hit", slog.Int("count", len(tasks)))
			return tasks, nil
		}
		c.errors.Add(1)
		log.Warn("discarding unreadable task list cache entry")
	}

	c.misses.Add(1)
	val, err, _ := c.group.Do(ListKey, func() (any, error) {
		// Shared loads are detached from the first caller's cancellation.
		loadCtx := context.WithoutCancel(ctx)
		gen := c.generation.Load()
		tasks, err := c.next.List(loadCtx)
		if err != nil {
			return nil, err
		}
		c.store(loadCtx, log, gen, tasks)
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}

	tasks := val.([]domain.Task)
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out, nil
}

// store caches tasks unless a write has completed since gen was read.
func (c *CachedTaskStore) store(ctx context.Context, log *slog.Logger, gen uint64, tasks []domain.Task) {
	if c.generation.Load() != gen {
		log.Debug("skipping cache write for task list loaded before a write")
		return
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		c.errors.Add(1)
		log.Warn("failed to encode task list for cache", slog.String("error", err.Error()))
		return
	}
	if err := c.backend.Set(ctx, ListKey, data, c.ttl); err != nil {
		c.errors.Add(1)
		log.Warn("task list cache write failed", slog.String("error", redact.Error(err)))
		return
	}
	// A write that finished between the check above and Set has already
	// deleted the key; drop the entry we just wrote on top of it.
	if c.generation.Load() != gen {
		c.deleteList(ctx, log)
	}
}

// Create implements store.TaskStore.Create
func (c *CachedTaskStore) Create(ctx context.Context, task *domain.Task) (int64, error) {
	id, err := c.next.Create(ctx, task)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx)
	return id, nil
}

// Update implements store.TaskStore.Update
func (c *CachedTaskStore) Update(ctx context.Context, task *domain.Task) (int64, error) {
	n, err := c.next.Update(ctx, task)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx)
	return n, nil
}

// Delete implements store.TaskStore.Delete
func (c *CachedTaskStore) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := c.next.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx)
	return n, nil
}

// Count implements store.TaskStore.Count
func (c *CachedTaskStore) Count(ctx context.Context) (int64, error) {
	return c.next.Count(ctx)
}

// Stats returns a snapshot of the cache counters.
func (c *CachedTaskStore) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errors.Load(),
	}
}

func (c *CachedTaskStore) invalidate(ctx context.Context) {
	c.generation.Add(1)
	// Forget any in-flight load so it cannot be shared with later callers.
	c.group.Forget(ListKey)
	c.deleteList(ctx, logger.FromContextOrDefault(ctx, c.logger))
}

func (c *CachedTaskStore) deleteList(ctx context.Context, log *slog.Logger) {
	if err := c.backend.Delete(ctx, ListKey); err != nil {
		c.errors.Add(1)
		log.Warn("task list cache invalidation failed", slog.String("error", redact.Error(err)))
	}
}
