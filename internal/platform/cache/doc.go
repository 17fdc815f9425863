// Package cache provides an optional Redis-backed cache-aside layer for the
// task list. CachedTaskStore decorates any store.TaskStore: List is served
// from the cache when possible and every successful write invalidates it.
// Cache failures never fail a request; the decorator falls back to the
// wrapped store.
package cache
