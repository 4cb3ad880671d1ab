// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

/*
Package entitylock serializes mutations on a single entity.

Each work is the unit of serialization: concurrent lifecycle transitions and
like toggles on the same entity id are linearized through a keyed lock, while
requests on different entities proceed independently with no shared lock.

Architecture:

  - Registry: A mutex-guarded map of per-key semaphores, reference-counted so
    idle keys are removed immediately instead of accumulating.
  - Acquire: Honors the caller's context deadline — a request never blocks
    indefinitely waiting for a busy entity.

The registry serializes writers within one process. Cross-instance safety is
layered on top by status-guarded UPDATEs in the stores.
*/
package entitylock

import (
	"context"
	"sync"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
)

// Registry hands out per-key exclusive locks.
//
// The zero value is not usable; construct with [NewRegistry].
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// entry is a single-slot semaphore plus a reference count of waiters.
type entry struct {
	slot chan struct{}
	refs int
}

// NewRegistry creates an empty lock registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Acquire takes the exclusive lock for key, blocking until the lock is free
// or the context is done.
//
// # Returns
//   - release: Must be called exactly once to free the lock.
//   - error: Timeout when the caller's deadline expired while waiting.
func (registry *Registry) Acquire(ctx context.Context, key string) (release func(), err error) {
	registry.mu.Lock()
	e, found := registry.entries[key]
	if !found {
		e = &entry{slot: make(chan struct{}, 1)}
		registry.entries[key] = e
	}
	e.refs++
	registry.mu.Unlock()

	select {
	case e.slot <- struct{}{}:
		return func() {
			<-e.slot
			registry.unref(key, e)
		}, nil
	case <-ctx.Done():
		registry.unref(key, e)
		return nil, apperr.Timeout(ctx.Err())
	}
}

// unref drops one reference and removes the key once nobody holds or waits on it.
func (registry *Registry) unref(key string, e *entry) {
	registry.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(registry.entries, key)
	}
	registry.mu.Unlock()
}

// Len reports the number of keys currently held or contended.
func (registry *Registry) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.entries)
}
