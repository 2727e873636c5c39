package dirstore

import (
	"runtime"
	"sync"
	"weak"
)

// pathLock serializes filesystem access to one physical path.
//
// Reads take the shared grant and may run concurrently with each
// other; writes and deletes take the exclusive grant. Every Directory
// handle pointing at the same path must share the same pathLock, so
// independently constructed handles never race on disk.
type pathLock struct {
	mu sync.RWMutex
}

// lockRegistry is the process-wide table mapping an absolute path to
// the single pathLock guarding it.
//
// Entries are weak so a lock is reclaimed once no Directory references
// it; a later re-open of the same path just allocates a fresh one.
// That is a memory-lifetime optimization only - correctness requires
// just that concurrently live handles share one lock, which the
// lookup-or-insert below guarantees.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[string]weak.Pointer[pathLock]
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{locks: make(map[string]weak.Pointer[pathLock])}
}

// locks is the default registry shared by all Directory handles in the
// process.
var locks = newLockRegistry()

// lockFor returns the shared lock for path, creating one if absent.
// The critical section covers lookup-or-insert only.
func (r *lockRegistry) lockFor(path string) *pathLock {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wp, ok := r.locks[path]; ok {
		if l := wp.Value(); l != nil {
			return l
		}
	}

	l := &pathLock{}
	r.locks[path] = weak.Make(l)

	// Prune the entry once the lock is collected. A fresh lock may
	// have replaced the dead entry by then, so only delete if the
	// stored pointer is still dead.
	runtime.AddCleanup(l, func(p string) {
		r.mu.Lock()
		defer r.mu.Unlock()

		if cur, ok := r.locks[p]; ok && cur.Value() == nil {
			delete(r.locks, p)
		}
	}, path)

	return l
}
