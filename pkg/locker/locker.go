// Package locker provides per-key mutual exclusion. Every state mutating
// call against a position, auction or pool account must run inside the
// critical section of its key; check-then-mutate sequences never cross a
// lock release.
package locker

import "sync"

// Locker keyed mutex
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New new locker
func New() *Locker {
	return &Locker{
		locks: make(map[string]*entry),
	}
}

// Lock acquire the lock for key
func (l *Locker) Lock(key string) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

// Unlock release the lock for key
func (l *Locker) Unlock(key string) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if ok {
		e.refs--
		if e.refs <= 0 {
			delete(l.locks, key)
		}
	}
	l.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
