// Package keylock provides named exclusive locks for serializing mutations
// against individual records without contending across unrelated keys.
package keylock

import "sync"

// Table maps keys to lazily-created mutexes. Locks are never discarded;
// the key space here (sessions, characters) is bounded by process lifetime.
type Table struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTable creates an empty lock table.
func NewTable() *Table {
	return &Table{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the exclusive lock for key, blocking until it is free, and
// returns the corresponding unlock function.
func (t *Table) Lock(key string) (unlock func()) {
	t.mu.Lock()
	lock, ok := t.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[key] = lock
	}
	t.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
