// Package keymutex provides a mutex keyed by string, used to serialize
// label purchase and status refresh attempts per shipment id.
package keymutex

import "sync"

// KeyMutex is a set of mutexes addressed by key. Entries are reference
// counted and removed once the last holder unlocks, so the map does not
// grow with the number of distinct keys ever seen.
type KeyMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{entries: make(map[string]*entry)}
}

// Lock blocks until the mutex for key is held by the caller.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// TryLock attempts to acquire the mutex for key without blocking.
// Returns true if the lock was acquired.
func (k *KeyMutex) TryLock(key string) bool {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	if e.mu.TryLock() {
		return true
	}

	k.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()
	return false
}

// Unlock releases the mutex for key. It must only be called by a holder
// that previously acquired it via Lock or a successful TryLock.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic("keymutex: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
