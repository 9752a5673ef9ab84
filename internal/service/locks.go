package service

import "sync"

// KeyLocks serializes mutations per business key (plate or inventory item).
// Two near-simultaneous authorizations for the same plate take the same
// mutex, so neither can act on a stale balance or session read. Keys are a
// handful of plates and items at a time; entries are never evicted.
type KeyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyLocks() *KeyLocks {
	return &KeyLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock func.
func (k *KeyLocks) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
