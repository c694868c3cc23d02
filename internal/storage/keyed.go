package storage

import "sync"

// keyedMutex hands out one mutex per string key so that read-modify-write
// sequences on the same (user, date) or date key serialize while distinct
// keys proceed in parallel. Mutexes are created on first use and kept for
// the provider's lifetime; the key space (users x dates in the active
// window) stays small.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Lock locks the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	m := k.get(key)
	m.Lock()
	return m.Unlock
}
