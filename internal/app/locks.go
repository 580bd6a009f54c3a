/**
 * @description
 * Per-website locking. A scheduled pass and a manual trigger (or a manual
 * operator action) may overlap in time; serializing on the website id keeps
 * suspend/disable at-most-once and the reminder throttle accurate.
 */
package app

import "sync"

// keyedMutex hands out one mutex per key. Entries are kept for the lifetime of
// the process; the key space is the set of monitored websites, which is small.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for the given key and returns the unlock function.
func (k *keyedMutex) lock(key string) func() {
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
