package service

import "sync"

// userLocks serializes read-modify-write cycles per user. The progress store
// offers no compare-and-swap, so two concurrent events for the same player
// must not interleave between read and write. Locks for different users are
// independent; cross-player events proceed in parallel.
//
// Entries are never evicted. The map is bounded by the number of distinct
// players seen by this process, which is fine at expected cardinality.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) get(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}
