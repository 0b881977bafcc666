package auth

import "sync"

// recordLocks serializes credential and profile mutations per record id so
// two concurrent edits of the same record cannot interleave and drop each
// other's writes. Lock entries are never evicted; the set of records edited
// in one process lifetime is tiny.
type recordLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newRecordLocks() *recordLocks {
	return &recordLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the mutex for id and returns the matching unlock function.
func (l *recordLocks) lock(id int64) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
