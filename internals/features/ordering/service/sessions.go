package service

import (
	"sync"
	"time"
)

// Sessions menyimpan ListAdapter per (user, list) supaya history undo bertahan antar request.
type Sessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*sessionEntry
	now     func() time.Time
}

type sessionEntry struct {
	mu       sync.Mutex
	adapter  *ListAdapter
	lastUsed time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Sessions{ttl: ttl, entries: map[string]*sessionEntry{}, now: time.Now}
}

// Acquire mengunci session untuk key; panggil release setelah selesai.
// fresh=true jika adapter baru dibuat (belum pernah Load).
func (s *Sessions) Acquire(key string, factory func() *ListAdapter) (adapter *ListAdapter, fresh bool, release func()) {
	s.mu.Lock()
	s.evictLocked()
	e, ok := s.entries[key]
	if !ok {
		e = &sessionEntry{adapter: factory()}
		s.entries[key] = e
	}
	e.lastUsed = s.now()
	s.mu.Unlock()

	e.mu.Lock()
	return e.adapter, !ok, func() {
		s.mu.Lock()
		e.lastUsed = s.now()
		s.mu.Unlock()
		e.mu.Unlock()
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sessions) evictLocked() {
	cutoff := s.now().Add(-s.ttl)
	for k, e := range s.entries {
		if e.lastUsed.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}
