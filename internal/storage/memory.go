package storage

import (
	"context"
	"sync"
)

// Memory implements SeenStore without persistence. It backs tests and
// one-off runs where dedup across restarts does not matter.
type Memory struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	flushn int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{seen: make(map[string]struct{})}
}

// Load is a no-op.
func (s *Memory) Load(_ context.Context) error { return nil }

// Contains reports whether the URL is in the set.
func (s *Memory) Contains(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[url]
	return ok
}

// Record inserts a URL. Idempotent.
func (s *Memory) Record(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[url] = struct{}{}
}

// Flush is a no-op; it counts invocations so tests can assert the
// once-per-scan contract.
func (s *Memory) Flush(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushn++
	return nil
}

// FlushCount returns how many times Flush has been called.
func (s *Memory) FlushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushn
}

// URLs returns a snapshot of the stored set.
func (s *Memory) URLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.seen))
	for u := range s.seen {
		out = append(out, u)
	}
	return out
}

// Close is a no-op.
func (s *Memory) Close() error { return nil }
