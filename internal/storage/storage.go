// Package storage defines the seen-URL persistence interface and its
// implementations.
//
// A store is loaded once at scan start, collects newly observed URLs
// during the scan, and is flushed once after all sources are processed.
// Flush is the sole durability point: a crash before it loses the run's
// progress but never corrupts previously committed state. Concurrent
// scans against the same store are not supported.
package storage

import "context"

// SeenStore tracks opportunity URLs that have already been surfaced.
type SeenStore interface {
	// Load reads the persisted set. On error the store behaves as if
	// empty; the caller logs and continues (fail-open).
	Load(ctx context.Context) error
	// Contains reports whether the URL was present at load time or has
	// been recorded since.
	Contains(url string) bool
	// Record inserts a URL. Idempotent.
	Record(url string)
	// Flush persists URLs recorded during this run. Call at most once
	// per scan, after all sources are processed.
	Flush(ctx context.Context) error

	Close() error
}
