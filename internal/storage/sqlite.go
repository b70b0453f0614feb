package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"donorscan/migrations"
)

// SQLite implements SeenStore backed by a SQLite database.
type SQLite struct {
	db *sql.DB

	mu      sync.Mutex
	seen    map[string]struct{}
	pending []string
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db, seen: make(map[string]struct{})}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load reads all previously seen URLs into memory.
func (s *SQLite) Load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT url FROM seen_urls`)
	if err != nil {
		return fmt.Errorf("query seen urls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return fmt.Errorf("scan seen url: %w", err)
		}
		s.seen[url] = struct{}{}
	}
	return rows.Err()
}

// Contains reports whether the URL is in the loaded or recorded set.
func (s *SQLite) Contains(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[url]
	return ok
}

// Record inserts a URL into the in-memory set; it is persisted on Flush.
func (s *SQLite) Record(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[url]; ok {
		return
	}
	s.seen[url] = struct{}{}
	s.pending = append(s.pending, url)
}

// Flush writes all URLs recorded during this run in one transaction.
func (s *SQLite) Flush(ctx context.Context) error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, url := range pending {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO seen_urls (url) VALUES (?)`, url,
		); err != nil {
			return fmt.Errorf("insert seen url: %w", err)
		}
	}
	return tx.Commit()
}
