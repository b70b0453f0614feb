package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// JSONFile implements SeenStore as a flat JSON array of URLs on disk,
// the format used by earlier versions of this tool. Flush rewrites the
// whole file through a temp-file rename so a crash never truncates
// committed state.
type JSONFile struct {
	path string

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewJSONFile creates a store persisted at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path, seen: make(map[string]struct{})}
}

// Load reads the JSON array from disk. A missing file is not an error;
// an unreadable or corrupt file is reported but leaves the store usable
// and empty.
func (s *JSONFile) Load(_ context.Context) error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read seen file: %w", err)
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return fmt.Errorf("parse seen file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range urls {
		s.seen[u] = struct{}{}
	}
	return nil
}

// Contains reports whether the URL is in the set.
func (s *JSONFile) Contains(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[url]
	return ok
}

// Record inserts a URL. Idempotent.
func (s *JSONFile) Record(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[url] = struct{}{}
}

// Flush writes the full set back to disk.
func (s *JSONFile) Flush(_ context.Context) error {
	s.mu.Lock()
	urls := make([]string, 0, len(s.seen))
	for u := range s.seen {
		urls = append(urls, u)
	}
	s.mu.Unlock()

	data, err := json.Marshal(urls)
	if err != nil {
		return fmt.Errorf("encode seen file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".seen-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write seen file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace seen file: %w", err)
	}
	return nil
}

// Close is a no-op for the file-backed store.
func (s *JSONFile) Close() error { return nil }
