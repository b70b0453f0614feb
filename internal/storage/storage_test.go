package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seen.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}

	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Contains("https://example.com/a") {
		t.Error("fresh store must be empty")
	}

	s.Record("https://example.com/a")
	s.Record("https://example.com/b")
	s.Record("https://example.com/a") // idempotent
	if !s.Contains("https://example.com/a") {
		t.Error("recorded URL must be visible before flush")
	}

	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopen: the set must survive the restart.
	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s2.Close() })
	if err := s2.Load(ctx); err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	for _, url := range []string{"https://example.com/a", "https://example.com/b"} {
		if !s2.Contains(url) {
			t.Errorf("URL %s lost across restart", url)
		}
	}
}

func TestSQLiteUnflushedRecordsNotPersisted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seen.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	s.Record("https://example.com/lost")
	// No flush: simulates a crash mid-scan.
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = s2.Close() })
	if err := s2.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s2.Contains("https://example.com/lost") {
		t.Error("unflushed record must not survive a restart")
	}
}

func TestJSONFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seen.json")

	s := NewJSONFile(path)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load missing file must not error: %v", err)
	}

	s.Record("https://example.com/a")
	s.Record("https://example.com/b")
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	s2 := NewJSONFile(path)
	if err := s2.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := []string{}
	for _, u := range []string{"https://example.com/a", "https://example.com/b"} {
		if s2.Contains(u) {
			got = append(got, u)
		}
	}
	sort.Strings(got)
	want := []string{"https://example.com/a", "https://example.com/b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("persisted set mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFileCorruptFailsOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seen.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	s := NewJSONFile(path)
	if err := s.Load(ctx); err == nil {
		t.Fatal("expected load error for corrupt file")
	}
	// The store stays usable and empty.
	if s.Contains("https://example.com/a") {
		t.Error("corrupt store must behave as empty")
	}
	s.Record("https://example.com/a")
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush after corrupt load: %v", err)
	}
	s2 := NewJSONFile(path)
	if err := s2.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !s2.Contains("https://example.com/a") {
		t.Error("flush must replace the corrupt file")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	s.Record("u1")
	s.Record("u1")
	if !s.Contains("u1") || s.Contains("u2") {
		t.Error("membership wrong")
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := s.FlushCount(); got != 1 {
		t.Errorf("flush count = %d, want 1", got)
	}
	if got := s.URLs(); len(got) != 1 || got[0] != "u1" {
		t.Errorf("URLs = %v, want [u1]", got)
	}
}
