package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewFileStore(path, testLogger())
	first.Set(KeyToken, "tok-1")
	first.Set(KeyUsername, "alice")

	second := NewFileStore(path, testLogger())
	if got := second.Get(KeyToken); got != "tok-1" {
		t.Fatalf("expected token to survive reopen, got %q", got)
	}
	if got := second.Get(KeyUsername); got != "alice" {
		t.Fatalf("expected username to survive reopen, got %q", got)
	}
}

func TestFileStoreRemovePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewFileStore(path, testLogger())
	first.Set(KeyToken, "tok-1")
	first.Remove(KeyToken)

	second := NewFileStore(path, testLogger())
	if got := second.Get(KeyToken); got != "" {
		t.Fatalf("expected removed key absent after reopen, got %q", got)
	}
}

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	s := NewFileStore(path, testLogger())
	if got := s.Get(KeyToken); got != "" {
		t.Fatalf("expected empty mirror, got %q", got)
	}
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path, testLogger())
	if got := s.Get(KeyToken); got != "" {
		t.Fatalf("expected empty mirror from corrupt file, got %q", got)
	}

	// The mirror must still be writable afterwards.
	s.Set(KeyToken, "tok-2")
	if got := NewFileStore(path, testLogger()).Get(KeyToken); got != "tok-2" {
		t.Fatalf("expected mirror rewritten after corruption, got %q", got)
	}
}
