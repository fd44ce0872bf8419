package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// FileStore persists the session mirror as a single JSON document on disk.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a truncated mirror behind.
//
// All failures are logged and swallowed per the Store contract.
type FileStore struct {
	mu     sync.Mutex
	path   string
	log    zerolog.Logger
	values map[string]string
}

// NewFileStore opens (or lazily creates) the mirror file at path. A missing
// or unreadable file yields an empty mirror, not an error.
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	f := &FileStore{
		path:   path,
		log:    log,
		values: make(map[string]string),
	}
	f.load()
	return f
}

func (f *FileStore) load() {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Warn().Err(err).Str("path", f.path).Msg("session mirror unreadable, starting empty")
		}
		return
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		f.log.Warn().Err(err).Str("path", f.path).Msg("session mirror corrupt, starting empty")
		f.values = make(map[string]string)
	}
}

func (f *FileStore) flushLocked() {
	data, err := json.Marshal(f.values)
	if err != nil {
		f.log.Warn().Err(err).Msg("session mirror encode failed")
		return
	}
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		f.log.Warn().Err(err).Str("path", f.path).Msg("session mirror dir create failed")
		return
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		f.log.Warn().Err(err).Str("path", tmp).Msg("session mirror write failed")
		return
	}
	if err := os.Rename(tmp, f.path); err != nil {
		f.log.Warn().Err(err).Str("path", f.path).Msg("session mirror rename failed")
	}
}

// Get returns the stored value, or "" when absent or the file is unreadable.
func (f *FileStore) Get(key string) string {
	if f == nil {
		return ""
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key]
}

// Set stores value under key and rewrites the mirror file.
func (f *FileStore) Set(key, value string) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.flushLocked()
}

// Remove deletes key and rewrites the mirror file.
func (f *FileStore) Remove(key string) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; !ok {
		return
	}
	delete(f.values, key)
	f.flushLocked()
}
