package storage

import "sync"

// Canonical session mirror keys. The set is fixed: every key is written on
// login, merged on profile updates, and removed wholesale on logout.
const (
	KeyToken       = "token"
	KeyTokenExpiry = "tokenExpiry"
	KeyUserID      = "userId"
	KeyUsername    = "username"
	KeyEmail       = "email"
	KeyAvatar      = "avatar"
	KeyLocation    = "location"
	KeyIsAdmin     = "isAdmin"
	KeyFavorites   = "favorites"
)

// Keys lists every canonical mirror key, in write order.
func Keys() []string {
	return []string{
		KeyToken,
		KeyTokenExpiry,
		KeyUserID,
		KeyUsername,
		KeyEmail,
		KeyAvatar,
		KeyLocation,
		KeyIsAdmin,
		KeyFavorites,
	}
}

// Store is the persistent session mirror contract.
//
// Implementations never surface backend errors: Get degrades to "" and
// Set/Remove swallow failures, so a session can always continue in memory
// when the backing store is unavailable.
type Store interface {
	Get(key string) string
	Set(key, value string)
	Remove(key string)
}

// Clear removes every canonical session key from s.
func Clear(s Store) {
	if s == nil {
		return
	}
	for _, key := range Keys() {
		s.Remove(key)
	}
}

// MemoryStore is an in-process Store used as the default backend and as the
// test double for browser-storage-unavailable scenarios.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory mirror.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the stored value, or "" when absent.
func (m *MemoryStore) Get(key string) string {
	if m == nil {
		return ""
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Remove deletes key. Removing an absent key is a no-op.
func (m *MemoryStore) Remove(key string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Len reports the number of stored keys. Test helper.
func (m *MemoryStore) Len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
