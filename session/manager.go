package session

import (
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/tripview/scenickit/storage"
)

// Manager owns the in-memory session and mirrors every mutation into the
// persistent store. All methods are safe for concurrent use; the expiry
// check is re-evaluated on every call rather than cached.
type Manager struct {
	mu    sync.Mutex
	now   func() time.Time
	store storage.Store
	s     Session
}

// NewManager creates an Anonymous manager backed by store. A nil now
// defaults to time.Now; a nil store degrades to in-memory-only operation.
func NewManager(store storage.Store, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{now: now, store: store}
}

// RestoreResult reports what Restore found in the mirror.
type RestoreResult struct {
	// Restored is true when a live session was recovered.
	Restored bool
	// ExpiredCleared is true when a stored token existed but its expiry had
	// elapsed, so the mirror was scrubbed instead of trusted.
	ExpiredCleared bool
}

// Restore reads the nine mirror keys and adopts them as the current session.
// A stored token with an elapsed (or missing) expiry is treated identically
// to no token: the mirror entries are removed and the manager stays
// Anonymous. Called once, at client construction.
func (m *Manager) Restore() RestoreResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store == nil {
		return RestoreResult{}
	}

	token := m.store.Get(storage.KeyToken)
	expiry := parseExpiry(m.store.Get(storage.KeyTokenExpiry))

	if token == "" {
		return RestoreResult{}
	}
	if expiry.IsZero() || !m.now().Before(expiry) {
		storage.Clear(m.store)
		return RestoreResult{ExpiredCleared: true}
	}

	m.s = Session{
		Token:       token,
		TokenExpiry: expiry,
		UserID:      m.store.Get(storage.KeyUserID),
		Username:    m.store.Get(storage.KeyUsername),
		Email:       m.store.Get(storage.KeyEmail),
		Avatar:      m.store.Get(storage.KeyAvatar),
		Location:    m.store.Get(storage.KeyLocation),
		IsAdmin:     m.store.Get(storage.KeyIsAdmin) == "true",
		Favorites:   parseFavorites(m.store.Get(storage.KeyFavorites)),
	}
	return RestoreResult{Restored: true}
}

// Authenticated reports whether the session holds a live credential now.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.Authenticated(m.now())
}

// HasToken reports whether any token is present, live or expired. The route
// guard uses the HasToken/Authenticated split to detect lazy expiry.
func (m *Manager) HasToken() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.Token != ""
}

// Token returns the bearer credential, or "" when Anonymous.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.Token
}

// Admin reports the administrator flag of the current session.
func (m *Manager) Admin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.IsAdmin
}

// Snapshot returns a value copy of the current session.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.s
	out.Favorites = append([]string(nil), m.s.Favorites...)
	return out
}

// Apply merges u into the session and mirrors every touched field. Fields
// left nil in u are untouched, which is what keeps profile updates from
// overwriting the credential.
func (m *Manager) Apply(u Update) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.Token != nil {
		m.s.Token = *u.Token
		m.set(storage.KeyToken, *u.Token)
	}
	if u.TokenExpiry != nil {
		m.s.TokenExpiry = *u.TokenExpiry
		m.set(storage.KeyTokenExpiry, strconv.FormatInt(u.TokenExpiry.UnixMilli(), 10))
	}
	if u.UserID != nil {
		m.s.UserID = *u.UserID
		m.set(storage.KeyUserID, *u.UserID)
	}
	if u.Username != nil {
		m.s.Username = *u.Username
		m.set(storage.KeyUsername, *u.Username)
	}
	if u.Email != nil {
		m.s.Email = *u.Email
		m.set(storage.KeyEmail, *u.Email)
	}
	if u.Avatar != nil {
		m.s.Avatar = *u.Avatar
		m.set(storage.KeyAvatar, *u.Avatar)
	}
	if u.Location != nil {
		m.s.Location = *u.Location
		m.set(storage.KeyLocation, *u.Location)
	}
	if u.IsAdmin != nil {
		m.s.IsAdmin = *u.IsAdmin
		m.set(storage.KeyIsAdmin, strconv.FormatBool(*u.IsAdmin))
	}
	if u.Favorites != nil {
		m.s.Favorites = append([]string(nil), u.Favorites...)
		m.mirrorFavoritesLocked()
	}
}

// Clear resets every field and scrubs the mirror. It is idempotent: the
// return value is true only for the call that actually performed the
// transition out of a populated session, so redundant invocations from
// concurrent failing requests are safe and observable-effect-free.
func (m *Manager) Clear() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	had := m.s.Token != "" || m.s.UserID != ""
	m.s = Session{}
	storage.Clear(m.store)
	return had
}

// AddFavorite inserts id into the favorites set after server confirmation.
// Returns true when the set changed.
func (m *Manager) AddFavorite(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.s.HasFavorite(id) {
		return false
	}
	m.s.Favorites = append(m.s.Favorites, id)
	sort.Strings(m.s.Favorites)
	m.mirrorFavoritesLocked()
	return true
}

// RemoveFavorite deletes id from the favorites set after server
// confirmation. Returns true when the set changed.
func (m *Manager) RemoveFavorite(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, fav := range m.s.Favorites {
		if fav == id {
			m.s.Favorites = append(m.s.Favorites[:i], m.s.Favorites[i+1:]...)
			m.mirrorFavoritesLocked()
			return true
		}
	}
	return false
}

// SetFavorites replaces the favorites set wholesale, as after a list fetch.
func (m *Manager) SetFavorites(ids []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.s.Favorites = append([]string(nil), ids...)
	sort.Strings(m.s.Favorites)
	m.mirrorFavoritesLocked()
}

func (m *Manager) set(key, value string) {
	if m.store != nil {
		m.store.Set(key, value)
	}
}

func (m *Manager) mirrorFavoritesLocked() {
	data, err := json.Marshal(m.s.Favorites)
	if err != nil {
		return
	}
	m.set(storage.KeyFavorites, string(data))
}

func parseExpiry(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || millis <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}

func parseFavorites(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
