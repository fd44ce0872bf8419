package session

import "time"

// Session is the authenticated identity held by the client.
//
// Session instances are value snapshots; mutating a snapshot never affects
// the Manager that produced it.
type Session struct {
	Token       string
	TokenExpiry time.Time
	UserID      string
	Username    string
	Email       string
	Avatar      string
	Location    string
	IsAdmin     bool
	Favorites   []string
}

// Expired reports whether the session's expiry has elapsed at now. A zero
// expiry counts as expired: a token with unknown lifetime is never trusted.
func (s Session) Expired(now time.Time) bool {
	if s.TokenExpiry.IsZero() {
		return true
	}
	return !now.Before(s.TokenExpiry)
}

// Authenticated reports whether the session holds a live credential at now:
// a non-empty token whose expiry lies strictly in the future.
func (s Session) Authenticated(now time.Time) bool {
	return s.Token != "" && !s.Expired(now)
}

// HasFavorite reports whether id is in the favorites set.
func (s Session) HasFavorite(id string) bool {
	for _, fav := range s.Favorites {
		if fav == id {
			return true
		}
	}
	return false
}

// Update carries a partial session mutation. Nil fields are left untouched,
// so a profile update can merge user fields without touching the credential.
type Update struct {
	Token       *string
	TokenExpiry *time.Time
	UserID      *string
	Username    *string
	Email       *string
	Avatar      *string
	Location    *string
	IsAdmin     *bool
	Favorites   []string
}

// String returns a pointer to s, for building Update values.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building Update values.
func Bool(b bool) *bool { return &b }

// Time returns a pointer to t, for building Update values.
func Time(t time.Time) *time.Time { return &t }
