package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser()

// Expiry extracts the exp claim from tok without verifying the signature.
// The second return is false when tok is not a JWT or carries no exp claim.
func Expiry(tok string) (time.Time, bool) {
	if tok == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// ExpiryOrTTL returns the JWT-derived expiry of tok when deriveJWT is set
// and tok parses as a JWT with a future exp claim; otherwise now + ttl.
func ExpiryOrTTL(tok string, deriveJWT bool, now time.Time, ttl time.Duration) time.Time {
	if deriveJWT {
		if exp, ok := Expiry(tok); ok && exp.After(now) {
			return exp
		}
	}
	return now.Add(ttl)
}
