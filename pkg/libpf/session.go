package libpf

import (
	"encoding/json"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

// DefaultTokenType is the token type used by the portal when none is provided.
const DefaultTokenType = "Bearer"

// A Session contains details about an authenticated user.
// It is either fully populated or zero, there is no partial session.
type Session struct {
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Defined returns true if session's fields are defined.
func (s Session) Defined() bool {
	return s.Email != "" && s.Role.Valid() && s.AccessToken != "" && s.TokenType != ""
}

// AccessExpiredAt returns true if the access token is known to be expired at the given time.
// The token is opaque; expiry is only a hint read from unverified JWT claims.
func (s Session) AccessExpiredAt(t time.Time) bool {
	expiry, ok := TokenExpiry(s.AccessToken)
	if !ok {
		return false
	}
	return t.After(expiry)
}

// AccessExpired returns true if the access token is known to be expired.
func (s Session) AccessExpired() bool {
	return s.AccessExpiredAt(time.Now())
}

// TokenExpiry extracts the expiration date from the token claims without
// verifying its signature. The portal owns the token, the client just avoids
// doomed calls. It returns false when the token carries no usable expiry.
func TokenExpiry(token string) (time.Time, bool) {
	parser := &jwt.Parser{}
	claims := jwt.MapClaims{}

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case json.Number:
		n, err := exp.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(n, 0), true
	}
	return time.Time{}, false
}
