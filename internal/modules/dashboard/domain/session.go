package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedUserInfo = errors.New("malformed userInfo")

// Profile is the cached user profile the browser stores under userInfo at login.
type Profile struct {
	ID        EntityID `json:"id"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
}

// DisplayName prefers the full name and falls back to the username.
func (p Profile) DisplayName() string {
	full := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if full != "" {
		return full
	}
	return p.Username
}

// Session is the caller identity read from the client store on every request.
type Session struct {
	ID      string
	Token   string
	Role    Role
	Profile Profile
}

// NewSession builds a session from the raw authToken and userInfo values.
// A missing userInfo is not an error; the role is simply unknown.
func NewSession(token, userInfo string) (Session, error) {
	s := Session{Token: strings.TrimSpace(token)}
	if s.Token != "" {
		s.ID = SessionKey(s.Token)
	}
	raw := strings.TrimSpace(userInfo)
	if raw == "" {
		return s, nil
	}
	if err := json.Unmarshal([]byte(raw), &s.Profile); err != nil {
		return s, fmt.Errorf("%w: %v", ErrMalformedUserInfo, err)
	}
	s.Role = ParseRole(s.Profile.Role)
	return s, nil
}

func (s Session) HasToken() bool { return s.Token != "" }

// SessionKey derives a stable, non-reversible key for a token.
func SessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:12])
}
