package usecase

import (
	"encoding/json"
	"log/slog"
	"time"

	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/shared/auth"
)

const (
	DefaultLoginPath = "/login.html"
	loginPromptText  = "Please log in to continue."
)

// GuardPolicy is what a page declares about who may open it.
type GuardPolicy struct {
	Name          string
	Roles         domain.RoleSet
	LoginPath     string
	RedirectAfter time.Duration
}

// Decision is the guard's verdict. A denial names where to send the user and when.
type Decision struct {
	Allowed       bool           `json:"allowed"`
	Notice        *domain.Notice `json:"notice,omitempty"`
	RedirectTo    string         `json:"redirectTo,omitempty"`
	RedirectAfter time.Duration  `json:"-"`
}

func (d Decision) MarshalJSON() ([]byte, error) {
	type alias Decision
	return json.Marshal(struct {
		alias
		RedirectAfterMs int64 `json:"redirectAfterMs,omitempty"`
	}{alias: alias(d), RedirectAfterMs: d.RedirectAfter.Milliseconds()})
}

// Deny builds the denial for this policy with the given text.
func (p GuardPolicy) Deny(text string) Decision {
	login := p.LoginPath
	if login == "" {
		login = DefaultLoginPath
	}
	return Decision{
		Allowed:       false,
		Notice:        domain.NewNotice(domain.NoticeDanger, text),
		RedirectTo:    login,
		RedirectAfter: p.RedirectAfter,
	}
}

// RoleDenied is the text shown when the session role is not admitted.
func (p GuardPolicy) RoleDenied() string {
	return "Access denied. " + p.Name + " role required."
}

// TokenChecker is satisfied by *auth.JWTValidator.
type TokenChecker interface {
	Configured() bool
	Validate(token string) (*auth.Claims, error)
}

// SessionGuard decides page access from the session alone. It never calls the backend.
type SessionGuard struct {
	validator TokenChecker
}

func NewSessionGuard(validator TokenChecker) *SessionGuard {
	return &SessionGuard{validator: validator}
}

func (g *SessionGuard) Check(session domain.Session, policy GuardPolicy) Decision {
	if !session.HasToken() {
		return policy.Deny(loginPromptText)
	}
	if g.validator != nil && g.validator.Configured() {
		if _, err := g.validator.Validate(session.Token); err != nil {
			slog.Info("guard rejected token", slog.String("page", policy.Name), slog.Any("error", err))
			return policy.Deny(loginPromptText)
		}
	}
	if !policy.Roles.Allows(session.Role) {
		slog.Info("guard rejected role", slog.String("page", policy.Name), slog.String("role", string(session.Role)))
		return policy.Deny(policy.RoleDenied())
	}
	return Decision{Allowed: true}
}
