package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTelecaller Role = "telecaller"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTelecaller
}

type OAuthProvider string

const (
	ProviderGoogle OAuthProvider = "google"
	ProviderGitHub OAuthProvider = "github"
)

func (p OAuthProvider) Valid() bool {
	return p == ProviderGoogle || p == ProviderGitHub
}

// User is a principal: either a local account (password hash, no provider)
// or a federated account (provider + oauth id, no password hash). Never both.
type User struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	PasswordHash  string        `json:"-"`
	Role          Role          `json:"role"`
	OAuthProvider OAuthProvider `json:"oauth_provider,omitempty"`
	OAuthID       string        `json:"oauth_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// NewLocalUser builds a password-backed user. The hash must already be
// computed; plaintext never reaches the entity.
func NewLocalUser(name, email, passwordHash string, role Role) (*User, error) {
	if role == "" {
		role = RoleTelecaller
	}
	user := &User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := user.validate(); err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, ErrPasswordHashRequired
	}

	return user, nil
}

// NewOAuthUser builds a federated user. No password hash is ever set for
// this path; the provider is the only way to authenticate.
func NewOAuthUser(name, email string, provider OAuthProvider, oauthID string) (*User, error) {
	if !provider.Valid() {
		return nil, ErrInvalidProvider
	}
	user := &User{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(name),
		Email:         NormalizeEmail(email),
		Role:          RoleTelecaller,
		OAuthProvider: provider,
		OAuthID:       oauthID,
		CreatedAt:     time.Now(),
	}

	if err := user.validate(); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *User) validate() error {
	if u.Name == "" {
		return ErrNameRequired
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// IsLocal reports whether the user authenticates with a password.
func (u *User) IsLocal() bool {
	return u.OAuthProvider == ""
}

// NormalizeEmail lowercases and trims. Every store and every lookup must go
// through the same form, or a mixed-case login misses its own record.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
