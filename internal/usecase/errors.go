package usecase

import (
	"fmt"
	"strings"
)

// ValidationError is a single bad input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is what input validation returns: one entry per field.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// AuthenticationError: bad credentials, bad or expired token.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError: role or ownership mismatch.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NotFoundError: unknown resource id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id %s", e.Resource, e.ID)
}

// ConflictError: uniqueness violation, today only duplicate emails.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// OAuthProviderError: the upstream identity provider failed us.
type OAuthProviderError struct {
	Provider string
	Message  string
}

func (e *OAuthProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password so the response does not leak which one failed.
func ErrInvalidCredentials() *AuthenticationError {
	return &AuthenticationError{Message: "invalid credentials"}
}

func ErrInvalidToken() *AuthenticationError {
	return &AuthenticationError{Message: "invalid or expired token"}
}

func ErrNotOwner() *AuthorizationError {
	return &AuthorizationError{Message: "not authorized to access this lead"}
}
