package entity

import "errors"

var (
	ErrNameRequired         = errors.New("name is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrPhoneRequired        = errors.New("phone is required")
	ErrAddressRequired      = errors.New("address is required")
	ErrTelecallerRequired   = errors.New("telecaller is required")
	ErrPasswordHashRequired = errors.New("password hash is required")
	ErrInvalidRole          = errors.New("role must be admin or telecaller")
	ErrInvalidProvider      = errors.New("unknown oauth provider")
	ErrInvalidStatus        = errors.New("invalid lead status")
	ErrInvalidResponse      = errors.New("invalid lead response")

	// Repository sentinels.
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrLeadNotFound = errors.New("lead not found")
)
