package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for any login failure so the
	// response never reveals which factor was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountDisabled is returned when the password matched but the
	// account is inactive.
	ErrAccountDisabled = errors.New("user account is disabled")
	// ErrInvalidToken covers malformed, expired, mistyped and blacklisted
	// tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptyCart is returned when checkout is attempted on a cart with no
	// lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// FieldErrors groups validation messages by field name, mirroring the shape
// handlers return in 400 responses.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
