// Package plugin defines the contract for external identity providers and
// the registry they are looked up from.
package plugin

import (
	"context"
	"errors"
)

// Transport-level provider failures. Unlike an authentication denial these
// mean the provider itself is unusable, so callers propagate them instead
// of folding them into a failed login.
var (
	ErrNoConnection       = errors.New("no connection to authentication provider")
	ErrUnexpectedProvider = errors.New("unexpected authentication provider error")
)

// State reports whether a registered plugin may be consulted
type State string

const (
	StateEnabled  State = "enabled"
	StateDisabled State = "disabled"
)

// Plugin is the base contract every registered plugin satisfies
type Plugin interface {
	Name() string
	State() State
}

// Attribute keys an authentication provider may return. A response is only
// usable if it carries at least AttrUsername and AttrEmail.
const (
	AttrUsername  = "username"
	AttrEmail     = "email"
	AttrFirstName = "firstName"
	AttrLastName  = "lastName"
)

// AuthPlugin is an external identity provider capable of authenticating
// and registering users.
type AuthPlugin interface {
	Plugin

	// Authenticate verifies the given credentials against the provider.
	// On success it returns the user's attributes; a denial returns an
	// empty map with a nil error. Transport failures are reported as
	// ErrNoConnection or ErrUnexpectedProvider.
	Authenticate(ctx context.Context, username, passwordHash string) (map[string]string, error)

	// RegisterUser asks the provider to create the user. It returns the
	// provider-side validation error codes, empty if registration passed.
	RegisterUser(ctx context.Context, username, passwordHash, email string) ([]string, error)
}
