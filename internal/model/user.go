package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// Field length constraints enforced during registration. The same bounds
// are substituted into provider validation messages ({min}/{max}).
const (
	UsernameMinLength = 1
	UsernameMaxLength = 25
	PasswordMinLength = 1
	PasswordMaxLength = 50
	EmailMaxLength    = 255
)

// ImageRef points at a stored avatar image
type ImageRef string

// User is the forum's own identity record. The username is unique and
// immutable after creation; email, password hash and name fields may be
// refreshed when an external provider re-authenticates the user.
type User struct {
	ID           UserID
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string

	// ActivationUUID is embedded in the account activation link
	ActivationUUID string

	Language      string
	Autosubscribe bool
	Avatar        ImageRef

	RegisteredAt time.Time
	LastLoginAt  time.Time
}

// CommonUser is a user record originating from a shared external identity
// store rather than the forum's own user table. A common user with the
// same username is superseded (deleted) when the forum registers its own
// record for that name.
type CommonUser struct {
	ID       UserID
	Username string
	Email    string
}
