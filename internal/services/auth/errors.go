package auth

import "errors"

// Errors
var (
	// ErrAuthenticationFailed means the supplied credentials were
	// rejected. The authenticator folds it into the plugin fallback; it
	// never escapes Authenticate.
	ErrAuthenticationFailed = errors.New("authentication failed")
)
