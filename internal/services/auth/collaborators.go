package auth

import (
	"context"
	"net"
	"net/http"

	"github.com/res5515/jcommune/internal/model"
)

// Principal is an authenticated identity
type Principal struct {
	User *model.User
}

// Hasher wraps a one-way password hashing function
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// CredentialVerifier checks a username/plaintext-password pair against
// the local store. A mismatch is reported as ErrAuthenticationFailed;
// anything else is an infrastructure failure.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, username, password string) (*Principal, error)
}

// SessionBinder establishes the authenticated session for a request and
// runs the post-authentication hook (e.g. online-presence tracking).
type SessionBinder interface {
	Bind(principal *Principal, req *RequestContext) error
	OnAuthenticationSuccess(principal *Principal, req *RequestContext)
}

// RememberMeHandler issues the persistent login token when the user asked
// to be remembered.
type RememberMeHandler interface {
	OnLoginSuccess(req *RequestContext, principal *Principal) error
}

// MailNotifier sends the account activation notification after
// registration. Delivery mechanics live behind this interface.
type MailNotifier interface {
	SendActivationMail(ctx context.Context, user *model.User) error
}

// AvatarProvider supplies the avatar assigned to new users
type AvatarProvider interface {
	DefaultImage() model.ImageRef
}

// RequestContext carries the per-request details the authenticator needs:
// the client address for audit logging and a sink for session cookies.
// The session binder records the token it issued in SessionToken so API
// clients that cannot use cookies can pick it up from the login response.
type RequestContext struct {
	RemoteAddr   string
	ForwardedFor string
	Writer       http.ResponseWriter
	SessionToken string
}

// NewRequestContext builds a RequestContext from an HTTP exchange
func NewRequestContext(w http.ResponseWriter, r *http.Request) *RequestContext {
	return &RequestContext{
		RemoteAddr:   r.RemoteAddr,
		ForwardedFor: r.Header.Get("X-Forwarded-For"),
		Writer:       w,
	}
}

// ClientIP returns the requesting address, preferring the proxy header
func (rc *RequestContext) ClientIP() string {
	if rc.ForwardedFor != "" {
		return rc.ForwardedFor
	}
	if host, _, err := net.SplitHostPort(rc.RemoteAddr); err == nil {
		return host
	}
	return rc.RemoteAddr
}

// SetCookie writes a cookie to the response if one is attached
func (rc *RequestContext) SetCookie(c *http.Cookie) {
	if rc.Writer != nil {
		http.SetCookie(rc.Writer, c)
	}
}
