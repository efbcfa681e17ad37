package session

import (
	"net/http"

	"github.com/res5515/jcommune/internal/services/auth"
)

// RememberMe issues long-lived persistent sessions when the user asked to
// stay logged in. It implements the authenticator's RememberMeHandler
// contract.
type RememberMe struct {
	manager *Manager
}

// Ensure RememberMe implements the handler contract
var _ auth.RememberMeHandler = (*RememberMe)(nil)

// NewRememberMe creates a remember-me handler over the session manager
func NewRememberMe(manager *Manager) *RememberMe {
	return &RememberMe{manager: manager}
}

// OnLoginSuccess creates a persistent session and sets its cookie
func (r *RememberMe) OnLoginSuccess(req *auth.RequestContext, principal *auth.Principal) error {
	session := r.manager.create(principal, true, r.manager.cfg.RememberMeDuration)

	req.SetCookie(&http.Cookie{
		Name:     RememberMeCookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
	return nil
}
