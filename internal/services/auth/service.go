// Package auth implements authentication and registration.
//
// Authentication tries the forum's own credentials first. When the user
// is unknown locally or local verification is denied, the configured
// identity-provider plugin is consulted and its answer is reconciled into
// the local store before verification is retried.
//
// Registration goes through the plugin when one is enabled, translating
// provider error codes into localized field errors; otherwise local field
// validation applies.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/res5515/jcommune/internal/dependencies/clock"
	"github.com/res5515/jcommune/internal/i18n"
	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/plugin"
	"github.com/res5515/jcommune/internal/storage"
	"github.com/res5515/jcommune/internal/validation"
)

// DefaultAutosubscribe is applied to every newly registered user. Users
// can change it later in their profile.
const DefaultAutosubscribe = true

// Deps bundles the collaborators of the authenticator
type Deps struct {
	Storage    storage.Storage
	Plugins    *plugin.Registry
	Hasher     Hasher
	Verifier   CredentialVerifier
	Sessions   SessionBinder
	RememberMe RememberMeHandler
	Mail       MailNotifier
	Avatars    AvatarProvider
	Validator  *validation.FieldValidator
	Translator *ErrorCodeTranslator
	Clock      clock.Clock
	Logger     *slog.Logger
}

// Service orchestrates authentication and registration
type Service struct {
	storage    storage.Storage
	plugins    *plugin.Registry
	hasher     Hasher
	verifier   CredentialVerifier
	sessions   SessionBinder
	rememberMe RememberMeHandler
	mail       MailNotifier
	avatars    AvatarProvider
	validator  *validation.FieldValidator
	translator *ErrorCodeTranslator
	clock      clock.Clock
	logger     *slog.Logger
}

// New creates the authenticator
func New(deps Deps) *Service {
	return &Service{
		storage:    deps.Storage,
		plugins:    deps.Plugins,
		hasher:     deps.Hasher,
		verifier:   deps.Verifier,
		sessions:   deps.Sessions,
		rememberMe: deps.RememberMe,
		mail:       deps.Mail,
		avatars:    deps.Avatars,
		validator:  deps.Validator,
		translator: deps.Translator,
		clock:      deps.Clock,
		logger:     deps.Logger,
	}
}

// RegistrationRequest carries the fields of a registration form.
// The validate tags apply only on the local (no plugin) path.
type RegistrationRequest struct {
	Username        string `validate:"required,min=1,max=25"`
	Email           string `validate:"required,email,max=255"`
	Password        string `validate:"required,min=1,max=50"`
	PasswordConfirm string `validate:"eqfield=Password"`
	FirstName       string `validate:"omitempty,max=45"`
	LastName        string `validate:"omitempty,max=45"`
}

// Authenticate verifies the user's credentials, falling back to the
// identity-provider plugin when the user is unknown locally or local
// verification is denied. It returns false for exhausted credentials and
// an error only for infrastructure failures, including plugin transport
// errors (plugin.ErrNoConnection, plugin.ErrUnexpectedProvider).
func (s *Service) Authenticate(ctx context.Context, username, password string, rememberMe bool, req *RequestContext) (bool, error) {
	newUser := false

	user, err := s.storage.GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		s.logger.Info("user not found during login",
			slog.String("username", username),
			slog.String("ip", req.ClientIP()))
		newUser = true
	case err != nil:
		return false, err
	default:
		ok, err := s.authenticateLocal(ctx, user, password, rememberMe, req)
		if err == nil {
			return ok, nil
		}
		if !errors.Is(err, ErrAuthenticationFailed) {
			return false, err
		}
		// Denied locally; fall through to the plugin
	}

	return s.authenticateByPlugin(ctx, username, password, newUser, rememberMe, req)
}

// authenticateByPlugin consults the identity provider, reconciles its
// answer into the local store and retries local verification with the
// plaintext password.
func (s *Service) authenticateByPlugin(ctx context.Context, username, password string, newUser, rememberMe bool, req *RequestContext) (bool, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	attrs, err := s.authenticateByAvailablePlugin(ctx, username, passwordHash)
	if err != nil {
		return false, err
	}
	if len(attrs) == 0 || attrs[plugin.AttrEmail] == "" || attrs[plugin.AttrUsername] == "" {
		s.logger.Info("could not authenticate user by plugin", slog.String("username", username))
		return false, nil
	}

	user, err := s.reconcile(ctx, attrs, passwordHash, newUser)
	if err != nil {
		return false, err
	}

	ok, err := s.authenticateLocal(ctx, user, password, rememberMe, req)
	if errors.Is(err, ErrAuthenticationFailed) {
		return false, nil
	}
	return ok, err
}

// authenticateByAvailablePlugin asks the enabled auth plugin, if any, to
// verify the credentials. No enabled plugin means an empty answer.
func (s *Service) authenticateByAvailablePlugin(ctx context.Context, username, passwordHash string) (map[string]string, error) {
	p := s.plugins.AuthPlugin()
	if p == nil || p.State() != plugin.StateEnabled {
		return map[string]string{}, nil
	}
	return p.Authenticate(ctx, username, passwordHash)
}

// authenticateLocal verifies credentials against the local store and, on
// success, establishes the session, fires the post-authentication hook,
// applies remember-me and updates the last-login timestamp.
func (s *Service) authenticateLocal(ctx context.Context, user *model.User, password string, rememberMe bool, req *RequestContext) (bool, error) {
	principal, err := s.verifier.Authenticate(ctx, user.Username, password)
	if err != nil {
		if errors.Is(err, ErrAuthenticationFailed) {
			s.logger.Info("authentication failed",
				slog.String("username", user.Username),
				slog.String("ip", req.ClientIP()))
		}
		return false, err
	}

	if err := s.sessions.Bind(principal, req); err != nil {
		return false, err
	}
	s.sessions.OnAuthenticationSuccess(principal, req)

	if rememberMe {
		if err := s.rememberMe.OnLoginSuccess(req, principal); err != nil {
			return false, err
		}
	}

	user.LastLoginAt = s.clock.Now()
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

// reconcile merges the provider's attributes into the local store.
//
// For a user unknown at lookup time, a record that nonetheless exists by
// now came from a sibling identity store sharing this database; it wins
// and the provider's answer is discarded. Otherwise a new record is built
// from the provider attributes. For a known user whose local verification
// was denied, the password hash and email are overwritten unconditionally.
// firstName/lastName apply only when the provider sent them.
func (s *Service) reconcile(ctx context.Context, attrs map[string]string, passwordHash string, newUser bool) (*model.User, error) {
	username := attrs[plugin.AttrUsername]

	var user *model.User
	if newUser {
		existing, err := s.storage.GetUserByUsername(ctx, username)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
		user = &model.User{
			ID:            model.UserID(uuid.NewString()),
			Username:      username,
			Email:         attrs[plugin.AttrEmail],
			PasswordHash:  passwordHash,
			Language:      i18n.DefaultLocale,
			Autosubscribe: DefaultAutosubscribe,
			RegisteredAt:  s.clock.Now(),
		}
	} else {
		existing, err := s.storage.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = passwordHash
		existing.Email = attrs[plugin.AttrEmail]
		user = existing
	}

	if v, ok := attrs[plugin.AttrFirstName]; ok {
		user.FirstName = v
	}
	if v, ok := attrs[plugin.AttrLastName]; ok {
		user.LastName = v
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a new user. With an enabled plugin the provider
// performs validation and reports error codes, which are translated into
// localized field errors; without one, local field validation applies.
// When the validation context holds errors the user is not created and
// nil is returned.
func (s *Service) Register(ctx context.Context, req *RegistrationRequest, locale string, vc *validation.Context) (*model.User, error) {
	p := s.plugins.AuthPlugin()
	if p != nil && p.State() == plugin.StateEnabled {
		passwordHash := ""
		if req.Password != "" {
			var err error
			passwordHash, err = s.hasher.Hash(req.Password)
			if err != nil {
				return nil, err
			}
		}
		codes, err := p.RegisterUser(ctx, req.Username, passwordHash, req.Email)
		if err != nil {
			return nil, err
		}
		s.parseValidationErrors(codes, locale, vc)
	} else {
		s.validator.ValidateStruct(req, vc)
		if err := s.checkUsernameFree(ctx, req.Username, locale, vc); err != nil {
			return nil, err
		}
	}

	if vc.HasErrors() {
		return nil, nil
	}
	return s.storeLocalUser(ctx, req, locale)
}

// parseValidationErrors translates provider error codes into field errors.
// Untranslatable codes are dropped.
func (s *Service) parseValidationErrors(codes []string, locale string, vc *validation.Context) {
	for _, code := range codes {
		if code == "" {
			continue
		}
		if fe, ok := s.translator.Translate(code, locale); ok {
			vc.AddError(fe.Field, fe.Message)
		}
	}
}

// checkUsernameFree enforces username uniqueness on the local path
func (s *Service) checkUsernameFree(ctx context.Context, username, locale string, vc *validation.Context) error {
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		if fe, ok := s.translator.Translate("user.username.already_exists", locale); ok {
			vc.AddError(fe.Field, fe.Message)
		}
		return nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}
	return nil
}

// storeLocalUser persists a new user built from the registration request
// and triggers the activation notification. A common-user record with the
// same username predating this registration is superseded and deleted.
func (s *Service) storeLocalUser(ctx context.Context, req *RegistrationRequest, locale string) (*model.User, error) {
	user := &model.User{
		ID:             model.UserID(uuid.NewString()),
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ActivationUUID: uuid.NewString(),
		Language:       i18n.ByLocale(locale),
		Autosubscribe:  DefaultAutosubscribe,
		Avatar:         s.avatars.DefaultImage(),
		RegisteredAt:   s.clock.Now(),
	}

	common, err := s.storage.GetCommonUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		if err := s.storage.DeleteCommonUser(ctx, common.ID); err != nil {
			return nil, err
		}
	case !errors.Is(err, model.ErrCommonUserNotFound):
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = passwordHash

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mail.SendActivationMail(ctx, user); err != nil {
		// Activation mail failure must not undo the registration
		s.logger.Warn("failed to send activation mail",
			slog.String("username", user.Username),
			slog.String("error", err.Error()))
	}

	s.logger.Info("user registered", slog.String("username", user.Username))
	return user, nil
}
