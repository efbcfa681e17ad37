package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/res5515/jcommune/internal/dependencies/mocks"
	"github.com/res5515/jcommune/internal/i18n"
	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/plugin"
	"github.com/res5515/jcommune/internal/storage/memory"
	"github.com/res5515/jcommune/internal/testutil"
	"github.com/res5515/jcommune/internal/validation"
)

// fakeAuthPlugin is a scriptable identity provider
type fakeAuthPlugin struct {
	state plugin.State

	authAttrs map[string]string
	authErr   error
	// onAuthenticate runs before the scripted answer is returned
	onAuthenticate func(passwordHash string)

	registerCodes []string
	registerErr   error

	authCalls     []string
	registerCalls []struct {
		username, passwordHash, email string
	}
}

func (p *fakeAuthPlugin) Name() string        { return "fake" }
func (p *fakeAuthPlugin) State() plugin.State { return p.state }

func (p *fakeAuthPlugin) Authenticate(ctx context.Context, username, passwordHash string) (map[string]string, error) {
	p.authCalls = append(p.authCalls, username)
	if p.onAuthenticate != nil {
		p.onAuthenticate(passwordHash)
	}
	return p.authAttrs, p.authErr
}

func (p *fakeAuthPlugin) RegisterUser(ctx context.Context, username, passwordHash, email string) ([]string, error) {
	p.registerCalls = append(p.registerCalls, struct {
		username, passwordHash, email string
	}{username, passwordHash, email})
	return p.registerCodes, p.registerErr
}

// fakeSessions records binder activity
type fakeSessions struct {
	bound     []string
	succeeded []string
	bindErr   error
}

func (f *fakeSessions) Bind(principal *Principal, req *RequestContext) error {
	if f.bindErr != nil {
		return f.bindErr
	}
	f.bound = append(f.bound, principal.User.Username)
	return nil
}

func (f *fakeSessions) OnAuthenticationSuccess(principal *Principal, req *RequestContext) {
	f.succeeded = append(f.succeeded, principal.User.Username)
}

// fakeRememberMe records remember-me activity
type fakeRememberMe struct {
	remembered []string
}

func (f *fakeRememberMe) OnLoginSuccess(req *RequestContext, principal *Principal) error {
	f.remembered = append(f.remembered, principal.User.Username)
	return nil
}

// fakeMail records activation notifications
type fakeMail struct {
	sent    []*model.User
	sendErr error
}

func (f *fakeMail) SendActivationMail(ctx context.Context, user *model.User) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, user)
	return nil
}

// fakeAvatars serves a fixed default image
type fakeAvatars struct{}

func (fakeAvatars) DefaultImage() model.ImageRef { return "/img/default.png" }

type ServiceSuite struct {
	suite.Suite
	storage    *memory.Storage
	plugins    *plugin.Registry
	authPlugin *fakeAuthPlugin
	sessions   *fakeSessions
	rememberMe *fakeRememberMe
	mail       *fakeMail
	clock      *mocks.MockClock
	service    *Service
	ctx        context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.plugins = plugin.NewRegistry()
	s.authPlugin = nil
	s.sessions = &fakeSessions{}
	s.rememberMe = &fakeRememberMe{}
	s.mail = &fakeMail{}
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	catalog := i18n.NewCatalog()
	logger := testutil.NopLogger()

	s.service = New(Deps{
		Storage:    s.storage,
		Plugins:    s.plugins,
		Hasher:     NewBcryptHasher(),
		Verifier:   NewStoreVerifier(s.storage),
		Sessions:   s.sessions,
		RememberMe: s.rememberMe,
		Mail:       s.mail,
		Avatars:    fakeAvatars{},
		Validator:  validation.New(),
		Translator: NewErrorCodeTranslator(catalog),
		Clock:      s.clock,
		Logger:     logger,
	})
}

func (s *ServiceSuite) registerPlugin(p *fakeAuthPlugin) {
	s.authPlugin = p
	s.plugins.Register(p)
}

func (s *ServiceSuite) createUser(username, password string) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	s.Require().NoError(err)

	user := &model.User{
		ID:           model.UserID("id-" + username),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Language:     i18n.LanguageEnglish,
		RegisteredAt: s.clock.Now().Add(-24 * time.Hour),
	}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))
	return user
}

func (s *ServiceSuite) requestContext() *RequestContext {
	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "203.0.113.7:54321"
	return NewRequestContext(httptest.NewRecorder(), r)
}

// Authenticate: local path

func (s *ServiceSuite) TestAuthenticateLocalSucceeds() {
	s.createUser("joe", "secret")

	ok, err := s.service.Authenticate(s.ctx, "joe", "secret", false, s.requestContext())
	s.Require().NoError(err)
	s.True(ok)

	s.Equal([]string{"joe"}, s.sessions.bound)
	s.Equal([]string{"joe"}, s.sessions.succeeded)
	s.Empty(s.rememberMe.remembered)
}

func (s *ServiceSuite) TestAuthenticateUpdatesLastLogin() {
	s.createUser("joe", "secret")
	s.clock.Advance(2 * time.Hour)

	ok, err := s.service.Authenticate(s.ctx, "joe", "secret", false, s.requestContext())
	s.Require().NoError(err)
	s.True(ok)

	stored, err := s.storage.GetUserByUsername(s.ctx, "joe")
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), stored.LastLoginAt)
}

func (s *ServiceSuite) TestAuthenticateRememberMe() {
	s.createUser("joe", "secret")

	ok, err := s.service.Authenticate(s.ctx, "joe", "secret", true, s.requestContext())
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"joe"}, s.rememberMe.remembered)
}

func (s *ServiceSuite) TestAuthenticateWrongPasswordWithoutPlugin() {
	s.createUser("joe", "secret")

	ok, err := s.service.Authenticate(s.ctx, "joe", "wrong", false, s.requestContext())
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(s.sessions.bound)
}

func (s *ServiceSuite) TestAuthenticateUnknownUserWithoutPlugin() {
	ok, err := s.service.Authenticate(s.ctx, "nobody", "secret", false, s.requestContext())
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestAuthenticateDisabledPluginIsNotConsulted() {
	s.registerPlugin(&fakeAuthPlugin{
		state:     plugin.StateDisabled,
		authAttrs: map[string]string{plugin.AttrUsername: "joe", plugin.AttrEmail: "joe@x.com"},
	})

	ok, err := s.service.Authenticate(s.ctx, "joe", "secret", false, s.requestContext())
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(s.authPlugin.authCalls)
}

// Authenticate: plugin fallback

func (s *ServiceSuite) TestAuthenticateUnknownUserCreatedFromPlugin() {
	s.registerPlugin(&fakeAuthPlugin{
		state: plugin.StateEnabled,
		authAttrs: map[string]string{
			plugin.AttrUsername:  "joe",
			plugin.AttrEmail:     "joe@provider.com",
			plugin.AttrFirstName: "Joe",
			plugin.AttrLastName:  "Doe",
		},
	})

	ok, err := s.service.Authenticate(s.ctx, "joe", "secret", false, s.requestContext())
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"joe"}, s.authPlugin.authCalls)

	stored, err := s.storage.GetUserByUsername(s.ctx, "joe")
	s.Require().NoError(err)
	s.Equal("joe@provider.com", stored.Email)
	s.Equal("Joe", stored.FirstName)
	s.Equal("Doe", stored.LastName)
	s.Equal(i18n.DefaultLocale, stored.Language)
	s.True(stored.Autosubscribe)
	s.Equal(s.clock.Now(), stored.RegisteredAt)
	s.NotEmpty(stored.ID)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))
}

func (s *ServiceSuite) TestAuthenticateWrongPasswordOverwritesFromPlugin() {
	s.createUser("joe", "oldpass")
	s.registerPlugin(&fakeAuthPlugin{
		state: plugin.StateEnabled,
		authAttrs: map[string]string{
			plugin.AttrUsername: "joe",
			plugin.AttrEmail:    "new@provider.com",
		},
	})

	ok, err := s.service.Authenticate(s.ctx, "joe", "newpass", false, s.requestContext())
	s.Require().NoError(err)
	s.True(ok)

	stored, err := s.storage.GetUserByUsername(s.ctx, "joe")
	s.Require().NoError(err)
	s.Equal("new@provider.com", stored.Email)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass")))
}

func (s *ServiceSuite) TestAuthenticateConcurrentlyCreatedRecordWins() {
	// A sibling identity store inserts the record between the first local
	// lookup and reconciliation; the provider's answer is discarded.
	p := &fakeAuthPlugin{
		state: plugin.StateEnabled,
		authAttrs: map[string]string{
			plugin.AttrUsername: "joe",
			plugin.AttrEmail:    "joe@provider.com",
		},
	}
	p.onAuthenticate = func(string) {
		s.createUser("joe", "siblingpass")
	}
	s.registerPlugin(p)

	ok, err := s.service.Authenticate(s.ctx, "joe", "secret", false, s.requestContext())
	s.Require().NoError(err)
	s.False(ok)

	stored, err := s.storage.GetUserByUsername(s.ctx, "joe")
	s.Require().NoError(err)
	s.Equal("joe@example.com", stored.Email)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("siblingpass")))
}

func (s *ServiceSuite) TestAuthenticatePluginDenial() {
	s.registerPlugin(&fakeAuthPlugin{
		state:     plugin.StateEnabled,
		authAttrs: map[string]string{},
	})

	ok, err := s.service.Authenticate(s.ctx, "joe", "secret", false, s.requestContext())
	s.Require().NoError(err)
	s.False(ok)

	_, err = s.storage.GetUserByUsername(s.ctx, "joe")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestAuthenticatePluginAttributesWithoutEmail() {
	s.registerPlugin(&fakeAuthPlugin{
		state:     plugin.StateEnabled,
		authAttrs: map[string]string{plugin.AttrUsername: "joe"},
	})

	ok, err := s.service.Authenticate(s.ctx, "joe", "secret", false, s.requestContext())
	s.Require().NoError(err)
	s.False(ok)

	_, err = s.storage.GetUserByUsername(s.ctx, "joe")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestAuthenticatePluginConnectionErrorPropagates() {
	s.registerPlugin(&fakeAuthPlugin{
		state:   plugin.StateEnabled,
		authErr: plugin.ErrNoConnection,
	})

	_, err := s.service.Authenticate(s.ctx, "joe", "secret", false, s.requestContext())
	s.ErrorIs(err, plugin.ErrNoConnection)
}

func (s *ServiceSuite) TestAuthenticatePluginUnexpectedErrorPropagates() {
	s.createUser("joe", "secret")
	s.registerPlugin(&fakeAuthPlugin{
		state:   plugin.StateEnabled,
		authErr: plugin.ErrUnexpectedProvider,
	})

	_, err := s.service.Authenticate(s.ctx, "joe", "wrong", false, s.requestContext())
	s.ErrorIs(err, plugin.ErrUnexpectedProvider)
}

// Register: local path

func (s *ServiceSuite) TestRegisterLocalSucceeds() {
	vc := validation.NewContext()

	user, err := s.service.Register(s.ctx, &RegistrationRequest{
		Username:        "joe",
		Email:           "joe@example.com",
		Password:        "secret",
		PasswordConfirm: "secret",
		FirstName:       "Joe",
	}, "ru", vc)
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.False(vc.HasErrors())

	s.Equal("joe", user.Username)
	s.Equal(i18n.LanguageRussian, user.Language)
	s.True(user.Autosubscribe)
	s.Equal(model.ImageRef("/img/default.png"), user.Avatar)
	s.NotEmpty(user.ActivationUUID)
	s.Equal(s.clock.Now(), user.RegisteredAt)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))

	s.Require().Len(s.mail.sent, 1)
	s.Equal("joe", s.mail.sent[0].Username)

	stored, err := s.storage.GetUserByUsername(s.ctx, "joe")
	s.Require().NoError(err)
	s.Equal(user.ID, stored.ID)
}

func (s *ServiceSuite) TestRegisterLocalValidationFailure() {
	vc := validation.NewContext()

	user, err := s.service.Register(s.ctx, &RegistrationRequest{
		Username:        "joe",
		Email:           "not-an-email",
		Password:        "secret",
		PasswordConfirm: "different",
	}, "", vc)
	s.Require().NoError(err)
	s.Nil(user)
	s.Require().True(vc.HasErrors())

	fields := make([]string, 0, len(vc.Errors()))
	for _, fe := range vc.Errors() {
		fields = append(fields, fe.Field)
	}
	s.Contains(fields, "email")
	s.Contains(fields, "passwordconfirm")

	_, err = s.storage.GetUserByUsername(s.ctx, "joe")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestRegisterLocalDuplicateUsername() {
	s.createUser("joe", "secret")
	vc := validation.NewContext()

	user, err := s.service.Register(s.ctx, &RegistrationRequest{
		Username:        "joe",
		Email:           "second@example.com",
		Password:        "secret",
		PasswordConfirm: "secret",
	}, "", vc)
	s.Require().NoError(err)
	s.Nil(user)
	s.Require().Len(vc.Errors(), 1)
	s.Equal("username", vc.Errors()[0].Field)
	s.Equal("Username is already taken", vc.Errors()[0].Message)
}

func (s *ServiceSuite) TestRegisterSupersedesCommonUser() {
	s.Require().NoError(s.storage.SaveCommonUser(s.ctx, &model.CommonUser{
		ID:       "common-1",
		Username: "joe",
		Email:    "joe@elsewhere.com",
	}))
	vc := validation.NewContext()

	user, err := s.service.Register(s.ctx, &RegistrationRequest{
		Username:        "joe",
		Email:           "joe@example.com",
		Password:        "secret",
		PasswordConfirm: "secret",
	}, "", vc)
	s.Require().NoError(err)
	s.Require().NotNil(user)

	_, err = s.storage.GetCommonUserByUsername(s.ctx, "joe")
	s.ErrorIs(err, model.ErrCommonUserNotFound)
}

func (s *ServiceSuite) TestRegisterMailFailureDoesNotFail() {
	s.mail.sendErr = errors.New("smtp down")
	vc := validation.NewContext()

	user, err := s.service.Register(s.ctx, &RegistrationRequest{
		Username:        "joe",
		Email:           "joe@example.com",
		Password:        "secret",
		PasswordConfirm: "secret",
	}, "", vc)
	s.Require().NoError(err)
	s.Require().NotNil(user)

	_, err = s.storage.GetUserByUsername(s.ctx, "joe")
	s.NoError(err)
}

// Register: plugin path

func (s *ServiceSuite) TestRegisterThroughPlugin() {
	s.registerPlugin(&fakeAuthPlugin{state: plugin.StateEnabled})
	vc := validation.NewContext()

	user, err := s.service.Register(s.ctx, &RegistrationRequest{
		Username: "joe",
		Email:    "joe@example.com",
		Password: "secret",
	}, "", vc)
	s.Require().NoError(err)
	s.Require().NotNil(user)

	s.Require().Len(s.authPlugin.registerCalls, 1)
	call := s.authPlugin.registerCalls[0]
	s.Equal("joe", call.username)
	s.Equal("joe@example.com", call.email)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(call.passwordHash), []byte("secret")))
}

func (s *ServiceSuite) TestRegisterThroughPluginEmptyPassword() {
	s.registerPlugin(&fakeAuthPlugin{
		state:         plugin.StateEnabled,
		registerCodes: []string{"user.password.length_constraint_violation"},
	})
	vc := validation.NewContext()

	user, err := s.service.Register(s.ctx, &RegistrationRequest{
		Username: "joe",
		Email:    "joe@example.com",
	}, "", vc)
	s.Require().NoError(err)
	s.Nil(user)

	s.Require().Len(s.authPlugin.registerCalls, 1)
	s.Empty(s.authPlugin.registerCalls[0].passwordHash)
}

func (s *ServiceSuite) TestRegisterPluginErrorCodesTranslated() {
	s.registerPlugin(&fakeAuthPlugin{
		state: plugin.StateEnabled,
		registerCodes: []string{
			"user.username.already_exists",
			"user.email.illegal_format",
			"some.unknown.code",
		},
	})
	vc := validation.NewContext()

	user, err := s.service.Register(s.ctx, &RegistrationRequest{
		Username: "joe",
		Email:    "joe@example.com",
		Password: "secret",
	}, "", vc)
	s.Require().NoError(err)
	s.Nil(user)

	s.Require().Len(vc.Errors(), 2)
	s.Equal("username", vc.Errors()[0].Field)
	s.Equal("email", vc.Errors()[1].Field)
}

func (s *ServiceSuite) TestRegisterPluginTransportErrorPropagates() {
	s.registerPlugin(&fakeAuthPlugin{
		state:       plugin.StateEnabled,
		registerErr: plugin.ErrNoConnection,
	})
	vc := validation.NewContext()

	_, err := s.service.Register(s.ctx, &RegistrationRequest{
		Username: "joe",
		Email:    "joe@example.com",
		Password: "secret",
	}, "", vc)
	s.ErrorIs(err, plugin.ErrNoConnection)
}

func (s *ServiceSuite) TestRegisterDisabledPluginUsesLocalValidation() {
	s.registerPlugin(&fakeAuthPlugin{state: plugin.StateDisabled})
	vc := validation.NewContext()

	user, err := s.service.Register(s.ctx, &RegistrationRequest{
		Username: "joe",
		Email:    "broken",
		Password: "secret",
	}, "", vc)
	s.Require().NoError(err)
	s.Nil(user)
	s.True(vc.HasErrors())
	s.Empty(s.authPlugin.registerCalls)
}
