package handler

import (
	"encoding/json"
	"net/http"

	"github.com/res5515/jcommune/internal/api/apierr"
	"github.com/res5515/jcommune/internal/api/middleware"
	"github.com/res5515/jcommune/internal/api/request"
	"github.com/res5515/jcommune/internal/api/response"
	"github.com/res5515/jcommune/internal/services/auth"
	"github.com/res5515/jcommune/internal/services/session"
	"github.com/res5515/jcommune/internal/storage"
	"github.com/res5515/jcommune/internal/validation"
)

// AuthHandler handles login, logout and registration
type AuthHandler struct {
	authService *auth.Service
	sessions    *session.Manager
	storage     storage.Storage
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, sessions *session.Manager, storage storage.Storage) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		storage:     storage,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	reqCtx := auth.NewRequestContext(w, r)
	ok, err := h.authService.Authenticate(r.Context(), req.Username, req.Password, req.RememberMe, reqCtx)
	if err != nil {
		// Provider outages map to 503, distinct from wrong credentials
		WriteError(w, err)
		return
	}
	if !ok {
		WriteError(w, apierr.NewInvalidCredentialsError())
		return
	}

	user, err := h.storage.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LoginResponse{
		User:         response.UserFromModel(user),
		SessionToken: reqCtx.SessionToken,
	})
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	locale := r.URL.Query().Get("lang")
	vc := validation.NewContext()

	user, err := h.authService.Register(r.Context(), &auth.RegistrationRequest{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	}, locale, vc)
	if err != nil {
		WriteError(w, err)
		return
	}
	if user == nil {
		WriteError(w, apierr.NewValidationError(vc.Errors()))
		return
	}

	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess != nil {
		h.sessions.Invalidate(sess.Token)
	}

	// Expire both cookies client-side
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: session.RememberMeCookieName, Value: "", Path: "/", MaxAge: -1})

	response.NoContent(w)
}

// Me handles GET /api/v1/users/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
