package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/res5515/jcommune/internal/api/handler"
	"github.com/res5515/jcommune/internal/api/middleware"
	"github.com/res5515/jcommune/internal/services/auth"
	"github.com/res5515/jcommune/internal/services/branch"
	"github.com/res5515/jcommune/internal/services/session"
	"github.com/res5515/jcommune/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	AuthService   *auth.Service
	Sessions      *session.Manager
	BranchService *branch.Service
	Storage       storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Sessions, cfg.Storage)
	branchHandler := handler.NewBranchHandler(cfg.BranchService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.Sessions, cfg.Storage)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for login/register)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)

	// Protected auth routes
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	// Forum browsing routes (public)
	api.HandleFunc("/sections", branchHandler.ListSections).Methods(http.MethodGet)
	api.HandleFunc("/sections/{section_id}/branches", branchHandler.BranchesBySection).Methods(http.MethodGet)
	api.HandleFunc("/branches", branchHandler.ListBranches).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branch_id}", branchHandler.GetBranch).Methods(http.MethodGet)
	api.HandleFunc("/branches/{branch_id}/topics", branchHandler.ListTopics).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
