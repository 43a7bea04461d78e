package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/http/middleware"
	"github.com/clubhub/clubhub/infrastructure/http/response"
)

// RouterConfig bundles the handlers and middleware the router wires up.
type RouterConfig struct {
	Auth          *AuthHandler
	Clubs         *ClubHandler
	Events        *EventHandler
	Users         *UserHandler
	Logs          *LogHandler
	PasswordReset *PasswordResetHandler
	Dashboard     *DashboardHandler

	AuthMW    *AuthMW
	RateLimit *middleware.RateLimitMiddleware
	Metrics   *middleware.MetricsMiddleware

	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	MetricsEnabled bool
	PromGatherer   prometheus.Gatherer
}

// AuthMW narrows the auth middleware surface the router needs.
type AuthMW = middleware.AuthMiddleware

func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, http.StatusOK, "OK", nil)
	}).Methods(http.MethodGet)

	if cfg.MetricsEnabled && cfg.PromGatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.PromGatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()

	adminOnly := cfg.AuthMW.Authorize(entity.UserTypeAdmin)
	adminOrUser := cfg.AuthMW.Authorize(entity.UserTypeAdmin, entity.UserTypeUser)
	clubOnly := cfg.AuthMW.Authorize(entity.UserTypeClub)
	anyAuth := cfg.AuthMW.Authorize()

	// auth + password reset
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", cfg.Auth.Login).Methods(http.MethodPost)
	auth.Handle("/logout", anyAuth(http.HandlerFunc(cfg.Auth.Logout))).Methods(http.MethodPost)
	auth.Handle("/me", anyAuth(http.HandlerFunc(cfg.Auth.Me))).Methods(http.MethodGet)
	auth.Handle("/change-password", anyAuth(http.HandlerFunc(cfg.Auth.ChangePassword))).Methods(http.MethodPut)
	auth.HandleFunc("/forgot-password", cfg.PasswordReset.Request).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", cfg.PasswordReset.Reset).Methods(http.MethodPost)
	auth.HandleFunc("/verify-reset-token", cfg.PasswordReset.VerifyToken).Methods(http.MethodGet)

	// public catalog, principal attached when a token is present
	api.Handle("/clubs/public", cfg.AuthMW.OptionalAuthorize(http.HandlerFunc(cfg.Clubs.PublicList))).Methods(http.MethodGet)
	api.Handle("/clubs/public/{id}", cfg.AuthMW.OptionalAuthorize(http.HandlerFunc(cfg.Clubs.PublicGet))).Methods(http.MethodGet)
	api.Handle("/events/public", cfg.AuthMW.OptionalAuthorize(http.HandlerFunc(cfg.Events.PublicList))).Methods(http.MethodGet)

	// clubs
	api.Handle("/clubs", adminOrUser(http.HandlerFunc(cfg.Clubs.List))).Methods(http.MethodGet)
	api.Handle("/clubs", adminOrUser(cfg.AuthMW.RequirePermission(entity.PermCreateClub)(http.HandlerFunc(cfg.Clubs.Create)))).Methods(http.MethodPost)
	api.Handle("/clubs/stats", adminOnly(http.HandlerFunc(cfg.Clubs.Stats))).Methods(http.MethodGet)
	api.Handle("/clubs/my-profile", clubOnly(http.HandlerFunc(cfg.Clubs.MyProfile))).Methods(http.MethodGet)
	api.Handle("/clubs/first-login", clubOnly(http.HandlerFunc(cfg.Clubs.CheckFirstLogin))).Methods(http.MethodGet)
	api.Handle("/clubs/complete-first-login", clubOnly(http.HandlerFunc(cfg.Clubs.CompleteFirstLogin))).Methods(http.MethodPost)
	api.Handle("/clubs/{id}", anyAuth(http.HandlerFunc(cfg.Clubs.Get))).Methods(http.MethodGet)
	api.Handle("/clubs/{id}", anyAuth(cfg.AuthMW.EnsureOwnClub(http.HandlerFunc(cfg.Clubs.UpdateProfile)))).Methods(http.MethodPut)
	api.Handle("/clubs/{id}/status", adminOnly(http.HandlerFunc(cfg.Clubs.UpdateStatus))).Methods(http.MethodPut)
	api.Handle("/clubs/{id}", adminOnly(http.HandlerFunc(cfg.Clubs.Delete))).Methods(http.MethodDelete)
	api.Handle("/clubs/{id}/events", anyAuth(http.HandlerFunc(cfg.Events.ByClub))).Methods(http.MethodGet)

	// events
	api.Handle("/events", adminOrUser(http.HandlerFunc(cfg.Events.List))).Methods(http.MethodGet)
	api.Handle("/events", cfg.AuthMW.Authorize(entity.UserTypeAdmin, entity.UserTypeClub)(http.HandlerFunc(cfg.Events.Create))).Methods(http.MethodPost)
	api.Handle("/events/my", clubOnly(http.HandlerFunc(cfg.Events.MyEvents))).Methods(http.MethodGet)
	api.Handle("/events/stats", adminOnly(http.HandlerFunc(cfg.Events.Stats))).Methods(http.MethodGet)
	api.Handle("/events/{id}", anyAuth(http.HandlerFunc(cfg.Events.Get))).Methods(http.MethodGet)
	api.Handle("/events/{id}", anyAuth(http.HandlerFunc(cfg.Events.Update))).Methods(http.MethodPut)
	api.Handle("/events/{id}", anyAuth(http.HandlerFunc(cfg.Events.Delete))).Methods(http.MethodDelete)
	api.Handle("/events/{id}/validate", adminOnly(http.HandlerFunc(cfg.Events.Validate))).Methods(http.MethodPut)

	// staff accounts
	api.Handle("/users", adminOnly(http.HandlerFunc(cfg.Users.List))).Methods(http.MethodGet)
	api.Handle("/users", adminOnly(http.HandlerFunc(cfg.Users.Create))).Methods(http.MethodPost)
	api.Handle("/users/stats", adminOnly(http.HandlerFunc(cfg.Users.Stats))).Methods(http.MethodGet)
	api.Handle("/users/{id}", adminOnly(http.HandlerFunc(cfg.Users.Get))).Methods(http.MethodGet)
	api.Handle("/users/{id}", adminOnly(http.HandlerFunc(cfg.Users.Update))).Methods(http.MethodPut)
	api.Handle("/users/{id}", adminOnly(http.HandlerFunc(cfg.Users.Delete))).Methods(http.MethodDelete)
	api.Handle("/users/{id}/reset-password", adminOnly(http.HandlerFunc(cfg.Users.ResetPassword))).Methods(http.MethodPost)

	// audit log
	api.Handle("/logs", adminOnly(http.HandlerFunc(cfg.Logs.List))).Methods(http.MethodGet)
	api.Handle("/logs/recent", adminOnly(http.HandlerFunc(cfg.Logs.Recent))).Methods(http.MethodGet)
	api.Handle("/logs/stats", adminOnly(http.HandlerFunc(cfg.Logs.Stats))).Methods(http.MethodGet)
	api.Handle("/logs/test", adminOnly(http.HandlerFunc(cfg.Logs.CreateTestLogs))).Methods(http.MethodPost)
	api.Handle("/logs/test", adminOnly(http.HandlerFunc(cfg.Logs.DeleteTestLogs))).Methods(http.MethodDelete)
	api.Handle("/logs/orphans", adminOnly(http.HandlerFunc(cfg.Logs.CleanOrphanLogs))).Methods(http.MethodDelete)

	// admin dashboard
	api.Handle("/admin/dashboard", adminOnly(http.HandlerFunc(cfg.Dashboard.Stats))).Methods(http.MethodGet)

	var h http.Handler = r
	if cfg.Metrics != nil {
		h = cfg.Metrics.Instrument(h)
	}
	if cfg.RateLimit != nil {
		h = cfg.RateLimit.RateLimit(h)
	}
	if cfg.CORSEnabled {
		h = middleware.NewCORS(middleware.CORSOptions{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowCredentials: cfg.CORSAllowCredentials,
		})(h)
	}
	h = middleware.CorrelationIDMiddleware(h)
	return h
}
