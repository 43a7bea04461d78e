package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/clubhub/clubhub/application/port/inbound"
	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/http/response"
	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type principalKey struct{}

// PrincipalFromContext returns the authenticated principal, or nil on public
// routes reached without a valid token.
func PrincipalFromContext(ctx context.Context) *entity.Principal {
	p, _ := ctx.Value(principalKey{}).(*entity.Principal)
	return p
}

type AuthMiddleware struct {
	tokens outbound.TokenService
	auth   inbound.AuthUseCase
	log    logger.Logger
}

func NewAuthMiddleware(tokens outbound.TokenService, auth inbound.AuthUseCase, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, auth: auth, log: log}
}

// Authorize authenticates the request and optionally restricts it to the
// given principal variants. With no variants, any authenticated principal
// passes. A valid token whose account no longer exists is still a 401: token
// validity is signature + expiry + the principal resolving again. An account
// deactivated after the token was issued gets a 403, so a suspension takes
// effect immediately instead of at token expiry.
func (m *AuthMiddleware) Authorize(userTypes ...entity.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, errMsg := m.authenticate(r)
			if principal == nil {
				response.Unauthorized(w, errMsg)
				return
			}

			if principal.UserType != entity.UserTypeAdmin && principal.Statut() != entity.StatusActif {
				response.Forbidden(w, "Compte désactivé ou suspendu")
				return
			}

			if len(userTypes) > 0 && !typeAllowed(principal.UserType, userTypes) {
				response.Forbidden(w, "Accès refusé: privilèges insuffisants")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthorize attaches the principal when a valid token belonging to an
// active account is present but never rejects the request.
func (m *AuthMiddleware) OptionalAuthorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := m.authenticate(r)
		if principal != nil && (principal.UserType == entity.UserTypeAdmin || principal.Statut() == entity.StatusActif) {
			r = r.WithContext(context.WithValue(r.Context(), principalKey{}, principal))
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission gates a route on the permission model: admins pass, user
// accounts need the permission in their set, clubs never pass.
func (m *AuthMiddleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				response.Unauthorized(w, "Authentification requise")
				return
			}
			if !principal.HasPermission(permission) {
				response.Forbidden(w, "Accès refusé: permission manquante")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EnsureOwnClub restricts the {id} path variable to the caller's own club.
// Admins bypass; user accounts must be assigned to that club.
func (m *AuthMiddleware) EnsureOwnClub(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFromContext(r.Context())
		if principal == nil {
			response.Unauthorized(w, "Authentification requise")
			return
		}
		clubID := mux.Vars(r)["id"]
		if !principal.IsAdmin() && principal.AssignedClubID() != clubID {
			response.Forbidden(w, "Vous ne pouvez accéder qu'à votre propre club")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate extracts the bearer token, verifies it and re-resolves the
// principal. Returns (nil, message) on failure.
func (m *AuthMiddleware) authenticate(r *http.Request) (*entity.Principal, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "Token d'authentification requis"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, "Format du token invalide"
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		if errors.Is(err, outbound.ErrTokenExpired) {
			return nil, "Session expirée, veuillez vous reconnecter"
		}
		return nil, "Token invalide"
	}

	principal, err := m.auth.ResolveByID(r.Context(), claims.ID, claims.UserType)
	if err != nil {
		m.log.Warn(r.Context(), "token principal no longer resolves", map[string]interface{}{
			"userId":   claims.ID,
			"userType": claims.UserType,
		})
		return nil, "Compte introuvable, veuillez vous reconnecter"
	}
	return principal, ""
}

func typeAllowed(got entity.UserType, allowed []entity.UserType) bool {
	for _, t := range allowed {
		if t == got {
			return true
		}
	}
	return false
}
