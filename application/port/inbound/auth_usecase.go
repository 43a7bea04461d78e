package inbound

import (
	"context"

	"github.com/clubhub/clubhub/domain/entity"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the display-safe principal payload returned on login; the
// password hash never leaves the process.
type AuthUser struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	Nom      string          `json:"nom,omitempty"`
	Prenom   string          `json:"prenom,omitempty"`
	Role     string          `json:"role"`
	UserType entity.UserType `json:"userType"`

	// Club-only extras.
	PremiereConnexion *bool   `json:"premiereConnexion,omitempty"`
	ProfileComplet    *bool   `json:"profileComplet,omitempty"`
	Statut            *string `json:"statut,omitempty"`
}

type LoginResult struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AuthUseCase interface {
	// Login resolves the email against admins, then users, then clubs (first
	// match wins), gates non-admin statuses, verifies the password and issues
	// a session token.
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// Logout is a client-side no-op; the token stays valid until expiry. The
	// call is only recorded in the audit log.
	Logout(ctx context.Context, principal *entity.Principal) error
	// ResolveByID re-resolves a token's principal against the live
	// collections; used by the access-control middleware on every request.
	ResolveByID(ctx context.Context, id string, userType entity.UserType) (*entity.Principal, error)
	ChangePassword(ctx context.Context, principal *entity.Principal, req ChangePasswordRequest) error
}
