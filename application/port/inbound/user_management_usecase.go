package inbound

import (
	"context"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
)

type CreateUserRequest struct {
	Email       string   `json:"email"`
	Nom         string   `json:"nom"`
	Prenom      string   `json:"prenom"`
	Telephone   string   `json:"telephone"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	ClubAssigne string   `json:"clubAssigne"`
}

type UpdateUserRequest struct {
	Nom         *string  `json:"nom,omitempty"`
	Prenom      *string  `json:"prenom,omitempty"`
	Telephone   *string  `json:"telephone,omitempty"`
	Role        *string  `json:"role,omitempty"`
	Statut      *string  `json:"statut,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	ClubAssigne *string  `json:"clubAssigne,omitempty"`
}

type UserQuery struct {
	PageQuery
	Filters outbound.UserFilters
}

type UserPage struct {
	Users      []*entity.User `json:"users"`
	Pagination PageMeta       `json:"pagination"`
}

type UserStatsReport struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByRole   map[string]int `json:"byRole"`
}

type UserManagementUseCase interface {
	List(ctx context.Context, query UserQuery) (*UserPage, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	// Create registers a staff account with a generated password mailed to
	// it. Duplicate email is a conflict.
	Create(ctx context.Context, actor *entity.Principal, req CreateUserRequest) (*entity.User, error)
	Update(ctx context.Context, actor *entity.Principal, id string, req UpdateUserRequest) (*entity.User, error)
	Delete(ctx context.Context, actor *entity.Principal, id string) error
	// ResetPassword issues a fresh generated password and mails it.
	ResetPassword(ctx context.Context, actor *entity.Principal, id string) error
	Stats(ctx context.Context) (*UserStatsReport, error)
}
