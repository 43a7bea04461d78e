package outbound

import (
	"context"
	"errors"

	"github.com/clubhub/clubhub/domain/entity"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate unique field")
)

type AdminRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Admin, error)
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)
	FindByResetToken(ctx context.Context, tokenHash string) (*entity.Admin, error)
	Create(ctx context.Context, admin *entity.Admin) error
	Update(ctx context.Context, admin *entity.Admin) error
	Exists(ctx context.Context, id string) (bool, error)
}

type UserFilters struct {
	Role   string
	Statut string
	Search string
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByResetToken(ctx context.Context, tokenHash string) (*entity.User, error)
	FindAll(ctx context.Context, filters UserFilters, offset, limit int) ([]*entity.User, int, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context, filters UserFilters) (int, error)
	// UnassignClub clears clubAssigne on every user pointing at the club and
	// returns the number of users touched. Idempotent.
	UnassignClub(ctx context.Context, clubID string) (int64, error)
}

type ClubFilters struct {
	Statut    string
	Categorie string
	Search    string
	// OnlyValidated restricts to clubs approved by an admin; used by the
	// public listing together with Statut == actif.
	OnlyValidated bool
	// ProfileComplet, when set, filters on the derived completeness flag.
	ProfileComplet *bool
}

type ClubRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Club, error)
	FindByEmail(ctx context.Context, email string) (*entity.Club, error)
	FindByResetToken(ctx context.Context, tokenHash string) (*entity.Club, error)
	FindAll(ctx context.Context, filters ClubFilters, offset, limit int) ([]*entity.Club, int, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Club, error)
	Create(ctx context.Context, club *entity.Club) error
	Update(ctx context.Context, club *entity.Club) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context, filters ClubFilters) (int, error)
	CountByCategorie(ctx context.Context) (map[string]int, error)
	// IncrementEventCounters bumps stats.nombreEvents and
	// stats.nombreEventsValides atomically on the club document.
	IncrementEventCounters(ctx context.Context, id string, events, validated int) error
}
