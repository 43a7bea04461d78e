package outbound

import (
	"context"
	"time"

	"github.com/clubhub/clubhub/domain/entity"
)

type EventFilters struct {
	ClubID    string
	Statut    string
	TypeEvent string
	Search    string
	// OnlyVisible restricts to events whose club kept them published.
	OnlyVisible bool
	From, To    time.Time
}

type EventRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Event, error)
	FindAll(ctx context.Context, filters EventFilters, offset, limit int) ([]*entity.Event, int, error)
	FindRecent(ctx context.Context, statut string, limit int) ([]*entity.Event, error)
	Create(ctx context.Context, event *entity.Event) error
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id string) error
	// DeleteByClub removes every event of a club and returns the count;
	// used by the club deletion cascade. Idempotent.
	DeleteByClub(ctx context.Context, clubID string) (int64, error)
	Count(ctx context.Context, filters EventFilters) (int, error)
	CountByType(ctx context.Context, statut string) (map[string]int, error)
	// CreatedPerDay groups event creations by calendar day since the given
	// instant, keyed by "YYYY-MM-DD".
	CreatedPerDay(ctx context.Context, since time.Time) (map[string]int, error)
}
