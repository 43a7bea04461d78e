package inbound

import (
	"context"
	"time"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
)

type CreateEventRequest struct {
	Titre       string              `json:"titre"`
	Description string              `json:"description"`
	DateDebut   time.Time           `json:"dateDebut"`
	DateFin     time.Time           `json:"dateFin"`
	HeureDebut  string              `json:"heureDebut"`
	HeureFin    string              `json:"heureFin"`
	Lieu        string              `json:"lieu"`
	Adresse     string              `json:"adresse"`
	CapaciteMax int                 `json:"capaciteMax"`
	TypeEvent   string              `json:"typeEvent"`
	Public      string              `json:"public"`
	Gratuit     *bool               `json:"gratuit"`
	Prix        float64             `json:"prix"`
	Contact     entity.EventContact `json:"contact"`
	Tags        []string            `json:"tags"`
	// ClubID is honored for admin callers only; club callers always create
	// under their own id.
	ClubID string `json:"clubId"`
}

type UpdateEventRequest struct {
	Titre       *string    `json:"titre,omitempty"`
	Description *string    `json:"description,omitempty"`
	DateDebut   *time.Time `json:"dateDebut,omitempty"`
	DateFin     *time.Time `json:"dateFin,omitempty"`
	Lieu        *string    `json:"lieu,omitempty"`
	Adresse     *string    `json:"adresse,omitempty"`
	CapaciteMax *int       `json:"capaciteMax,omitempty"`
	TypeEvent   *string    `json:"typeEvent,omitempty"`
	Public      *string    `json:"public,omitempty"`
	Gratuit     *bool      `json:"gratuit,omitempty"`
	Prix        *float64   `json:"prix,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Visible     *bool      `json:"visible,omitempty"`
}

type EventQuery struct {
	PageQuery
	Filters outbound.EventFilters
}

type EventPage struct {
	Events     []*entity.Event `json:"events"`
	Pagination PageMeta        `json:"pagination"`
}

type EventStatsReport struct {
	Total     int            `json:"total"`
	Pending   int            `json:"pending"`
	Validated int            `json:"validated"`
	Rejected  int            `json:"rejected"`
	ByType    map[string]int `json:"byType"`
}

type EventUseCase interface {
	List(ctx context.Context, query EventQuery) (*EventPage, error)
	PublicList(ctx context.Context, query EventQuery) (*EventPage, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	Create(ctx context.Context, actor *entity.Principal, req CreateEventRequest) (*entity.Event, error)
	// Update only touches events still pending or rejected, and only for the
	// owning club (admins bypass).
	Update(ctx context.Context, actor *entity.Principal, id string, req UpdateEventRequest) (*entity.Event, error)
	Delete(ctx context.Context, actor *entity.Principal, id string) error
	// Validate moves an event to valide/rejete/annule. Approval stamps the
	// validator, increments the club's validated-event counter by exactly
	// one and attempts a notification mail; a mail failure never reverts the
	// status.
	Validate(ctx context.Context, actor *entity.Principal, id, statut, raisonRejet string) (*entity.Event, error)
	MyEvents(ctx context.Context, actor *entity.Principal, query EventQuery) (*EventPage, error)
	ByClub(ctx context.Context, clubID string, query EventQuery) (*EventPage, error)
	Stats(ctx context.Context) (*EventStatsReport, error)
}
