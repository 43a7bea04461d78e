package inbound

import (
	"context"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
)

type CreateClubRequest struct {
	Nom         string `json:"nom"`
	Email       string `json:"email"`
	Categorie   string `json:"categorie"`
	Description string `json:"description"`
}

type CreatedClub struct {
	Club *entity.Club `json:"club"`
	// TemporaryPassword is returned to the caller in development setups; it
	// is always mailed to the club address.
	TemporaryPassword string `json:"motDePasse,omitempty"`
}

type UpdateClubProfileRequest struct {
	Description     *string               `json:"description,omitempty"`
	Membres         *int                  `json:"membres,omitempty"`
	President       *entity.ClubPresident `json:"president,omitempty"`
	Contact         *entity.ClubContact   `json:"contact,omitempty"`
	DetailsComplets *entity.ClubDetails   `json:"detailsComplets,omitempty"`
	ReseauxSociaux  *entity.ClubSocials   `json:"reseauxSociaux,omitempty"`
	SiteWeb         *string               `json:"siteWeb,omitempty"`
}

type ClubQuery struct {
	PageQuery
	Filters outbound.ClubFilters
}

type ClubPage struct {
	Clubs      []*entity.Club `json:"clubs"`
	Pagination PageMeta       `json:"pagination"`
}

// PublicClub is the projection exposed without authentication.
type PublicClub struct {
	ID              string             `json:"id"`
	Nom             string             `json:"nom"`
	Categorie       string             `json:"categorie"`
	Description     string             `json:"description,omitempty"`
	Membres         int                `json:"membres"`
	DetailsComplets entity.ClubDetails `json:"detailsComplets"`
	ReseauxSociaux  entity.ClubSocials `json:"reseauxSociaux"`
	SiteWeb         string             `json:"siteWeb,omitempty"`
}

type PublicClubPage struct {
	Clubs      []PublicClub `json:"clubs"`
	Pagination PageMeta     `json:"pagination"`
}

type ClubStatsReport struct {
	Total             int            `json:"total"`
	Active            int            `json:"active"`
	Pending           int            `json:"pending"`
	Inactive          int            `json:"inactive"`
	CompletedProfiles int            `json:"completedProfiles"`
	ByCategory        map[string]int `json:"byCategory"`
}

type ClubUseCase interface {
	List(ctx context.Context, query ClubQuery) (*ClubPage, error)
	Get(ctx context.Context, id string) (*entity.Club, error)
	PublicList(ctx context.Context, query ClubQuery) (*PublicClubPage, error)
	PublicGet(ctx context.Context, id string) (*PublicClub, error)
	// Create registers a club with a generated password mailed to its
	// address. A duplicate email is a conflict: nothing is stored, no mail
	// is sent.
	Create(ctx context.Context, actor *entity.Principal, req CreateClubRequest) (*CreatedClub, error)
	// UpdateStatus approves/suspends/rejects a club and notifies it by mail;
	// the mail is best-effort.
	UpdateStatus(ctx context.Context, actor *entity.Principal, id, statut, raisonRejet string) (*entity.Club, error)
	// Delete cascades: club events first, then user assignments, then the
	// club document itself.
	Delete(ctx context.Context, actor *entity.Principal, id string) error
	MyProfile(ctx context.Context, actor *entity.Principal) (*entity.Club, error)
	UpdateProfile(ctx context.Context, actor *entity.Principal, id string, req UpdateClubProfileRequest) (*entity.Club, error)
	Stats(ctx context.Context) (*ClubStatsReport, error)

	// First-login flow for club accounts.
	CheckFirstLogin(ctx context.Context, actor *entity.Principal) (bool, error)
	CompleteFirstLogin(ctx context.Context, actor *entity.Principal, req UpdateClubProfileRequest) (*entity.Club, error)
}
