package entity

import (
	"time"

	"github.com/google/uuid"
)

// Club categories accepted at creation.
var ClubCategories = []string{
	"sportif", "culturel", "technologique", "social",
	"academique", "entrepreneurial", "Autre",
}

type ClubPresident struct {
	Nom       string `bson:"nom,omitempty" json:"nom,omitempty"`
	Prenom    string `bson:"prenom,omitempty" json:"prenom,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	Telephone string `bson:"telephone,omitempty" json:"telephone,omitempty"`
}

type ClubContact struct {
	Telephone string `bson:"telephone,omitempty" json:"telephone,omitempty"`
	Adresse   string `bson:"adresse,omitempty" json:"adresse,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
}

type ClubDetails struct {
	NomComplet      string   `bson:"nomComplet,omitempty" json:"nomComplet,omitempty"`
	Presentation    string   `bson:"presentation,omitempty" json:"presentation,omitempty"`
	Objectifs       []string `bson:"objectifs,omitempty" json:"objectifs,omitempty"`
	Activites       []string `bson:"activitesDetaillees,omitempty" json:"activitesDetaillees,omitempty"`
	Valeurs         []string `bson:"valeurs,omitempty" json:"valeurs,omitempty"`
	Logo            string   `bson:"logo,omitempty" json:"logo,omitempty"`
	Localisation    string   `bson:"localisation,omitempty" json:"localisation,omitempty"`
	HorairesReunion string   `bson:"horairesReunion,omitempty" json:"horairesReunion,omitempty"`
}

type ClubSocials struct {
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	YouTube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
}

type ClubStats struct {
	NombreEvents        int       `bson:"nombreEvents" json:"nombreEvents"`
	NombreEventsValides int       `bson:"nombreEventsValides" json:"nombreEventsValides"`
	DerniereActivite    time.Time `bson:"derniereActivite" json:"derniereActivite"`
}

type Club struct {
	ID                   string      `bson:"_id" json:"id"`
	Email                string      `bson:"email" json:"email"`
	Password             string      `bson:"password" json:"-"`
	Nom                  string      `bson:"nom" json:"nom"`
	Categorie            string      `bson:"categorie" json:"categorie"`
	Description          string      `bson:"description,omitempty" json:"description,omitempty"`
	Membres              int         `bson:"membres" json:"membres"`
	President            ClubPresident `bson:"president" json:"president"`
	Contact              ClubContact `bson:"contact" json:"contact"`
	DetailsComplets      ClubDetails `bson:"detailsComplets" json:"detailsComplets"`
	ReseauxSociaux       ClubSocials `bson:"reseauxSociaux" json:"reseauxSociaux"`
	SiteWeb              string      `bson:"siteWeb,omitempty" json:"siteWeb,omitempty"`
	Statut               string      `bson:"statut" json:"statut"`
	RaisonRejet          string      `bson:"raisonRejet,omitempty" json:"raisonRejet,omitempty"`
	Valide               bool        `bson:"valide" json:"valide"`
	ValideePar           string      `bson:"valideePar,omitempty" json:"valideePar,omitempty"`
	DateValidation       time.Time   `bson:"dateValidation,omitempty" json:"dateValidation,omitempty"`
	ProfileComplet       bool        `bson:"profileComplet" json:"profileComplet"`
	PremiereConnexion    bool        `bson:"premiereConnexion" json:"premiereConnexion"`
	Stats                ClubStats   `bson:"stats" json:"stats"`
	ResetPasswordToken   string      `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires time.Time   `bson:"resetPasswordExpires,omitempty" json:"-"`
	CreatedAt            time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time   `bson:"updatedAt" json:"updatedAt"`
}

func NewClub(email, passwordHash, nom, categorie string) *Club {
	now := time.Now()
	return &Club{
		ID:                uuid.NewString(),
		Email:             email,
		Password:          passwordHash,
		Nom:               nom,
		Categorie:         categorie,
		Statut:            StatusEnAttente,
		PremiereConnexion: true,
		Stats:             ClubStats{DerniereActivite: now},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// IsProfileComplete checks the required sub-fields: president name and email,
// a contact phone, a presentation text and at least one objective.
func (c *Club) IsProfileComplete() bool {
	return c.DetailsComplets.Presentation != "" &&
		len(c.DetailsComplets.Objectifs) > 0 &&
		c.President.Nom != "" &&
		c.President.Email != "" &&
		c.Contact.Telephone != ""
}

// RefreshProfileComplet recomputes the derived flag. Callers must invoke it
// before every save that touches profile fields.
func (c *Club) RefreshProfileComplet() {
	c.ProfileComplet = c.IsProfileComplete()
}

// ValidateByAdmin marks the club approved by the given admin and activates it.
func (c *Club) ValidateByAdmin(adminID string) {
	c.Valide = true
	c.ValideePar = adminID
	c.DateValidation = time.Now()
	c.Statut = StatusActif
}

func IsValidClubCategory(categorie string) bool {
	for _, c := range ClubCategories {
		if c == categorie {
			return true
		}
	}
	return false
}
