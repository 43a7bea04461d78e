package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event statuses.
const (
	EventEnAttente = "en_attente"
	EventValide    = "valide"
	EventRejete    = "rejete"
	EventAnnule    = "annule"
	EventTermine   = "termine"
)

var EventTypes = []string{
	"conference", "atelier", "competition", "sortie",
	"formation", "reunion", "ceremonie", "autre",
}

var EventPublics = []string{"etudiants", "professeurs", "externe", "mixte"}

type EventContact struct {
	Nom       string `bson:"nom,omitempty" json:"nom,omitempty"`
	Telephone string `bson:"telephone,omitempty" json:"telephone,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
}

type EventStats struct {
	Vues         int `bson:"vues" json:"vues"`
	Inscriptions int `bson:"inscriptions" json:"inscriptions"`
	Partages     int `bson:"partages" json:"partages"`
}

type Event struct {
	ID             string       `bson:"_id" json:"id"`
	ClubID         string       `bson:"clubId" json:"clubId"`
	Titre          string       `bson:"titre" json:"titre"`
	Description    string       `bson:"description" json:"description"`
	DateDebut      time.Time    `bson:"dateDebut" json:"dateDebut"`
	DateFin        time.Time    `bson:"dateFin" json:"dateFin"`
	HeureDebut     string       `bson:"heureDebut,omitempty" json:"heureDebut,omitempty"`
	HeureFin       string       `bson:"heureFin,omitempty" json:"heureFin,omitempty"`
	Lieu           string       `bson:"lieu" json:"lieu"`
	Adresse        string       `bson:"adresse,omitempty" json:"adresse,omitempty"`
	CapaciteMax    int          `bson:"capaciteMax,omitempty" json:"capaciteMax,omitempty"`
	TypeEvent      string       `bson:"typeEvent" json:"typeEvent"`
	Public         string       `bson:"public" json:"public"`
	Gratuit        bool         `bson:"gratuit" json:"gratuit"`
	Prix           float64      `bson:"prix" json:"prix"`
	LienFormulaire string       `bson:"lienFormulaire,omitempty" json:"lienFormulaire,omitempty"`
	Contact        EventContact `bson:"contact" json:"contact"`
	Statut         string       `bson:"statut" json:"statut"`
	RaisonRejet    string       `bson:"raisonRejet,omitempty" json:"raisonRejet,omitempty"`
	ValideBy       string       `bson:"valideBy,omitempty" json:"valideBy,omitempty"`
	DateValidation time.Time    `bson:"dateValidation,omitempty" json:"dateValidation,omitempty"`
	Stats          EventStats   `bson:"stats" json:"stats"`
	Tags           []string     `bson:"tags,omitempty" json:"tags,omitempty"`
	Visible        bool         `bson:"visible" json:"visible"`
	CreatedAt      time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time    `bson:"updatedAt" json:"updatedAt"`
}

func NewEvent(clubID, titre, description string, debut, fin time.Time, lieu, typeEvent string) *Event {
	now := time.Now()
	return &Event{
		ID:          uuid.NewString(),
		ClubID:      clubID,
		Titre:       titre,
		Description: description,
		DateDebut:   debut,
		DateFin:     fin,
		Lieu:        lieu,
		TypeEvent:   typeEvent,
		Public:      "etudiants",
		Gratuit:     true,
		Statut:      EventEnAttente,
		Visible:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsPast reports whether the event already ended.
func (e *Event) IsPast() bool {
	return e.DateFin.Before(time.Now())
}

// CanBeModified: only pending or rejected events may change.
func (e *Event) CanBeModified() bool {
	return e.Statut == EventEnAttente || e.Statut == EventRejete
}

func IsValidEventType(t string) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}
