package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   string    `bson:"_id" json:"id"`
	Email                string    `bson:"email" json:"email"`
	Password             string    `bson:"password" json:"-"`
	Nom                  string    `bson:"nom" json:"nom"`
	Prenom               string    `bson:"prenom" json:"prenom"`
	Telephone            string    `bson:"telephone,omitempty" json:"telephone,omitempty"`
	Role                 string    `bson:"role" json:"role"`
	Statut               string    `bson:"statut" json:"statut"`
	DerniereConnexion    time.Time `bson:"derniereConnexion" json:"derniereConnexion"`
	Permissions          []string  `bson:"permissions" json:"permissions"`
	ClubAssigne          string    `bson:"clubAssigne,omitempty" json:"clubAssigne,omitempty"`
	ResetPasswordToken   string    `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt"`
}

func NewUser(email, passwordHash, nom, prenom, role string) *User {
	now := time.Now()
	if role == "" {
		role = RoleClubManager
	}
	return &User{
		ID:                uuid.NewString(),
		Email:             email,
		Password:          passwordHash,
		Nom:               nom,
		Prenom:            prenom,
		Role:              role,
		Statut:            StatusActif,
		DerniereConnexion: now,
		Permissions:       []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// NomComplet is the display name used in log enrichment and emails.
func (u *User) NomComplet() string {
	return u.Prenom + " " + u.Nom
}

func (u *User) HasPermission(permission string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
