package entity

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	ID                   string    `bson:"_id" json:"id"`
	Email                string    `bson:"email" json:"email"`
	Password             string    `bson:"password" json:"-"`
	Nom                  string    `bson:"nom,omitempty" json:"nom,omitempty"`
	Prenom               string    `bson:"prenom,omitempty" json:"prenom,omitempty"`
	Role                 string    `bson:"role" json:"role"`
	ResetPasswordToken   string    `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt"`
}

func NewAdmin(email, passwordHash, nom, prenom string) *Admin {
	now := time.Now()
	return &Admin{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  passwordHash,
		Nom:       nom,
		Prenom:    prenom,
		Role:      RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
