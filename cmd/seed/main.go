package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/config"
	"github.com/clubhub/clubhub/infrastructure/persistence/mongodb"
	"github.com/clubhub/clubhub/infrastructure/service/password"
)

// Seeds a development database with a couple of clubs, a staff user and an
// event in each state. Skips anything that already exists by email.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := mongodb.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close()

	users := mongodb.NewUserRepository(store)
	clubs := mongodb.NewClubRepository(store)
	events := mongodb.NewEventRepository(store)
	passwordService := password.NewBcryptPasswordService(10)

	hash, err := passwordService.HashPassword("Demo1234!")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	activeClub := seedClub(ctx, clubs, hash, "Club Robotique", "robotique@esprit.tn", "technologique", true)
	seedClub(ctx, clubs, hash, "Club Théâtre", "theatre@esprit.tn", "culturel", false)

	if _, err := users.FindByEmail(ctx, "moderateur@esprit.tn"); errors.Is(err, outbound.ErrNotFound) {
		user := entity.NewUser("moderateur@esprit.tn", hash, "Ben Salah", "Amine", entity.RoleModerateur)
		user.Permissions = []string{entity.PermValidateEvent, entity.PermEditClub}
		if activeClub != nil {
			user.ClubAssigne = activeClub.ID
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}
		fmt.Printf("Seeded user %s\n", user.Email)
	}

	if activeClub != nil {
		now := time.Now()
		pending := entity.NewEvent(activeClub.ID, "Atelier Arduino", "Initiation aux microcontrôleurs", now.AddDate(0, 0, 14), now.AddDate(0, 0, 14), "Salle B12", "atelier")
		validated := entity.NewEvent(activeClub.ID, "Compétition de robots", "Concours annuel inter-écoles", now.AddDate(0, 1, 0), now.AddDate(0, 1, 1), "Amphithéâtre", "competition")
		validated.Statut = entity.EventValide
		validated.DateValidation = now

		for _, ev := range []*entity.Event{pending, validated} {
			if err := events.Create(ctx, ev); err != nil {
				log.Fatalf("Failed to seed event: %v", err)
			}
			fmt.Printf("Seeded event %q (%s)\n", ev.Titre, ev.Statut)
		}
		if err := clubs.IncrementEventCounters(ctx, activeClub.ID, 2, 1); err != nil {
			log.Fatalf("Failed to update club counters: %v", err)
		}
	}

	fmt.Println("Seed complete")
}

func seedClub(ctx context.Context, clubs outbound.ClubRepository, hash, nom, email, categorie string, activate bool) *entity.Club {
	existing, err := clubs.FindByEmail(ctx, email)
	if err == nil {
		fmt.Printf("Club %s already exists\n", email)
		return existing
	}
	if !errors.Is(err, outbound.ErrNotFound) {
		log.Fatalf("Failed to check existing club: %v", err)
	}

	club := entity.NewClub(email, hash, nom, categorie)
	if activate {
		club.Statut = entity.StatusActif
		club.Valide = true
		club.PremiereConnexion = false
		club.President = entity.ClubPresident{Nom: "Trabelsi", Prenom: "Sami", Email: "president@" + categorie + ".tn"}
		club.Contact = entity.ClubContact{Telephone: "+216 20 000 000"}
		club.DetailsComplets = entity.ClubDetails{
			Presentation: "Club étudiant de " + categorie,
			Objectifs:    []string{"Apprendre", "Partager"},
		}
		club.RefreshProfileComplet()
	}
	if err := clubs.Create(ctx, club); err != nil {
		log.Fatalf("Failed to seed club: %v", err)
	}
	fmt.Printf("Seeded club %s (%s)\n", club.Nom, club.Statut)
	return club
}
