package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
	"github.com/clubhub/clubhub/infrastructure/config"
	"github.com/clubhub/clubhub/infrastructure/persistence/mongodb"
	"github.com/clubhub/clubhub/infrastructure/service/password"
)

// Creates (or reports) the bootstrap admin account. Idempotent: running it
// twice against the same database leaves the existing admin untouched.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	email := getenvDefault("ADMIN_EMAIL", "admin@esprit.tn")
	plaintext := getenvDefault("ADMIN_PASSWORD", "admin123")
	nom := getenvDefault("ADMIN_NOM", "Admin")
	prenom := getenvDefault("ADMIN_PRENOM", "Système")

	store, err := mongodb.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close()

	admins := mongodb.NewAdminRepository(store)

	existing, err := admins.FindByEmail(ctx, email)
	if err == nil {
		fmt.Printf("Admin %s already exists (id=%s)\n", existing.Email, existing.ID)
		return
	}
	if !errors.Is(err, outbound.ErrNotFound) {
		log.Fatalf("Failed to check existing admin: %v", err)
	}

	passwordService := password.NewBcryptPasswordService(10)
	hash, err := passwordService.HashPassword(plaintext)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := entity.NewAdmin(email, hash, nom, prenom)
	if err := admins.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin created: %s (id=%s)\n", admin.Email, admin.ID)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
