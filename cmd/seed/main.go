// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the admin account already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	companydomain "alumni-network/backend/internal/company/domain"
	companyrepo "alumni-network/backend/internal/company/repository"
	"alumni-network/backend/internal/config"
	"alumni-network/backend/internal/db"
	identitydomain "alumni-network/backend/internal/identity/domain"
	identityrepo "alumni-network/backend/internal/identity/repository"
	"alumni-network/backend/internal/security"
	userdomain "alumni-network/backend/internal/user/domain"
	userrepo "alumni-network/backend/internal/user/repository"
)

const devPassword = "password123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env or set DATABASE_URL")
	}
	adminEmail := cfg.AdminEmail
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	accounts := identityrepo.NewPostgresAccountRepository(conn)
	profiles := userrepo.NewPostgresProfileRepository(conn)
	companies := companyrepo.NewPostgresCompanyRepository(conn)

	existing, err := accounts.GetByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Printf("Seed already applied (%s exists). Skipping.", adminEmail)
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	adminUID := uuid.NewString()

	if err := accounts.Create(ctx, &identitydomain.Account{
		UID:          adminUID,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}); err != nil {
		log.Fatalf("create admin account: %v", err)
	}

	if err := profiles.Create(ctx, &userdomain.Profile{
		UID:                adminUID,
		FirstName:          "Admin",
		LastName:           "User",
		Email:              adminEmail,
		CompanyIDs:         []string{},
		TeamRoles:          []string{},
		Role:               userdomain.RoleAdmin,
		EmailNotifications: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}); err != nil {
		log.Fatalf("create admin profile: %v", err)
	}

	for _, name := range []string{"Acme Corp", "Globex", "Initech"} {
		if err := companies.Create(ctx, &companydomain.Company{
			ID:   uuid.NewString(),
			Name: name,
		}); err != nil {
			log.Fatalf("create company %s: %v", name, err)
		}
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Admin login: %s / %s\n", adminEmail, devPassword)
}
