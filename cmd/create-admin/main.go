package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/librisapp/libris-backend/internal/config"
	"github.com/librisapp/libris-backend/internal/database"
	"github.com/librisapp/libris-backend/internal/logger"
	"github.com/librisapp/libris-backend/internal/model"
	"github.com/librisapp/libris-backend/internal/repository"
	"github.com/librisapp/libris-backend/internal/service"
)

// create-admin creates an admin account, or promotes the account to admin
// when the email is already registered.
func main() {
	var name, email, password string
	flag.StringVar(&name, "name", "Administrator", "Admin display name")
	flag.StringVar(&email, "email", "", "Admin email (required)")
	flag.StringVar(&password, "password", "", "Admin password (required for new accounts)")
	flag.Parse()

	if email == "" {
		fmt.Println("Error: -email is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg)

	// Promote an existing account if one matches the email.
	existing, err := userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == model.RoleAdmin {
			fmt.Printf("%s is already an admin\n", email)
			return
		}
		if err := userRepo.SetRole(ctx, existing.ID, model.RoleAdmin); err != nil {
			log.Fatal().Err(err).Msg("Failed to promote user")
		}
		fmt.Printf("Promoted %s to admin\n", email)
		return
	case errors.Is(err, pgx.ErrNoRows):
		// Fall through to creation.
	default:
		log.Fatal().Err(err).Msg("Failed to look up user")
	}

	if len(password) < 8 {
		fmt.Println("Error: -password must be at least 8 characters")
		os.Exit(1)
	}

	hash, err := authService.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("Created admin %s (%s)\n", user.Name, user.Email)
}
