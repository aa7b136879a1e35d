// Command adminctl provisions admin accounts, which have no HTTP registration route.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/hongminglow/drug-catalog-be/internal/auth"
	"github.com/hongminglow/drug-catalog-be/internal/config"
	"github.com/hongminglow/drug-catalog-be/internal/logging"
	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
	"github.com/hongminglow/drug-catalog-be/internal/storage/backend"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	admin, password, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init store")
	}
	defer store.Close()

	created, err := createAdmin(ctx, store, admin, password)
	if err != nil {
		log.Error().Err(err).Str("email", admin.Email).Msg("create admin")
		store.Close()
		os.Exit(1)
	}
	log.Info().Str("id", created.ID).Str("email", created.Email).Msg("admin created")
}

func parseFlags(args []string) (models.Admin, string, error) {
	fs := flag.NewFlagSet("adminctl", flag.ContinueOnError)
	var admin models.Admin
	var password string
	fs.StringVar(&admin.Username, "username", "", "admin username (required)")
	fs.StringVar(&admin.Email, "email", "", "admin email, unique (required)")
	fs.StringVar(&password, "password", "", "admin password (required)")
	fs.StringVar(&admin.ReferralID, "referral-id", "", "referral id (required)")
	fs.StringVar(&admin.ReferredID, "referred-id", "", "id of the referring admin")
	fs.StringVar(&admin.MyReferrals, "my-referrals", "", "free-form referral notes")
	fs.StringVar(&admin.PhoneNumber, "phone", "", "phone number (required)")
	if err := fs.Parse(args); err != nil {
		return models.Admin{}, "", err
	}

	admin.Username = strings.TrimSpace(admin.Username)
	admin.Email = strings.TrimSpace(admin.Email)
	admin.ReferralID = strings.TrimSpace(admin.ReferralID)
	admin.PhoneNumber = strings.TrimSpace(admin.PhoneNumber)

	var missing []string
	for name, value := range map[string]string{
		"-username":    admin.Username,
		"-email":       admin.Email,
		"-password":    password,
		"-referral-id": admin.ReferralID,
		"-phone":       admin.PhoneNumber,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return models.Admin{}, "", fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return admin, password, nil
}

func createAdmin(ctx context.Context, store storage.AdminStore, admin models.Admin, password string) (models.Admin, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Admin{}, fmt.Errorf("hash password: %w", err)
	}
	admin.PasswordHash = hash

	created, err := store.CreateAdmin(ctx, admin)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return models.Admin{}, fmt.Errorf("admin with email %s already exists: %w", admin.Email, err)
	}
	return created, err
}
