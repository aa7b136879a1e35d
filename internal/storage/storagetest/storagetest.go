// Package storagetest holds behaviour checks shared by every storage.Store implementation.
package storagetest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

// RequireIntegration skips unless RUN_STORE_INTEGRATION=true and returns the named env var
// after loading the nearest .env file.
func RequireIntegration(t *testing.T, key string) string {
	t.Helper()
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORE_INTEGRATION=true to run store integration tests")
	}
	loadDotEnv()
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		t.Fatalf("%s is required", key)
	}
	return value
}

func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			_ = godotenv.Overload(candidate)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// Run exercises s. Names are suffixed so the checks can run against a shared live database.
func Run(t *testing.T, s storage.Store) {
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, s.Ping(context.Background()))
	})
	t.Run("users", func(t *testing.T) { users(t, s, suffix) })
	t.Run("bookmarks", func(t *testing.T) { bookmarks(t, s, suffix) })
	t.Run("drugs", func(t *testing.T) { drugs(t, s, suffix) })
	t.Run("admins", func(t *testing.T) { admins(t, s, suffix) })
}

func users(t *testing.T, s storage.Store, suffix string) {
	ctx := context.Background()
	name := "user_" + suffix
	email := name + "@example.com"

	created, err := s.CreateUser(ctx, models.User{Username: name, Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Bookmarks)

	_, err = s.CreateUser(ctx, models.User{Username: name + "_other", Email: email, PasswordHash: "hash"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	_, err = s.CreateUser(ctx, models.User{Username: name, Email: "other_" + email, PasswordHash: "hash"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	byEmail, err := s.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	_, err = s.FindByUsername(ctx, "missing_"+suffix)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	renamed, err := s.RenameUser(ctx, name, name+"_renamed")
	require.NoError(t, err)
	assert.Equal(t, name+"_renamed", renamed.Username)
	_, err = s.FindByUsername(ctx, name)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.RenameUser(ctx, "missing_"+suffix, "whatever_"+suffix)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.UpdatePassword(ctx, name+"_renamed", "hash2"))
	updated, err := s.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "hash2", updated.PasswordHash)
	assert.ErrorIs(t, s.UpdatePassword(ctx, "missing_"+suffix, "x"), storage.ErrNotFound)
}

func bookmarks(t *testing.T, s storage.Store, suffix string) {
	ctx := context.Background()
	name := "reader_" + suffix
	_, err := s.CreateUser(ctx, models.User{Username: name, Email: name + "@example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	list, err := s.AddBookmark(ctx, name, "Ibuprofen")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ibuprofen"}, list)
	list, err = s.AddBookmark(ctx, name, "Aspirin")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ibuprofen", "Aspirin"}, list)

	_, err = s.AddBookmark(ctx, name, "Aspirin")
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	_, err = s.AddBookmark(ctx, "missing_"+suffix, "Aspirin")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err = s.RemoveBookmark(ctx, name, "Ibuprofen")
	require.NoError(t, err)
	assert.Equal(t, []string{"Aspirin"}, list)
	_, err = s.RemoveBookmark(ctx, name, "Ibuprofen")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func drugs(t *testing.T, s storage.Store, suffix string) {
	ctx := context.Background()
	name := "Aspirin_" + suffix

	created, err := s.CreateDrug(ctx, models.Drug{
		DrugName:         name,
		Description:      "Pain reliever",
		Uses:             []string{"Pain", "Fever"},
		Warnings:         []string{"Bleeding"},
		Photo:            []byte{0x89, 'P', 'N', 'G'},
		PhotoContentType: "image/png",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = s.CreateDrug(ctx, models.Drug{DrugName: strings.ToUpper(name), Description: "dup"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	found, err := s.FindDrugByName(ctx, strings.ToLower(name))
	require.NoError(t, err)
	assert.Equal(t, name, found.DrugName)
	assert.Equal(t, []string{"Pain", "Fever"}, found.Uses)
	assert.Empty(t, found.Indications)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, found.Photo)
	assert.Equal(t, "image/png", found.PhotoContentType)

	_, err = s.FindDrugByName(ctx, "Unobtainium_"+suffix)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func admins(t *testing.T, s storage.Store, suffix string) {
	ctx := context.Background()
	email := "admin_" + suffix + "@example.com"

	created, err := s.CreateAdmin(ctx, models.Admin{
		Username:     "admin_" + suffix,
		Email:        email,
		PasswordHash: "hash",
		ReferralID:   "REF-" + suffix,
		PhoneNumber:  "+60123456789",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = s.CreateAdmin(ctx, models.Admin{Username: "other", Email: email, PasswordHash: "hash", ReferralID: "R", PhoneNumber: "1"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	found, err := s.FindAdminByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "REF-"+suffix, found.ReferralID)
	assert.Equal(t, "+60123456789", found.PhoneNumber)
	_, err = s.FindAdminByEmail(ctx, "missing_"+email)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
