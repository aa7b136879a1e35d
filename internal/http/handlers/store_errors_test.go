package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
	"github.com/hongminglow/drug-catalog-be/internal/storage/memory"
)

var errConnRefused = errors.New("conn refused")

// staleStore answers lookups as if a concurrent write had not landed yet, so the
// handlers' pre-checks pass and only the store's own constraints can reject the write.
type staleStore struct {
	*memory.Store
	hidden map[string]bool
}

func (s *staleStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	if s.hidden[username] {
		return models.User{}, storage.ErrNotFound
	}
	user, err := s.Store.FindByUsername(ctx, username)
	user.Bookmarks = []string{}
	return user, err
}

func (s *staleStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if s.hidden[email] {
		return models.User{}, storage.ErrNotFound
	}
	return s.Store.FindByEmail(ctx, email)
}

func (s *staleStore) FindDrugByName(ctx context.Context, drugName string) (models.Drug, error) {
	if s.hidden[drugName] {
		return models.Drug{}, storage.ErrNotFound
	}
	return s.Store.FindDrugByName(ctx, drugName)
}

func TestStoreConstraintDecidesConflicts(t *testing.T) {
	ctx := context.Background()
	base := memory.NewStore()
	_, err := base.CreateUser(ctx, models.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = base.CreateUser(ctx, models.User{Username: "bob", Email: "b@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = base.AddBookmark(ctx, "alice", "Aspirin")
	require.NoError(t, err)
	_, err = base.CreateDrug(ctx, models.Drug{DrugName: "Aspirin", Description: "Pain reliever"})
	require.NoError(t, err)

	mux := newTestMux(&staleStore{Store: base, hidden: map[string]bool{
		"a@x.com": true,
		"bob":     true,
		"Aspirin": true,
	}}, nil)

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		message string
	}{
		{"register", http.MethodPost, "/register-user", map[string]string{"username": "alice2", "email": "a@x.com", "password": "pw"}, "user already exists"},
		{"edit username", http.MethodPut, "/edit-username", map[string]string{"currentUsername": "alice", "newUsername": "bob"}, "username already taken"},
		{"add bookmark", http.MethodPost, "/add-bookmark", map[string]string{"username": "alice", "drugName": "Aspirin"}, "drug already bookmarked"},
		{"upload", http.MethodPost, "/upload", map[string]string{"drugName": "Aspirin", "description": "again"}, "drug already exists"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, env := doJSON(t, mux, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusConflict, status)
			assert.Equal(t, tc.message, env.Message)
		})
	}

	user, err := base.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Aspirin"}, user.Bookmarks)
}

// failingStore fails every call that reaches the database.
type failingStore struct {
	*memory.Store
}

func (failingStore) FindByUsername(context.Context, string) (models.User, error) {
	return models.User{}, errConnRefused
}

func (failingStore) FindByEmail(context.Context, string) (models.User, error) {
	return models.User{}, errConnRefused
}

func (failingStore) FindDrugByName(context.Context, string) (models.Drug, error) {
	return models.Drug{}, errConnRefused
}

// brokenWritesStore reads normally but fails every write.
type brokenWritesStore struct {
	*memory.Store
}

func (brokenWritesStore) AddBookmark(context.Context, string, string) ([]string, error) {
	return nil, errConnRefused
}

func (brokenWritesStore) CreateDrug(context.Context, models.Drug) (models.Drug, error) {
	return models.Drug{}, errConnRefused
}

func TestStoreFailuresAreInternalErrors(t *testing.T) {
	ctx := context.Background()
	base := memory.NewStore()
	_, err := base.CreateUser(ctx, models.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	failing := newTestMux(failingStore{Store: base}, nil)
	brokenWrites := newTestMux(brokenWritesStore{Store: base}, nil)

	tests := []struct {
		name    string
		mux     http.Handler
		method  string
		path    string
		body    any
		message string
	}{
		{"register", failing, http.MethodPost, "/register-user", map[string]string{"username": "bob", "email": "b@x.com", "password": "pw"}, "failed to check email"},
		{"login", failing, http.MethodPost, "/login-user", map[string]string{"email": "a@x.com", "password": "pw"}, "failed to fetch user"},
		{"check bookmark", failing, http.MethodPost, "/check-bookmark", map[string]string{"username": "alice", "drugName": "Aspirin"}, "failed to fetch user"},
		{"show bookmarks", failing, http.MethodGet, "/show-bookmarks/alice", nil, "failed to fetch user"},
		{"get user", failing, http.MethodGet, "/get-user?username=alice", nil, "failed to fetch user"},
		{"search", failing, http.MethodGet, "/search-drug?drugName=Aspirin", nil, "failed to search drug"},
		{"upload check", failing, http.MethodPost, "/upload", map[string]string{"drugName": "Aspirin", "description": "d"}, "failed to check drug"},
		{"add bookmark write", brokenWrites, http.MethodPost, "/add-bookmark", map[string]string{"username": "alice", "drugName": "Aspirin"}, "failed to add bookmark"},
		{"upload write", brokenWrites, http.MethodPost, "/upload", map[string]string{"drugName": "Aspirin", "description": "d"}, "failed to save drug"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, env := doJSON(t, tc.mux, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusInternalServerError, status)
			assert.Equal(t, tc.message, env.Message)
			assert.Equal(t, errConnRefused.Error(), env.Error)
		})
	}
}
