package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/drug-catalog-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations on user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// AddBookmark appends drugName unless already present. It returns ErrNotFound when
	// the user is missing and ErrAlreadyExists when the bookmark is present.
	AddBookmark(ctx context.Context, username, drugName string) ([]string, error)
	// RemoveBookmark returns ErrNotFound when the user or the bookmark is missing.
	RemoveBookmark(ctx context.Context, username, drugName string) ([]string, error)
	RenameUser(ctx context.Context, currentUsername, newUsername string) (models.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// DrugStore persists immutable drug records.
type DrugStore interface {
	CreateDrug(ctx context.Context, drug models.Drug) (models.Drug, error)
	// FindDrugByName matches the whole name ignoring case.
	FindDrugByName(ctx context.Context, drugName string) (models.Drug, error)
}

// AdminStore persists admin accounts.
type AdminStore interface {
	CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error)
	FindAdminByEmail(ctx context.Context, email string) (models.Admin, error)
}

// Store is the full persistence surface handed to the HTTP layer.
type Store interface {
	UserStore
	DrugStore
	AdminStore
	Ping(ctx context.Context) error
	Close()
}
