package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

const userColumns = `id::text, username, email, password_hash, bookmarks, created_at`

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns
	row := s.pool.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		return models.User{}, translate(err)
	}
	return created, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// AddBookmark appends in a single statement guarded on non-membership.
func (s *Store) AddBookmark(ctx context.Context, username, drugName string) ([]string, error) {
	const query = `
		UPDATE users SET bookmarks = array_append(bookmarks, $2)
		WHERE username = $1 AND NOT ($2 = ANY(bookmarks))
		RETURNING bookmarks`
	var bookmarks []string
	err := s.pool.QueryRow(ctx, query, username, drugName).Scan(&bookmarks)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, findErr := s.FindByUsername(ctx, username); findErr != nil {
			return nil, findErr
		}
		return nil, storage.ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// RemoveBookmark drops every occurrence of drugName from the user's bookmarks.
func (s *Store) RemoveBookmark(ctx context.Context, username, drugName string) ([]string, error) {
	const query = `
		UPDATE users SET bookmarks = array_remove(bookmarks, $2)
		WHERE username = $1 AND $2 = ANY(bookmarks)
		RETURNING bookmarks`
	var bookmarks []string
	err := s.pool.QueryRow(ctx, query, username, drugName).Scan(&bookmarks)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// RenameUser changes a username; the unique index rejects taken names.
func (s *Store) RenameUser(ctx context.Context, currentUsername, newUsername string) (models.User, error) {
	const query = `UPDATE users SET username = $2 WHERE username = $1 RETURNING ` + userColumns
	row := s.pool.QueryRow(ctx, query, currentUsername, newUsername)
	user, err := scanUser(row)
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

// UpdatePassword overwrites the stored hash.
func (s *Store) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE username = $1`, username, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Bookmarks, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	if user.Bookmarks == nil {
		user.Bookmarks = []string{}
	}
	return user, nil
}
