package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

const adminColumns = `id::text, username, email, password_hash, referral_id, referred_id, my_referrals, phone_number, bookmarks, created_at`

// CreateAdmin inserts an admin row.
func (s *Store) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	const query = `
		INSERT INTO admins (username, email, password_hash, referral_id, referred_id, my_referrals, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + adminColumns
	row := s.pool.QueryRow(ctx, query,
		admin.Username, admin.Email, admin.PasswordHash,
		admin.ReferralID, admin.ReferredID, admin.MyReferrals, admin.PhoneNumber,
	)
	created, err := scanAdmin(row)
	if err != nil {
		return models.Admin{}, translate(err)
	}
	return created, nil
}

// FindAdminByEmail fetches an admin by email address.
func (s *Store) FindAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, email)
	return scanAdmin(row)
}

func scanAdmin(row pgx.Row) (models.Admin, error) {
	var a models.Admin
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash,
		&a.ReferralID, &a.ReferredID, &a.MyReferrals, &a.PhoneNumber, &a.Bookmarks, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Admin{}, storage.ErrNotFound
		}
		return models.Admin{}, err
	}
	if a.Bookmarks == nil {
		a.Bookmarks = []string{}
	}
	return a, nil
}
