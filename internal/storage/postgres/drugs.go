package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

const drugColumns = `id::text, drug_name, description, uses, indications, side_effects, warnings, photo, photo_content_type, created_at`

// CreateDrug inserts a drug row. Names are unique ignoring case.
func (s *Store) CreateDrug(ctx context.Context, drug models.Drug) (models.Drug, error) {
	drug.Normalize()
	const query = `
		INSERT INTO drugs (drug_name, description, uses, indications, side_effects, warnings, photo, photo_content_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + drugColumns
	row := s.pool.QueryRow(ctx, query,
		drug.DrugName, drug.Description,
		drug.Uses, drug.Indications, drug.SideEffects, drug.Warnings,
		drug.Photo, drug.PhotoContentType,
	)
	created, err := scanDrug(row)
	if err != nil {
		return models.Drug{}, translate(err)
	}
	return created, nil
}

// FindDrugByName does a case-insensitive exact lookup served by drugs_name_ci_unique_idx.
func (s *Store) FindDrugByName(ctx context.Context, drugName string) (models.Drug, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+drugColumns+` FROM drugs WHERE lower(drug_name) = lower($1)`, drugName)
	return scanDrug(row)
}

func scanDrug(row pgx.Row) (models.Drug, error) {
	var d models.Drug
	err := row.Scan(&d.ID, &d.DrugName, &d.Description,
		&d.Uses, &d.Indications, &d.SideEffects, &d.Warnings,
		&d.Photo, &d.PhotoContentType, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Drug{}, storage.ErrNotFound
		}
		return models.Drug{}, err
	}
	d.Normalize()
	return d, nil
}
