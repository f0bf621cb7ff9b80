package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	inErrors "github.com/Alturino/nayarn/internal/errors"
)

const selectCollection = `
SELECT id, name, slug, description, image_url, created_at, updated_at
FROM collections
`

func scanCollection(row pgx.Row) (Collection, error) {
	var col Collection
	err := row.Scan(
		&col.ID,
		&col.Name,
		&col.Slug,
		&col.Description,
		&col.ImageURL,
		&col.CreatedAt,
		&col.UpdatedAt,
	)
	return col, err
}

func (q *Queries) ListCollections(c context.Context) ([]Collection, error) {
	rows, err := q.db.Query(c, selectCollection+`ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collections := []Collection{}
	for rows.Next() {
		col, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, col)
	}
	return collections, rows.Err()
}

func (q *Queries) FindCollectionById(c context.Context, id uuid.UUID) (Collection, error) {
	col, err := scanCollection(q.db.QueryRow(c, selectCollection+`WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Collection{}, fmt.Errorf("collection id=%s: %w", id, inErrors.ErrNotFound)
	}
	return col, err
}

func (q *Queries) FindCollectionBySlug(c context.Context, slug string) (Collection, error) {
	col, err := scanCollection(q.db.QueryRow(c, selectCollection+`WHERE slug = $1`, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return Collection{}, fmt.Errorf("collection slug=%s: %w", slug, inErrors.ErrNotFound)
	}
	return col, err
}

type InsertCollectionParams struct {
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
}

func (q *Queries) InsertCollection(c context.Context, arg InsertCollectionParams) (Collection, error) {
	const query = `
INSERT INTO collections (name, slug, description, image_url)
VALUES ($1, $2, $3, $4)
RETURNING id, name, slug, description, image_url, created_at, updated_at
`
	return scanCollection(q.db.QueryRow(c, query, arg.Name, arg.Slug, arg.Description, arg.ImageURL))
}

type UpdateCollectionParams struct {
	ID uuid.UUID
	InsertCollectionParams
}

func (q *Queries) UpdateCollection(c context.Context, arg UpdateCollectionParams) (Collection, error) {
	const query = `
UPDATE collections
SET name = $2, slug = $3, description = $4, image_url = $5, updated_at = NOW()
WHERE id = $1
RETURNING id, name, slug, description, image_url, created_at, updated_at
`
	col, err := scanCollection(
		q.db.QueryRow(c, query, arg.ID, arg.Name, arg.Slug, arg.Description, arg.ImageURL),
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Collection{}, fmt.Errorf("collection id=%s: %w", arg.ID, inErrors.ErrNotFound)
	}
	return col, err
}

func (q *Queries) DeleteCollection(c context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(c, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("collection id=%s: %w", id, inErrors.ErrNotFound)
	}
	return nil
}
