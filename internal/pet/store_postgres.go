// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pet

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/petstore/internal/platform/database/schema"
	"github.com/taibuivan/petstore/internal/platform/dberr"
	"github.com/taibuivan/petstore/pkg/slug"
)

// PostgresRepository stores pets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a pet store backed by pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// petSelect lists the columns scanned by scanPet, with p/c aliases for pet/category.
var petSelect = fmt.Sprintf(`
	p.%s, p.%s, p.%s, p.%s, p.%s, c.%s, c.%s, c.%s`,
	schema.StorePet.ID,
	schema.StorePet.Name,
	schema.StorePet.PhotoURLs,
	schema.StorePet.Tags,
	schema.StorePet.Status,
	schema.StoreCategory.ID,
	schema.StoreCategory.Name,
	schema.StoreCategory.Slug,
)

func scanPet(row pgx.Row) (*Pet, error) {
	p := &Pet{}
	var status string

	err := row.Scan(&p.ID, &p.Name, &p.PhotoURLs, &p.Tags, &status, &p.Category.ID, &p.Category.Name, &p.Category.Slug)
	if err != nil {
		return nil, err
	}

	p.Status = Status(status)
	return p, nil
}

func (repository *PostgresRepository) ResolveCategory(ctx context.Context, name string) (Category, error) {
	key := slug.From(name)
	if key == "" {
		return Category{}, fmt.Errorf("pet: category %q has an empty slug", name)
	}

	// The no-op update makes RETURNING yield the existing row on conflict
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s, %s, %s;
	`,
		schema.StoreCategory.Table,
		schema.StoreCategory.Slug, schema.StoreCategory.Name,
		schema.StoreCategory.Slug, schema.StoreCategory.Slug, schema.StoreCategory.Slug,
		schema.StoreCategory.ID, schema.StoreCategory.Name, schema.StoreCategory.Slug,
	)

	var category Category
	err := repository.db.QueryRow(ctx, query, key, name).Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		return Category{}, dberr.Wrap(err, "resolve_category")
	}

	return category, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, pet *Pet) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s;
	`,
		schema.StorePet.Table,
		schema.StorePet.CategoryID,
		schema.StorePet.Name,
		schema.StorePet.PhotoURLs,
		schema.StorePet.Tags,
		schema.StorePet.Status,
		schema.StorePet.ID,
	)

	err := repository.db.QueryRow(ctx, query,
		pet.Category.ID, pet.Name, nonNil(pet.PhotoURLs), nonNil(pet.Tags), string(pet.Status),
	).Scan(&pet.ID)

	return dberr.Wrap(err, "create_pet")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Pet, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		JOIN %s c ON c.%s = p.%s
		WHERE p.%s = $1;
	`,
		petSelect,
		schema.StorePet.Table,
		schema.StoreCategory.Table, schema.StoreCategory.ID, schema.StorePet.CategoryID,
		schema.StorePet.ID,
	)

	p, err := scanPet(repository.db.QueryRow(ctx, query, id))
	if dberr.IsNoRows(err) {
		return nil, ErrNotFound
	}
	return p, dberr.Wrap(err, "get_pet")
}

func (repository *PostgresRepository) Update(ctx context.Context, pet *Pet) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = now()
		WHERE %s = $1;
	`,
		schema.StorePet.Table,
		schema.StorePet.CategoryID,
		schema.StorePet.Name,
		schema.StorePet.PhotoURLs,
		schema.StorePet.Tags,
		schema.StorePet.Status,
		schema.StorePet.UpdatedAt,
		schema.StorePet.ID,
	)

	tag, err := repository.db.Exec(ctx, query,
		pet.ID, pet.Category.ID, pet.Name, nonNil(pet.PhotoURLs), nonNil(pet.Tags), string(pet.Status),
	)
	if err != nil {
		return dberr.Wrap(err, "update_pet")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) (*Pet, error) {
	query := fmt.Sprintf(`
		WITH p AS (
			DELETE FROM %s WHERE %s = $1 RETURNING *
		)
		SELECT %s
		FROM p
		JOIN %s c ON c.%s = p.%s;
	`,
		schema.StorePet.Table, schema.StorePet.ID,
		petSelect,
		schema.StoreCategory.Table, schema.StoreCategory.ID, schema.StorePet.CategoryID,
	)

	p, err := scanPet(repository.db.QueryRow(ctx, query, id))
	if dberr.IsNoRows(err) {
		return nil, ErrNotFound
	}
	return p, dberr.Wrap(err, "delete_pet")
}

func (repository *PostgresRepository) Reserve(ctx context.Context, id int64) (*Pet, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = now()
		WHERE %s = $1 AND %s = $3;
	`,
		schema.StorePet.Table,
		schema.StorePet.Status,
		schema.StorePet.UpdatedAt,
		schema.StorePet.ID,
		schema.StorePet.Status,
	)

	tag, err := repository.db.Exec(ctx, query, id, string(StatusPending), string(StatusAvailable))
	if err != nil {
		return nil, dberr.Wrap(err, "reserve_pet")
	}

	reserved, err := repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// The conditional update matched nothing, the pet exists in another status
	if tag.RowsAffected() == 0 {
		return nil, ErrNotAvailable
	}

	return reserved, nil
}

func (repository *PostgresRepository) Inventory(ctx context.Context) (Inventory, error) {
	query := fmt.Sprintf(`
		SELECT %s, count(*)
		FROM %s
		GROUP BY %s;
	`,
		schema.StorePet.Status,
		schema.StorePet.Table,
		schema.StorePet.Status,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "inventory")
	}
	defer rows.Close()

	inventory := NewInventory()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_inventory")
		}
		inventory[Status(status)] = count
	}

	return inventory, dberr.Wrap(rows.Err(), "inventory")
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
