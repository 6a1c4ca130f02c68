// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/petstore/internal/platform/database/schema"
	"github.com/taibuivan/petstore/internal/platform/dberr"
)

// PostgresRepository stores users in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a user store backed by pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s;
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username,
		schema.UserAccount.FirstName,
		schema.UserAccount.LastName,
		schema.UserAccount.Email,
		schema.UserAccount.Phone,
		schema.UserAccount.Password,
		schema.UserAccount.ID,
	)

	err := repository.db.QueryRow(ctx, query,
		user.Username, user.FirstName, user.LastName, user.Email, user.Phone, user.PasswordHash,
	).Scan(&user.ID)

	if dberr.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresRepository) Get(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.UserAccount.ID,
		schema.UserAccount.Username,
		schema.UserAccount.FirstName,
		schema.UserAccount.LastName,
		schema.UserAccount.Email,
		schema.UserAccount.Phone,
		schema.UserAccount.Password,
		schema.UserAccount.Table,
		schema.UserAccount.Username,
	)

	u := &User{}
	err := repository.db.QueryRow(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash)

	if dberr.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}
	return u, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = now()
		WHERE %s = $1
		RETURNING %s;
	`,
		schema.UserAccount.Table,
		schema.UserAccount.FirstName,
		schema.UserAccount.LastName,
		schema.UserAccount.Email,
		schema.UserAccount.Phone,
		schema.UserAccount.Password,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.Username,
		schema.UserAccount.ID,
	)

	err := repository.db.QueryRow(ctx, query,
		user.Username, user.FirstName, user.LastName, user.Email, user.Phone, user.PasswordHash,
	).Scan(&user.ID)

	if dberr.IsNoRows(err) {
		return ErrNotFound
	}
	return dberr.Wrap(err, "update_user")
}

func (repository *PostgresRepository) Delete(ctx context.Context, username string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1;`,
		schema.UserAccount.Table,
		schema.UserAccount.Username,
	)

	tag, err := repository.db.Exec(ctx, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
