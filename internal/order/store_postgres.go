// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/petstore/internal/platform/database/schema"
	"github.com/taibuivan/petstore/internal/platform/dberr"
)

// PostgresRepository stores orders in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates an order store backed by pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var orderColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	schema.StoreOrder.ID,
	schema.StoreOrder.PetID,
	schema.StoreOrder.Quantity,
	schema.StoreOrder.ShipDate,
	schema.StoreOrder.Status,
	schema.StoreOrder.PlacedBy,
)

func scanOrder(row pgx.Row) (*Order, error) {
	o := &Order{}
	if err := row.Scan(&o.ID, &o.PetID, &o.Quantity, &o.ShipDate, &o.Status, &o.PlacedBy); err != nil {
		return nil, err
	}
	return o, nil
}

func (repository *PostgresRepository) Place(ctx context.Context, order *Order) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s;
	`,
		schema.StoreOrder.Table,
		schema.StoreOrder.PetID,
		schema.StoreOrder.Quantity,
		schema.StoreOrder.ShipDate,
		schema.StoreOrder.Status,
		schema.StoreOrder.PlacedBy,
		schema.StoreOrder.ID,
	)

	err := repository.db.QueryRow(ctx, query,
		order.PetID, order.Quantity, order.ShipDate, order.Status, order.PlacedBy,
	).Scan(&order.ID)

	return dberr.Wrap(err, "place_order")
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1;
	`,
		orderColumns,
		schema.StoreOrder.Table,
		schema.StoreOrder.ID,
	)

	o, err := scanOrder(repository.db.QueryRow(ctx, query, id))
	if dberr.IsNoRows(err) {
		return nil, ErrNotFound
	}
	return o, dberr.Wrap(err, "get_order")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) (*Order, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1
		RETURNING %s;
	`,
		schema.StoreOrder.Table,
		schema.StoreOrder.ID,
		orderColumns,
	)

	o, err := scanOrder(repository.db.QueryRow(ctx, query, id))
	if dberr.IsNoRows(err) {
		return nil, ErrNotFound
	}
	return o, dberr.Wrap(err, "delete_order")
}
