// Package postgres persists placed orders in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"storefront/pkg/order"
)

// Repository persists orders in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository. The caller must ensure the
// database has an orders table:
// CREATE TABLE IF NOT EXISTS orders (id TEXT PRIMARY KEY, lines JSONB NOT NULL, total TEXT NOT NULL, placed_at TIMESTAMPTZ NOT NULL);
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new order.
func (r *Repository) Create(ctx context.Context, o order.Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO orders (id, lines, total, placed_at) VALUES ($1,$2,$3,$4)",
		o.ID, lines, o.Total.String(), o.PlacedAt)
	return err
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT id, lines, total, placed_at FROM orders WHERE id=$1", id)
	o, err := scan(row)
	if err == sql.ErrNoRows {
		return order.Order{}, order.ErrNotFound
	}
	return o, err
}

// List fetches all orders, oldest first.
func (r *Repository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, lines, total, placed_at FROM orders ORDER BY placed_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []order.Order
	for rows.Next() {
		o, err := scan(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (order.Order, error) {
	var (
		o     order.Order
		lines []byte
		total string
	)
	if err := row.Scan(&o.ID, &lines, &total, &o.PlacedAt); err != nil {
		return order.Order{}, err
	}
	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return order.Order{}, err
	}
	if err := o.Total.UnmarshalText([]byte(total)); err != nil {
		return order.Order{}, err
	}
	return o, nil
}
