// Package order records checkouts that completed.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"storefront/pkg/cart"
)

// Order is a snapshot of the cart at the moment checkout completed.
type Order struct {
	ID       string          `json:"id"`
	Lines    []cart.Line     `json:"lines"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
}

// Repository defines behavior for persisting placed orders.
type Repository interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
}

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")
