// Package cart implements the shopping cart and its persistence.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/pkg/catalog"
	"storefront/pkg/notify"
	"storefront/pkg/storage"
)

// Line is one cart entry: a snapshot of the product plus a quantity.
// Quantity is always at least 1; a line whose quantity would drop to
// zero is removed instead.
type Line struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// Store holds the cart lines and keeps the storage slot in sync. All
// mutations persist before returning. A zero delta passed to
// UpdateQuantity is a remove sentinel; Remove is the explicit form.
type Store struct {
	mu      sync.Mutex
	lines   []Line
	catalog *catalog.Catalog
	slot    storage.Storage
	key     string
	hub     *notify.Hub
	log     *zap.Logger
}

// NewStore returns a Store persisting into the given storage slot key.
func NewStore(cat *catalog.Catalog, slot storage.Storage, key string, hub *notify.Hub, log *zap.Logger) *Store {
	return &Store{catalog: cat, slot: slot, key: key, hub: hub, log: log}
}

// Load restores the cart from the storage slot. A missing or corrupt
// slot yields an empty cart; no error is surfaced either way.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil

	raw, err := s.slot.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("load cart", zap.Error(err))
		}
		return
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.log.Warn("corrupt cart slot, starting empty", zap.Error(err))
		return
	}
	s.lines = lines
}

// Add puts one unit of the product into the cart. An id not present in
// the catalog is silently ignored. Adding a product already in the cart
// increments its line quantity.
func (s *Store) Add(ctx context.Context, productID int) {
	p, ok := s.catalog.Get(productID)
	if !ok {
		return
	}

	s.mu.Lock()
	if i := s.index(productID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, Line{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Price:    p.Price,
			Image:    p.Image,
			Quantity: 1,
		})
	}
	s.persist(ctx)
	s.mu.Unlock()

	s.hub.Push(notify.LevelSuccess, p.Title+" added to cart")
}

// UpdateQuantity adds delta to the line's quantity. A delta of 0
// removes the line outright; so does any result at or below zero.
// Unknown product ids are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(productID)
	if i < 0 {
		return
	}
	if delta == 0 {
		s.removeAt(i)
	} else if s.lines[i].Quantity+delta <= 0 {
		s.removeAt(i)
	} else {
		s.lines[i].Quantity += delta
	}
	s.persist(ctx)
}

// Remove deletes the line for productID regardless of its quantity.
func (s *Store) Remove(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(productID)
	if i < 0 {
		return
	}
	s.removeAt(i)
	s.persist(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.persist(ctx)
	s.mu.Unlock()

	s.hub.Push(notify.LevelInfo, "cart cleared")
}

// Lines returns the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// ItemCount is the sum of all line quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Total is the sum over lines of price times quantity.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// index returns the position of the line for productID, or -1.
// Callers hold s.mu.
func (s *Store) index(productID int) int {
	for i, l := range s.lines {
		if l.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// persist serializes the lines into the storage slot. A write failure
// keeps the in-memory cart; the next mutation writes again. Callers
// hold s.mu.
func (s *Store) persist(ctx context.Context) {
	raw, err := json.Marshal(s.lines)
	if err != nil {
		s.log.Error("marshal cart", zap.Error(err))
		return
	}
	if err := s.slot.Set(ctx, s.key, raw); err != nil {
		s.log.Error("persist cart", zap.Error(err))
	}
}
