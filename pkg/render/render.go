// Package render projects the cart and catalog into view models.
package render

import (
	"sync"

	"github.com/shopspring/decimal"

	"storefront/pkg/cart"
	"storefront/pkg/catalog"
)

// EmptyCartMessage is shown in place of rows when the cart is empty.
const EmptyCartMessage = "Your cart is empty"

// AboutText is the informational modal content behind the hero action.
const AboutText = "Handmade crafts from local artisans. Every purchase supports the maker directly."

// Row is one rendered cart line.
type Row struct {
	ProductID int    `json:"product_id"`
	Image     string `json:"image"`
	Title     string `json:"title"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// CartView is the rendered cart drawer.
type CartView struct {
	Rows      []Row  `json:"rows"`
	Empty     bool   `json:"empty"`
	Message   string `json:"message,omitempty"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
	Drawer    bool   `json:"drawer_open"`
}

// ProductCard is one rendered catalog entry.
type ProductCard struct {
	ProductID int    `json:"product_id"`
	Image     string `json:"image"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Price     string `json:"price"`
}

// Renderer turns the cart store and catalog into views. It also owns
// the drawer open/closed state, which is part of the rendered surface
// rather than the cart itself.
type Renderer struct {
	mu      sync.Mutex
	drawer  bool
	cart    *cart.Store
	catalog *catalog.Catalog
}

// New creates a renderer over the given store and catalog.
func New(store *cart.Store, cat *catalog.Catalog) *Renderer {
	return &Renderer{cart: store, catalog: cat}
}

// Cart renders the current cart contents.
func (r *Renderer) Cart() CartView {
	lines := r.cart.Lines()
	v := CartView{
		ItemCount: r.cart.ItemCount(),
		Total:     r.cart.Total().StringFixed(2),
		Drawer:    r.DrawerOpen(),
	}
	if len(lines) == 0 {
		v.Empty = true
		v.Message = EmptyCartMessage
		return v
	}
	v.Rows = make([]Row, 0, len(lines))
	for _, l := range lines {
		v.Rows = append(v.Rows, Row{
			ProductID: l.ID,
			Image:     l.Image,
			Title:     l.Title,
			UnitPrice: l.Price.StringFixed(2),
			Quantity:  l.Quantity,
			LineTotal: l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))).StringFixed(2),
		})
	}
	return v
}

// Cards renders the catalog filtered by query; an empty query renders
// every product.
func (r *Renderer) Cards(query string) []ProductCard {
	products := r.catalog.Search(query)
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, ProductCard{
			ProductID: p.ID,
			Image:     p.Image,
			Title:     p.Title,
			Category:  p.Category,
			Price:     p.Price.StringFixed(2),
		})
	}
	return out
}

// ToggleDrawer flips the drawer state and reports the new value.
func (r *Renderer) ToggleDrawer() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawer = !r.drawer
	return r.drawer
}

// OpenDrawer opens the cart drawer.
func (r *Renderer) OpenDrawer() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawer = true
}

// CloseDrawer closes the cart drawer.
func (r *Renderer) CloseDrawer() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawer = false
}

// DrawerOpen reports whether the drawer is open.
func (r *Renderer) DrawerOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drawer
}
