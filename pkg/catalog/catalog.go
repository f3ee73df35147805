// Package catalog holds the static product catalog.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a purchasable item. Products are defined at load time and
// never change afterwards.
type Product struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
}

// Catalog is an immutable, insertion-ordered set of products.
type Catalog struct {
	products []Product
	byID     map[int]Product
}

// New builds a catalog from the given products. Later duplicates of an
// id shadow earlier ones in lookups but the listing keeps every entry.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[int]Product, len(products)),
	}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

// Default returns the built-in storefront catalog.
func Default() *Catalog {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return New([]Product{
		{ID: 1, Title: "Woven Basket", Category: "Decor", Price: price("24.50"), Image: "/images/woven-basket.jpg"},
		{ID: 2, Title: "Traditional Mask", Category: "Decor", Price: price("58.00"), Image: "/images/traditional-mask.jpg"},
		{ID: 3, Title: "Beaded Necklace", Category: "Jewellery", Price: price("15.75"), Image: "/images/beaded-necklace.jpg"},
		{ID: 4, Title: "Copper Bracelet", Category: "Jewellery", Price: price("19.90"), Image: "/images/copper-bracelet.jpg"},
		{ID: 5, Title: "Chitenge Fabric", Category: "Fabric", Price: price("12.00"), Image: "/images/chitenge-fabric.jpg"},
		{ID: 6, Title: "Clay Pot", Category: "Kitchen", Price: price("32.25"), Image: "/images/clay-pot.jpg"},
		{ID: 7, Title: "Wooden Drum", Category: "Music", Price: price("75.00"), Image: "/images/wooden-drum.jpg"},
		{ID: 8, Title: "Soapstone Sculpture", Category: "Decor", Price: price("44.10"), Image: "/images/soapstone-sculpture.jpg"},
	})
}

// Get looks up a product by id.
func (c *Catalog) Get(id int) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// List returns all products in catalog order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search returns products whose title or category contains query as a
// case-insensitive substring. An empty query matches everything.
func (c *Catalog) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.List()
	}
	var out []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
