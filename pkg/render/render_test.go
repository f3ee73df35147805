package render

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/notify"
	"storefront/pkg/storage/memory"
)

func newRenderer(t *testing.T) (*Renderer, *cart.Store) {
	t.Helper()
	cat := catalog.Default()
	store := cart.NewStore(cat, memory.New(), "storefront_cart", notify.NewHub(0), zap.NewNop())
	store.Load(context.Background())
	return New(store, cat), store
}

func TestEmptyCartView(t *testing.T) {
	r, _ := newRenderer(t)

	v := r.Cart()
	if !v.Empty {
		t.Fatal("expected empty view")
	}
	if v.Message != EmptyCartMessage {
		t.Fatalf("unexpected message: %s", v.Message)
	}
	if v.Total != "0.00" {
		t.Fatalf("expected total 0.00, got %s", v.Total)
	}
	if len(v.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(v.Rows))
	}
}

func TestCartRows(t *testing.T) {
	ctx := context.Background()
	r, store := newRenderer(t)

	store.Add(ctx, 1)
	store.Add(ctx, 1)
	store.Add(ctx, 3)

	v := r.Cart()
	if v.Empty {
		t.Fatal("expected non-empty view")
	}
	if len(v.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(v.Rows))
	}
	row := v.Rows[0]
	if row.Title != "Woven Basket" || row.Quantity != 2 {
		t.Fatalf("unexpected first row: %+v", row)
	}
	if row.UnitPrice != "24.50" || row.LineTotal != "49.00" {
		t.Fatalf("unexpected prices: %+v", row)
	}
	if v.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", v.ItemCount)
	}
	if v.Total != "64.75" {
		t.Fatalf("expected total 64.75, got %s", v.Total)
	}
}

func TestCards(t *testing.T) {
	r, _ := newRenderer(t)

	all := r.Cards("")
	if len(all) != len(catalog.Default().List()) {
		t.Fatalf("expected full catalog, got %d cards", len(all))
	}

	masks := r.Cards("mask")
	if len(masks) != 1 || masks[0].Title != "Traditional Mask" {
		t.Fatalf("unexpected filtered cards: %+v", masks)
	}
	if masks[0].Price != "58.00" {
		t.Fatalf("expected price 58.00, got %s", masks[0].Price)
	}
}

func TestDrawer(t *testing.T) {
	r, _ := newRenderer(t)

	if r.DrawerOpen() {
		t.Fatal("drawer should start closed")
	}
	if !r.ToggleDrawer() {
		t.Fatal("toggle should open")
	}
	if !r.Cart().Drawer {
		t.Fatal("view should report open drawer")
	}
	r.CloseDrawer()
	if r.DrawerOpen() {
		t.Fatal("drawer should be closed")
	}
	r.OpenDrawer()
	if !r.DrawerOpen() {
		t.Fatal("drawer should be open")
	}
}
