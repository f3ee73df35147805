package checkout

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/notify"
	ordermem "storefront/pkg/order/memory"
	"storefront/pkg/render"
	"storefront/pkg/storage/memory"
)

type fixture struct {
	machine  *Machine
	store    *cart.Store
	renderer *render.Renderer
	hub      *notify.Hub
	orders   *ordermem.Repository
}

func newFixture(t *testing.T, delay time.Duration) fixture {
	t.Helper()
	cat := catalog.Default()
	hub := notify.NewHub(time.Minute)
	store := cart.NewStore(cat, memory.New(), "storefront_cart", hub, zap.NewNop())
	store.Load(context.Background())
	renderer := render.New(store, cat)
	orders := ordermem.New()
	return fixture{
		machine:  New(store, orders, renderer, hub, delay, zap.NewNop()),
		store:    store,
		renderer: renderer,
		hub:      hub,
		orders:   orders,
	}
}

func TestEmptyCartCheckoutWarns(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	if got := f.machine.Begin(ctx); got != StateIdle {
		t.Fatalf("expected Idle, got %s", got)
	}
	if got := len(f.store.Lines()); got != 0 {
		t.Fatalf("cart mutated: %d lines", got)
	}
	list, _ := f.orders.List(ctx)
	if len(list) != 0 {
		t.Fatalf("expected no orders, got %d", len(list))
	}

	var warned bool
	for _, n := range f.hub.Active() {
		if n.Level == notify.LevelWarning && n.Message == EmptyCartWarning {
			warned = true
		}
	}
	if !warned {
		t.Fatal("expected empty-cart warning")
	}
}

func TestCheckoutCompletes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	f.store.Add(ctx, 1)
	f.store.Add(ctx, 1)
	f.store.Add(ctx, 3)
	f.renderer.OpenDrawer()

	if got := f.machine.Begin(ctx); got != StateCompleted {
		t.Fatalf("expected Completed, got %s", got)
	}
	if got := len(f.store.Lines()); got != 0 {
		t.Fatalf("expected cart cleared, got %d lines", got)
	}
	if f.renderer.DrawerOpen() {
		t.Fatal("expected drawer closed")
	}

	list, err := f.orders.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected 1 order: err=%v n=%d", err, len(list))
	}
	o := list[0]
	if o.ID == "" {
		t.Fatal("expected generated order id")
	}
	if len(o.Lines) != 2 {
		t.Fatalf("expected 2 snapshot lines, got %d", len(o.Lines))
	}
	if got := o.Total.StringFixed(2); got != "64.75" {
		t.Fatalf("expected order total 64.75, got %s", got)
	}
}

func TestCheckoutWithDelay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 20*time.Millisecond)

	f.store.Add(ctx, 1)
	if got := f.machine.Begin(ctx); got != StateConfirming {
		t.Fatalf("expected Confirming, got %s", got)
	}
	// A second checkout during confirmation does not restart the flow.
	if got := f.machine.Begin(ctx); got != StateConfirming {
		t.Fatalf("re-entrant begin: expected Confirming, got %s", got)
	}

	deadline := time.Now().Add(time.Second)
	for f.machine.State() != StateCompleted {
		if time.Now().After(deadline) {
			t.Fatalf("checkout never completed, state %s", f.machine.State())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := len(f.store.Lines()); got != 0 {
		t.Fatalf("expected cart cleared, got %d lines", got)
	}
}

func TestCheckoutAfterCompletionWarnsOnEmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	f.store.Add(ctx, 1)
	if got := f.machine.Begin(ctx); got != StateCompleted {
		t.Fatalf("expected Completed, got %s", got)
	}
	if got := f.machine.Begin(ctx); got != StateIdle {
		t.Fatalf("expected Idle on empty re-checkout, got %s", got)
	}
}
