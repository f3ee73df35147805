// Package checkout drives the cart through the purchase flow.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/pkg/cart"
	"storefront/pkg/notify"
	"storefront/pkg/order"
	"storefront/pkg/render"
)

// State is the checkout machine state.
type State string

// Checkout states. Completed is observable until the next Begin.
const (
	StateIdle       State = "idle"
	StateConfirming State = "confirming"
	StateCompleted  State = "completed"
)

// EmptyCartWarning is shown when checkout starts on an empty cart.
const EmptyCartWarning = "your cart is empty"

// Machine runs the checkout flow: Idle -> Confirming -> Completed.
// Beginning with an empty cart warns and stays Idle. Completion records
// the order, clears the cart and closes the drawer.
type Machine struct {
	cart     *cart.Store
	orders   order.Repository
	renderer *render.Renderer
	hub      *notify.Hub
	delay    time.Duration
	log      *zap.Logger

	mu    sync.Mutex
	state State
}

// New creates a checkout machine. delay is how long confirmation takes;
// zero completes synchronously.
func New(store *cart.Store, orders order.Repository, r *render.Renderer, hub *notify.Hub, delay time.Duration, log *zap.Logger) *Machine {
	return &Machine{
		cart:     store,
		orders:   orders,
		renderer: r,
		hub:      hub,
		delay:    delay,
		log:      log,
		state:    StateIdle,
	}
}

// State returns the current machine state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Begin starts a checkout and returns the resulting state. A checkout
// already confirming is left alone. An empty cart produces a warning
// notification and no state change.
func (m *Machine) Begin(ctx context.Context) State {
	m.mu.Lock()
	if m.state == StateConfirming {
		m.mu.Unlock()
		return StateConfirming
	}
	if m.cart.ItemCount() == 0 {
		m.state = StateIdle
		m.mu.Unlock()
		m.hub.Push(notify.LevelWarning, EmptyCartWarning)
		return StateIdle
	}
	m.state = StateConfirming
	m.mu.Unlock()

	if m.delay <= 0 {
		m.complete(ctx)
		return m.State()
	}
	time.AfterFunc(m.delay, func() { m.complete(context.Background()) })
	return StateConfirming
}

// complete finishes a confirming checkout: it snapshots the cart into
// an order, clears the cart and closes the drawer.
func (m *Machine) complete(ctx context.Context) {
	o := order.Order{
		ID:       uuid.NewString(),
		Lines:    m.cart.Lines(),
		Total:    m.cart.Total(),
		PlacedAt: time.Now(),
	}
	if err := m.orders.Create(ctx, o); err != nil {
		// best-effort record; checkout still completes
		m.log.Error("record order", zap.Error(err), zap.String("order_id", o.ID))
	}
	m.cart.Clear(ctx)
	m.renderer.CloseDrawer()
	m.hub.Push(notify.LevelSuccess, "order placed")

	m.mu.Lock()
	m.state = StateCompleted
	m.mu.Unlock()
}
