package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	_ "storefront/docs"
	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/checkout"
	"storefront/pkg/config"
	"storefront/pkg/logger"
	"storefront/pkg/notify"
	"storefront/pkg/order"
	ordermem "storefront/pkg/order/memory"
	orderpg "storefront/pkg/order/postgres"
	"storefront/pkg/render"
	"storefront/pkg/storage"
	storagemem "storefront/pkg/storage/memory"
	"storefront/pkg/storage/redisstore"
	"storefront/pkg/telemetry"
)

var (
	log       *zap.Logger
	tracer    trace.Tracer
	cartStore *cart.Store
	renderer  *render.Renderer
	hub       *notify.Hub
	machine   *checkout.Machine
	orders    order.Repository
)

// @title Storefront API
// @version 1.0
// @description Cart and product listing API for the storefront
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log = logger.New("storefront")
	defer log.Sync()

	var shutdown func(context.Context) error
	tracer, shutdown, err = telemetry.Init(context.Background(), "storefront", cfg.OTELEndpoint)
	if err != nil {
		log.Error("init tracing", zap.Error(err))
		os.Exit(1)
	}
	defer shutdown(context.Background())

	var slot storage.Storage
	if cfg.RedisAddr != "" {
		slot = redisstore.New(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Info("cart slot on redis", zap.String("addr", cfg.RedisAddr))
	} else {
		slot = storagemem.New()
		log.Info("cart slot in memory")
	}

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", zap.Error(err))
			os.Exit(1)
		}
		if _, err := db.Exec("CREATE TABLE IF NOT EXISTS orders (id TEXT PRIMARY KEY, lines JSONB NOT NULL, total TEXT NOT NULL, placed_at TIMESTAMPTZ NOT NULL)"); err != nil {
			log.Error("create table", zap.Error(err))
			os.Exit(1)
		}
		orders = orderpg.New(db)
	} else {
		orders = ordermem.New()
	}

	cat := catalog.Default()
	hub = notify.NewHub(cfg.NotifyTTL)
	cartStore = cart.NewStore(cat, slot, cfg.CartKey, hub, log)
	cartStore.Load(context.Background())
	renderer = render.New(cartStore, cat)
	machine = checkout.New(cartStore, orders, renderer, hub, cfg.CheckoutDelay, log)

	r := mux.NewRouter()
	r.Use(traceMiddleware)

	r.HandleFunc("/products", listProductsHandler).Methods(http.MethodGet)
	r.HandleFunc("/cart", getCartHandler).Methods(http.MethodGet)
	r.HandleFunc("/cart", clearCartHandler).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items/{id}", addToCartHandler).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", updateQuantityHandler).Methods(http.MethodPatch)
	r.HandleFunc("/cart/items/{id}", removeLineHandler).Methods(http.MethodDelete)
	r.HandleFunc("/cart/drawer", toggleDrawerHandler).Methods(http.MethodPost)
	r.HandleFunc("/checkout", beginCheckoutHandler).Methods(http.MethodPost)
	r.HandleFunc("/checkout", checkoutStateHandler).Methods(http.MethodGet)
	r.HandleFunc("/orders", listOrdersHandler).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", getOrderHandler).Methods(http.MethodGet)
	r.HandleFunc("/notifications", notificationsHandler).Methods(http.MethodGet)
	r.HandleFunc("/about", aboutHandler).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Error("server closed", zap.Error(err))
	}
}

// listProductsHandler lists catalog products, optionally filtered.
// @Summary List products
// @Description Returns product cards for the full catalog or for a search query
// @Produce json
// @Param q query string false "Substring matched against title and category"
// @Success 200 {array} render.ProductCard
// @Router /products [get]
func listProductsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, renderer.Cards(r.URL.Query().Get("q")))
}

// getCartHandler renders the current cart.
// @Summary Get cart
// @Produce json
// @Success 200 {object} render.CartView
// @Router /cart [get]
func getCartHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, renderer.Cart())
}

// addToCartHandler adds one unit of a product to the cart. Product ids
// not present in the catalog leave the cart unchanged.
// @Summary Add to cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} render.CartView
// @Router /cart/items/{id} [post]
func addToCartHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	cartStore.Add(r.Context(), id)
	writeJSON(w, http.StatusOK, renderer.Cart())
}

// quantityUpdate is the PATCH body for quantity changes.
type quantityUpdate struct {
	Delta int `json:"delta"`
}

// updateQuantityHandler adjusts a line's quantity by a delta. A delta
// of 0 removes the line, as does any adjustment reaching zero or below.
// @Summary Update quantity
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param update body quantityUpdate true "Quantity delta"
// @Success 200 {object} render.CartView
// @Router /cart/items/{id} [patch]
func updateQuantityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	var upd quantityUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cartStore.UpdateQuantity(r.Context(), id, upd.Delta)
	writeJSON(w, http.StatusOK, renderer.Cart())
}

// removeLineHandler removes a line regardless of quantity.
// @Summary Remove cart line
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} render.CartView
// @Router /cart/items/{id} [delete]
func removeLineHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	cartStore.Remove(r.Context(), id)
	writeJSON(w, http.StatusOK, renderer.Cart())
}

// clearCartHandler empties the cart.
// @Summary Clear cart
// @Produce json
// @Success 200 {object} render.CartView
// @Router /cart [delete]
func clearCartHandler(w http.ResponseWriter, r *http.Request) {
	cartStore.Clear(r.Context())
	writeJSON(w, http.StatusOK, renderer.Cart())
}

// toggleDrawerHandler opens or closes the cart drawer.
// @Summary Toggle cart drawer
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /cart/drawer [post]
func toggleDrawerHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"open": renderer.ToggleDrawer()})
}

// beginCheckoutHandler starts the checkout flow.
// @Summary Begin checkout
// @Produce json
// @Success 202 {object} map[string]string
// @Router /checkout [post]
func beginCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	state := machine.Begin(r.Context())
	writeJSON(w, http.StatusAccepted, map[string]string{"state": string(state)})
}

// checkoutStateHandler reports the checkout state.
// @Summary Checkout state
// @Produce json
// @Success 200 {object} map[string]string
// @Router /checkout [get]
func checkoutStateHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"state": string(machine.State())})
}

// listOrdersHandler lists placed orders.
// @Summary List orders
// @Produce json
// @Success 200 {array} order.Order
// @Router /orders [get]
func listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	list, err := orders.List(r.Context())
	if err != nil {
		log.Error("list orders", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// getOrderHandler retrieves a placed order by ID.
// @Summary Get order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} order.Order
// @Router /orders/{id} [get]
func getOrderHandler(w http.ResponseWriter, r *http.Request) {
	o, err := orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if err == order.ErrNotFound {
			http.NotFound(w, r)
			return
		}
		log.Error("get order", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// notificationsHandler lists the currently visible notifications.
// @Summary Active notifications
// @Produce json
// @Success 200 {array} notify.Notification
// @Router /notifications [get]
func notificationsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, hub.Active())
}

// aboutHandler returns the informational modal content.
// @Summary About
// @Produce json
// @Success 200 {object} map[string]string
// @Router /about [get]
func aboutHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"about": render.AboutText})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
