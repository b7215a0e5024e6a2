package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/antojo-app/backend/api/controllers"
	"github.com/antojo-app/backend/api/middleware"
	cartengine "github.com/antojo-app/backend/internal/cart"
	"github.com/antojo-app/backend/internal/catalog"
	checkoutsvc "github.com/antojo-app/backend/internal/checkout"
	ordersvc "github.com/antojo-app/backend/internal/orders"
	"github.com/antojo-app/backend/internal/realtime"
	usersvc "github.com/antojo-app/backend/internal/users"
	"github.com/antojo-app/backend/pkg/config"
	"github.com/antojo-app/backend/pkg/db"
	"github.com/antojo-app/backend/pkg/logger"
	pkgredis "github.com/antojo-app/backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB    db.Pinger
	Redis *pkgredis.Client

	Catalog  catalog.Service
	Cart     *cartengine.Engine
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
	Users    usersvc.Service
	Hub      *realtime.Hub
}

// NewRouter builds the HTTP surface: public storefront reads, authenticated
// cart/checkout/order routes, and the admin panel under a role guard.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	var idemStore pkgredis.IdempotencyStore
	var cachePinger interface{ Ping(context.Context) error }
	if deps.Redis != nil {
		idemStore = deps.Redis
		cachePinger = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, cachePinger))
	})

	r.Route("/api/v1/restaurants", func(r chi.Router) {
		r.Get("/", controllers.ListRestaurants(deps.Catalog, logg))
		r.Get("/{restaurantId}", controllers.GetRestaurant(deps.Catalog, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Catalog, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(deps.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(deps.Orders, logg))
			r.Get("/{orderId}/watch", controllers.WatchOrder(deps.Orders, deps.Hub, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", controllers.AdminListRestaurants(deps.Catalog, logg))
			r.Post("/", controllers.AdminCreateRestaurant(deps.Catalog, logg))
			r.Patch("/{restaurantId}", controllers.AdminUpdateRestaurant(deps.Catalog, logg))
			r.Delete("/{restaurantId}", controllers.AdminDeleteRestaurant(deps.Catalog, logg))
			r.Get("/{restaurantId}/products", controllers.AdminListProducts(deps.Catalog, logg))
			r.Post("/{restaurantId}/products", controllers.AdminCreateProduct(deps.Catalog, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Patch("/{productId}", controllers.AdminUpdateProduct(deps.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(deps.Orders, logg))
			r.Post("/{orderId}/status", controllers.AdminUpdateOrderStatus(deps.Orders, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminListUsers(deps.Users, logg))
			r.Post("/", controllers.AdminCreateUser(deps.Users, logg))
			r.Patch("/{userId}/role", controllers.AdminUpdateUserRole(deps.Users, logg))
			r.Delete("/{userId}", controllers.AdminDeactivateUser(deps.Users, logg))
		})
	})

	return r
}
