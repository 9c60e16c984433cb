package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumierebeauty/lumiere-backend/api/controllers"
	"github.com/lumierebeauty/lumiere-backend/api/middleware"
	internalAuth "github.com/lumierebeauty/lumiere-backend/internal/auth"
	"github.com/lumierebeauty/lumiere-backend/internal/customers"
	"github.com/lumierebeauty/lumiere-backend/internal/franchise"
	"github.com/lumierebeauty/lumiere-backend/internal/giftsets"
	"github.com/lumierebeauty/lumiere-backend/internal/orders"
	"github.com/lumierebeauty/lumiere-backend/internal/products"
	"github.com/lumierebeauty/lumiere-backend/internal/settings"
	"github.com/lumierebeauty/lumiere-backend/pkg/config"
	"github.com/lumierebeauty/lumiere-backend/pkg/db"
	"github.com/lumierebeauty/lumiere-backend/pkg/logger"
	"github.com/lumierebeauty/lumiere-backend/pkg/metrics"
	"github.com/lumierebeauty/lumiere-backend/pkg/redis"
)

// Deps carries everything the router needs. Redis and Metrics are optional;
// nil disables rate limiting and request metrics respectively.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	Metrics        *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Auth      internalAuth.Service
	Products  products.Service
	GiftSets  giftsets.Service
	Customers customers.Service
	Orders    orders.Service
	Franchise franchise.Service
	Settings  settings.Service
}

// New assembles the full route tree.
func New(deps Deps) *chi.Mux {
	logg := deps.Logger
	cfg := deps.Config

	router := chi.NewRouter()
	router.Use(middleware.Recoverer(logg))
	router.Use(middleware.RequestID(logg))
	router.Use(middleware.Logging(logg))
	router.Use(middleware.Metrics(deps.Metrics))
	router.Use(middleware.CORS(cfg.App))

	authRequired := middleware.Auth(cfg.JWT, logg)
	authOptional := middleware.OptionalAuth(cfg.JWT, logg)
	adminOnly := middleware.RequireAdmin(logg)

	router.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Liveness())
		r.Get("/ready", controllers.Readiness(deps.DB, readinessCache(deps.Redis), logg))
	})

	if deps.MetricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			limiter := rateLimitStore(deps.Redis)
			r.With(middleware.AuthRateLimit(limiter, middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit), logg)).
				Post("/register", controllers.Register(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(limiter, middleware.LoginRateLimitPolicy(cfg.AuthRateLimit), logg)).
				Post("/login", controllers.Login(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(authRequired)
				r.Get("/me", controllers.Me(deps.Auth, logg))
				r.Put("/me", controllers.UpdateProfile(deps.Auth, logg))
				r.Post("/me/password", controllers.ChangePassword(deps.Auth, logg))
				r.Get("/me/orders", controllers.MyOrders(deps.Orders, logg))

				r.With(adminOnly).Post("/admins", controllers.PromoteAdmin(deps.Auth, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{id}", controllers.GetProduct(deps.Products, logg))

			r.Group(func(r chi.Router) {
				r.Use(authRequired, adminOnly)
				r.Post("/", controllers.CreateProduct(deps.Products, logg))
				r.Put("/{id}", controllers.UpdateProduct(deps.Products, logg))
				r.Delete("/{id}", controllers.DeleteProduct(deps.Products, logg))
			})
		})

		r.Route("/gift-sets", func(r chi.Router) {
			r.Get("/", controllers.ListGiftSets(deps.GiftSets, logg))
			r.Get("/{id}", controllers.GetGiftSet(deps.GiftSets, logg))

			r.Group(func(r chi.Router) {
				r.Use(authRequired, adminOnly)
				r.Post("/", controllers.CreateGiftSet(deps.GiftSets, logg))
				r.Put("/{id}", controllers.UpdateGiftSet(deps.GiftSets, logg))
				r.Delete("/{id}", controllers.DeleteGiftSet(deps.GiftSets, logg))
			})
		})

		r.Route("/customers", func(r chi.Router) {
			// Public create backs guest checkout.
			r.Post("/", controllers.CreateCustomer(deps.Customers, logg))

			r.Group(func(r chi.Router) {
				r.Use(authRequired, adminOnly)
				r.Get("/", controllers.ListCustomers(deps.Customers, logg))
				r.Get("/{id}", controllers.GetCustomer(deps.Customers, logg))
				r.Put("/{id}", controllers.UpdateCustomer(deps.Customers, logg))
				r.Delete("/{id}", controllers.DeleteCustomer(deps.Customers, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			// Checkout works for guests and signed-in shoppers alike.
			r.With(authOptional).Post("/", controllers.CreateOrder(deps.Orders, logg))

			r.Group(func(r chi.Router) {
				r.Use(authRequired, adminOnly)
				r.Get("/", controllers.ListOrders(deps.Orders, logg))
				r.Get("/{id}", controllers.GetOrder(deps.Orders, logg))
				r.Put("/{id}", controllers.UpdateOrder(deps.Orders, logg))
				r.Delete("/{id}", controllers.DeleteOrder(deps.Orders, logg))
			})
		})

		r.Route("/franchise", func(r chi.Router) {
			// Public lead capture.
			r.Post("/", controllers.CreateFranchiseApplication(deps.Franchise, logg))

			r.Group(func(r chi.Router) {
				r.Use(authRequired, adminOnly)
				r.Get("/", controllers.ListFranchiseApplications(deps.Franchise, logg))
				r.Get("/{id}", controllers.GetFranchiseApplication(deps.Franchise, logg))
				r.Put("/{id}", controllers.UpdateFranchiseApplication(deps.Franchise, logg))
				r.Delete("/{id}", controllers.DeleteFranchiseApplication(deps.Franchise, logg))
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.GetSettings(deps.Settings, logg))
			r.With(authRequired, adminOnly).Put("/", controllers.UpdateSettings(deps.Settings, logg))
		})
	})

	return router
}

func readinessCache(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func rateLimitStore(client *redis.Client) middleware.RateLimitStore {
	if client == nil {
		return nil
	}
	return client
}
