package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/clients"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/config"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/events"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/http/handlers"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/identity"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/metrics"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/middleware"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/session"
)

// OrderRemote is everything the storefront asks the order endpoints.
type OrderRemote interface {
	handlers.OrderSubmitter
	handlers.OrderLister
	order.StatusSetter
}

type UserRemote interface {
	handlers.UserSyncer
	handlers.BaristaAdmin
}

// CatalogRemote covers both the full listing and the admin mutations.
type CatalogRemote interface {
	handlers.FullMenuReader
	handlers.MenuAdmin
}

type Deps struct {
	Logger *zap.Logger
	Cfg    config.Config

	Verifier middleware.TokenVerifier
	Sessions *session.Store

	// Menu serves the public menu; usually the Redis cache in front of Catalog.
	Menu      handlers.MenuReader
	MenuCache handlers.MenuInvalidator
	Catalog   CatalogRemote
	Orders    OrderRemote
	Users     UserRemote
	Publisher events.Publisher
	Metrics   *metrics.Metrics

	HealthProbes []clients.HealthProbe
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Middlewares (outer -> inner)
	r.Use(middleware.Logging(d.Logger))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.CORS(d.Cfg.CORSAllowOrigins))
	r.Use(middleware.Recover(d.Logger))
	r.Use(chimw.RealIP)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	health := &handlers.HealthHandler{Probes: d.HealthProbes}
	r.Get("/health", health.Service)
	r.Get("/health/upstreams", health.Upstreams)

	var (
		me     = handlers.NewMeHandler(d.Users, d.Logger)
		menu   = handlers.NewMenuHandler(d.Menu, d.Catalog, d.Logger)
		cart   = handlers.NewCartHandler(d.Menu, d.Orders, d.Publisher, d.Logger)
		orders = handlers.NewOrdersHandler(d.Orders, order.NewService(d.Orders), d.Publisher, d.Logger)
		admin  = handlers.NewAdminHandler(d.Catalog, d.Users, d.MenuCache, d.Logger)
	)

	sessionOpts := middleware.SessionOptions{Secure: d.Cfg.SessionCookieSecure, MaxAge: d.Cfg.SessionIdleTimeout}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Verifier))

		r.Get("/me", me.Me)
		r.Get("/menu", menu.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(d.Sessions, sessionOpts))

			r.Route("/cart", func(r chi.Router) {
				r.Use(middleware.RequireRole(identity.RoleCliente))
				r.Get("/", cart.Get)
				r.Delete("/", cart.Clear)
				r.Post("/items", cart.AddItem)
				r.Patch("/items/{lineId}", cart.UpdateItem)
				r.Delete("/items/{lineId}", cart.RemoveItem)
				r.Post("/checkout", cart.Checkout)
			})

			r.Route("/orders", func(r chi.Router) {
				r.With(middleware.RequireRole(identity.RoleCliente)).Get("/mine", orders.ListMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(identity.RoleBarista, identity.RoleAdmin))
					r.Get("/", orders.ListAll)
					r.Put("/{orderId}/status", orders.UpdateStatus)
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(identity.RoleAdmin))
			r.Post("/menu", admin.CreateMenuItem)
			r.Put("/menu/{id}", admin.UpdateMenuItem)
			r.Delete("/menu/{id}", admin.DeleteMenuItem)
			r.Get("/baristas", admin.ListBaristas)
			r.Post("/baristas", admin.CreateBarista)
		})
	})

	return r
}
