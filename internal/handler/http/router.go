package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/glamstore/internal/service"
	"github.com/utafrali/glamstore/internal/session"
	"github.com/utafrali/glamstore/internal/storage"
	"github.com/utafrali/glamstore/pkg/health"
	"github.com/utafrali/glamstore/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	AuthService     *service.AuthService
	CatalogService  *service.CatalogService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	SessionStore    session.Store
	Tokens          *session.TokenManager
	Images          storage.Storage
	HealthHandler   *health.Handler
	Logger          *slog.Logger
	UploadDir       string
	CORS            middleware.CORSConfig
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.CORS(deps.CORS))

	r.Get("/health/live", deps.HealthHandler.Live)
	r.Get("/health/ready", deps.HealthHandler.Ready)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Uploaded product images.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(deps.UploadDir))))

	authHandler := NewAuthHandler(deps.AuthService, deps.Tokens, deps.Logger)
	catalogHandler := NewCatalogHandler(deps.CatalogService, deps.Images, deps.Logger)
	cartHandler := NewCartHandler(deps.CartService, deps.Images, deps.Logger)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutService, deps.Logger)
	adminHandler := NewAdminHandler(deps.CatalogService, deps.Images, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionLoader(deps.SessionStore, deps.Tokens, deps.Logger))

		r.Route("/auth", func(r chi.Router) {
			r.With(ContentTypeJSON).Post("/register", authHandler.Register)
			r.With(ContentTypeJSON).Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(RequireAuth).Get("/me", authHandler.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/featured", catalogHandler.FeaturedProducts)
			r.Get("/{productID}", catalogHandler.GetProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Get("/count", cartHandler.GetCount)

			r.With(ContentTypeJSON).Post("/items", cartHandler.AddItem)
			r.With(ContentTypeJSON).Put("/items/{productID}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)

			r.Get("/checkout", checkoutHandler.Summary)
			r.Post("/checkout", checkoutHandler.PlaceOrder)
			r.Get("/orders", checkoutHandler.ListOrders)
			r.Get("/orders/{orderID}", checkoutHandler.GetOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Post("/products", adminHandler.CreateProduct)
			r.Put("/products/{productID}", adminHandler.UpdateProduct)
			r.Delete("/products/{productID}", adminHandler.DeleteProduct)
		})
	})

	return r
}
