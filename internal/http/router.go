// Package http is the storefront's JSON API. Each browser is bound to a
// session by cookie; handlers act on that session's cart, auth and language.
package http

import (
	"net/http"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/checkout"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/i18n"
	"github.com/UTarts/RASRAJ-themithaishop/internal/payment"
	"github.com/UTarts/RASRAJ-themithaishop/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBodySize = 1 << 20

// Shop is the backend surface the handlers read through.
type Shop interface {
	OrdersAPI
	ProductsAPI
	StaffAPI
}

type RouterConfig struct {
	Sessions       *session.Manager
	Cookie         SessionCookie
	Shop           Shop
	Checkout       *checkout.Service
	Gateway        *payment.Gateway
	Catalog        *i18n.Catalog
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = i18n.MustLoad()
	}

	cartHandler := NewCartHandler(cfg.Shop, timeout)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, cfg.Gateway, timeout)
	ordersHandler := NewOrdersHandler(cfg.Shop, timeout)
	authHandler := NewAuthHandler(timeout)
	languageHandler := NewLanguageHandler(catalog)
	productHandler := NewProductHandler(cfg.Shop, timeout)
	staffHandler := NewStaffHandler(cfg.Shop, timeout)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(middleware.RequestSize(maxRequestBodySize))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.GetProducts)
			r.Get("/{product_id}", productHandler.GetProduct)
		})
		r.Get("/categories", productHandler.GetCategories)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.Sessions, cfg.Cookie))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items", cartHandler.UpdateItem)
				r.Delete("/items/{product_id}/{weight}", cartHandler.RemoveItem)
				r.Post("/coupon", cartHandler.ApplyCoupon)
				r.Delete("/coupon", cartHandler.RemoveCoupon)
				r.With(RequireAuth).Post("/reorder/{order_id}", cartHandler.Reorder)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Use(RequireAuth)
				r.Post("/", checkoutHandler.PlaceOrder)
				r.Post("/quote", checkoutHandler.Quote)
				r.Post("/payment-intent", checkoutHandler.CreatePaymentIntent)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Use(RequireAuth)
				r.Get("/", ordersHandler.ListOrders)
				r.Get("/export", ordersHandler.ExportOrders)
				r.Get("/{order_id}", ordersHandler.GetOrder)
				r.With(RequireRole(domain.RoleAdmin, domain.RoleDeliveryPartner)).
					Put("/{order_id}/status", ordersHandler.UpdateStatus)
			})

			r.Route("/delivery", func(r chi.Router) {
				r.Use(RequireAuth)
				r.Use(RequireRole(domain.RoleAdmin, domain.RoleDeliveryPartner))
				r.Get("/orders", staffHandler.DeliveryOrders)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireAuth)
				r.Use(RequireRole(domain.RoleAdmin))
				r.Get("/delivery-partners", staffHandler.DeliveryPartners)
				r.Get("/dashboard", staffHandler.Dashboard)
			})

			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", authHandler.Login)
				r.Post("/register", authHandler.Register)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})

			r.Get("/language", languageHandler.GetLanguage)
			r.Put("/language", languageHandler.SetLanguage)
		})
	})

	return r
}
