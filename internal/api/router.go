package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/cart-pricing-service/internal/api/handlers"
	"github.com/Cheertaboi/cart-pricing-service/internal/service"
)

// NewRouter builds the HTTP router for the pricing service
func NewRouter(sessions *service.Registry) http.Handler {
	r := chi.NewRouter()

	h := handlers.NewSessionHandler(sessions)

	// Catalog listing
	r.Get("/products", h.ListProducts)
	r.Get("/coupons", h.ListCoupons)
	r.Get("/catalog", h.GetCatalog)

	// Cart sessions
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)

			r.Post("/items", h.AddItem)
			r.Put("/items/{productID}", h.UpdateItem)
			r.Delete("/items/{productID}", h.RemoveItem)

			r.Post("/coupons", h.ApplyCoupon)
			r.Get("/coupons/available", h.AvailableCoupons)
			r.Delete("/coupons/{slot}", h.RemoveCoupon)

			r.Post("/points", h.ApplyPoints)
			r.Delete("/points", h.ResetPoints)
		})
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
