package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/sparkserves/subscription-checkout/internal/checkout"
	"github.com/sparkserves/subscription-checkout/internal/order"
	"github.com/sparkserves/subscription-checkout/internal/transport/middleware"
	"github.com/sparkserves/subscription-checkout/internal/transport/swagger"
	"github.com/sparkserves/subscription-checkout/internal/verification"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, orderHandler *order.Handler, verificationHandler *verification.Handler, checkoutHandler *checkout.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if checkoutHandler != nil {
			r.Get("/plans", checkoutHandler.ListPlans)
			r.Route("/checkout", func(cr chi.Router) {
				cr.Post("/", checkoutHandler.StartCheckout)
				cr.Post("/confirm", checkoutHandler.Confirm)
			})
		}

		if orderHandler != nil {
			r.Post("/orders", orderHandler.CreateOrder)
		}

		if verificationHandler != nil {
			r.Post("/payments/verify", verificationHandler.VerifyPayment)
		}
	})
}
