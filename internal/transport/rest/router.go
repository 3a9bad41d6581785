package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/personal-finance/internal/auth"
	"github.com/frahmantamala/personal-finance/internal/category"
	"github.com/frahmantamala/personal-finance/internal/transaction"
	"github.com/frahmantamala/personal-finance/internal/transport/middleware"
	"github.com/frahmantamala/personal-finance/internal/transport/swagger"
	"github.com/frahmantamala/personal-finance/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, categoryHandler *category.Handler, transactionHandler *transaction.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Health check routes
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			// Current user
			pr.Get("/users/me", userHandler.GetCurrentUser)

			// Category routes
			pr.Route("/categories", func(cr chi.Router) {
				cr.Post("/", categoryHandler.CreateCategory)
				cr.Get("/", categoryHandler.GetCategories)
				cr.Get("/{id}", categoryHandler.GetCategory)
				cr.Put("/{id}", categoryHandler.UpdateCategory)
				cr.Delete("/{id}", categoryHandler.DeleteCategory)
			})

			// Transaction routes
			pr.Route("/transactions", func(tr chi.Router) {
				tr.Post("/", transactionHandler.CreateTransaction)
				tr.Get("/", transactionHandler.GetTransactions)
				tr.Get("/{id}", transactionHandler.GetTransaction)
				tr.Put("/{id}", transactionHandler.UpdateTransaction)
				tr.Delete("/{id}", transactionHandler.DeleteTransaction)
			})
		})
	})
}
