// Package expressions serves evaluation, tracing, truth tables, comparison
// and practice checking as JSON.
package expressions

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures routes for the expressions feature.
func SetupRoutes(router chi.Router, defaultVars int, logger *slog.Logger) error {
	handlers := NewHandlers(defaultVars, logger)

	router.Post("/api/eval", handlers.Eval)
	router.Post("/api/trace", handlers.Trace)
	router.Post("/api/table", handlers.Table)
	router.Post("/api/compare", handlers.Compare)
	router.Post("/api/check", handlers.Check)

	return nil
}
