// Package steps serves the interactive stepper over HTTP. The stepper
// position lives in a signed cookie session and the trace is rebuilt on
// every request.
package steps

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

// SetupRoutes configures routes for the steps feature.
func SetupRoutes(router chi.Router, sessionStore sessions.Store, defaultVars int, logger *slog.Logger) error {
	handlers := NewHandlers(sessionStore, defaultVars, logger)

	router.Route("/api/stepper", func(r chi.Router) {
		r.Get("/", handlers.Show)
		r.Post("/", handlers.Load)
		r.Post("/next", handlers.Next)
		r.Post("/prev", handlers.Prev)
		r.Post("/reset", handlers.Reset)
		r.Post("/end", handlers.End)
	})

	return nil
}
