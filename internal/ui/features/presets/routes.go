// Package presets serves the preset catalogue and streams it again
// whenever the catalogue file is reloaded.
package presets

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/boolstep/internal/presets"
	"github.com/leapstack-labs/boolstep/internal/ui/notifier"
)

// SetupRoutes configures routes for the presets feature.
func SetupRoutes(router chi.Router, source *presets.Source, notify *notifier.Notifier, logger *slog.Logger) error {
	handlers := NewHandlers(source, notify, logger)

	router.Get("/api/presets", handlers.List)
	router.Get("/api/presets/{name}", handlers.Get)
	router.Get("/api/updates", handlers.Updates)

	return nil
}
