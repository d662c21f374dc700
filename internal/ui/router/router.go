// Package router sets up HTTP routes for the API server.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/boolstep/internal/presets"
	"github.com/leapstack-labs/boolstep/internal/ui/features/common"
	expressionsFeature "github.com/leapstack-labs/boolstep/internal/ui/features/expressions"
	presetsFeature "github.com/leapstack-labs/boolstep/internal/ui/features/presets"
	stepsFeature "github.com/leapstack-labs/boolstep/internal/ui/features/steps"
	"github.com/leapstack-labs/boolstep/internal/ui/notifier"
)

// SetupRoutes configures all routes for the API server.
func SetupRoutes(
	router chi.Router,
	source *presets.Source,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	defaultVars int,
	logger *slog.Logger,
) error {
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.WriteJSON(w, http.StatusNotFound, common.ErrorResponse{
			Error: "no route for " + r.Method + " " + r.URL.Path,
			Kind:  "NotFound",
		})
	})

	// Feature routes
	if err := expressionsFeature.SetupRoutes(router, defaultVars, logger); err != nil {
		return err
	}

	if err := stepsFeature.SetupRoutes(router, sessionStore, defaultVars, logger); err != nil {
		return err
	}

	if err := presetsFeature.SetupRoutes(router, source, notify, logger); err != nil {
		return err
	}

	return nil
}
