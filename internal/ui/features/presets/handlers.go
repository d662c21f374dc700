package presets

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/boolstep/internal/presets"
	"github.com/leapstack-labs/boolstep/internal/ui/features/common"
	"github.com/leapstack-labs/boolstep/internal/ui/notifier"
)

// Signals is the datastar signal payload patched on every update.
type Signals struct {
	Presets  []presets.Preset `json:"presets"`
	Revision uint64           `json:"revision"`
}

// Handlers provides HTTP handlers for the presets feature.
type Handlers struct {
	source   *presets.Source
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(source *presets.Source, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	return &Handlers{
		source:   source,
		notifier: notify,
		logger:   logger,
	}
}

// List returns the current catalogue.
func (h *Handlers) List(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSON(w, http.StatusOK, h.signals(h.notifier.Revision()))
}

// Get returns a single preset by name.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, ok := h.source.Catalog().Get(name)
	if !ok {
		common.WriteJSON(w, http.StatusNotFound, common.ErrorResponse{
			Error: fmt.Sprintf("unknown preset %q", name),
			Kind:  "NotFound",
		})
		return
	}
	common.WriteJSON(w, http.StatusOK, p)
}

// Updates is the long-lived SSE endpoint. It patches the presets signal
// on connect and again after every catalogue reload.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	if err := sse.MarshalAndPatchSignals(h.signals(h.notifier.Revision())); err != nil {
		h.logger.Debug("updates stream closed", slog.String("error", err.Error()))
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case rev := <-updates:
			if err := sse.MarshalAndPatchSignals(h.signals(rev)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

func (h *Handlers) signals(rev uint64) Signals {
	return Signals{Presets: h.source.Catalog().Presets, Revision: rev}
}
