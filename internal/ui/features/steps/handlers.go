package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/boolstep/internal/stepper"
	"github.com/leapstack-labs/boolstep/internal/ui/features/common"
)

// SessionName is the cookie that carries the stepper state.
const SessionName = "boolstep-stepper"

const (
	keyID    = "id"
	keyState = "state"
)

// ErrNotLoaded is returned when the session has no expression yet.
var ErrNotLoaded = errors.New("no expression loaded")

// Handlers provides HTTP handlers for the steps feature.
type Handlers struct {
	sessionStore sessions.Store
	defaultVars  int
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessionStore sessions.Store, defaultVars int, logger *slog.Logger) *Handlers {
	return &Handlers{
		sessionStore: sessionStore,
		defaultVars:  defaultVars,
		logger:       logger,
	}
}

// Load traces a new expression and stores the stepper at its first step.
func (h *Handlers) Load(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if err := common.Decode(w, r, &req); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	// Parse errors report positions in the text as sent.
	if _, err := common.ParseExpr(req.Expr); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	mode := common.ModeOr(req.Vars, h.defaultVars)
	if _, err := common.Env(mode, req.Assignment); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	s, err := stepper.New(stepper.State{Expr: compactExpr(req.Expr), Mode: mode, Set: common.Pairs(req.Assignment)})
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	h.save(w, r, s, false)
}

// Show returns the current step without moving.
func (h *Handlers) Show(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(*stepper.Stepper) bool { return false })
}

// Next advances one step.
func (h *Handlers) Next(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, (*stepper.Stepper).Next)
}

// Prev goes back one step.
func (h *Handlers) Prev(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, (*stepper.Stepper).Prev)
}

// Reset returns to the first step.
func (h *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(s *stepper.Stepper) bool {
		old := s.Index()
		s.Reset()
		return s.Index() != old
	})
}

// End jumps to the final result.
func (h *Handlers) End(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(s *stepper.Stepper) bool {
		old := s.Index()
		s.End()
		return s.Index() != old
	})
}

// move rebuilds the stepper from the session, applies step and saves the
// new position.
func (h *Handlers) move(w http.ResponseWriter, r *http.Request, step func(*stepper.Stepper) bool) {
	s, err := h.restore(r)
	if errors.Is(err, ErrNotLoaded) {
		common.WriteJSON(w, http.StatusNotFound, common.ErrorResponse{Error: err.Error(), Kind: "NotLoaded"})
		return
	}
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	h.save(w, r, s, step(s))
}

func (h *Handlers) restore(r *http.Request) (*stepper.Stepper, error) {
	session, err := h.sessionStore.Get(r, SessionName)
	if err != nil {
		// A cookie signed with another secret decodes as a fresh session.
		h.logger.Debug("discarding stepper session", slog.String("error", err.Error()))
		return nil, ErrNotLoaded
	}
	raw, ok := session.Values[keyState].(string)
	if !ok {
		return nil, ErrNotLoaded
	}
	var st stepper.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, fmt.Errorf("corrupt stepper session: %w", err)
	}
	return stepper.New(st)
}

func (h *Handlers) save(w http.ResponseWriter, r *http.Request, s *stepper.Stepper, moved bool) {
	// Get returns a new session alongside a decode error, which is fine here.
	session, _ := h.sessionStore.Get(r, SessionName)

	id, ok := session.Values[keyID].(string)
	if !ok {
		id = uuid.NewString()
		session.Values[keyID] = id
	}
	raw, err := encodeState(s.State())
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	session.Values[keyState] = raw
	if err := session.Save(r, w); err != nil {
		common.WriteError(w, h.logger, fmt.Errorf("failed to save session: %w", err))
		return
	}

	h.logger.Debug("stepper position",
		slog.String("session", id),
		slog.Int("index", s.Index()),
		slog.Int("total", s.Len()))
	common.WriteJSON(w, http.StatusOK, newView(s, moved))
}

// compactExpr collapses runs of the whitespace the lexer skips into single
// spaces. Token boundaries are unchanged, so the trace is the same.
func compactExpr(src string) string {
	return strings.Join(strings.FieldsFunc(src, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}), " ")
}

// encodeState serializes st for the session cookie. HTML escaping is off so
// operators such as && are stored as written and not as \u0026.
func encodeState(st stepper.State) (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(st); err != nil {
		return "", err
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
