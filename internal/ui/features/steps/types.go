package steps

import (
	"github.com/leapstack-labs/boolstep/internal/stepper"
	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/trace"
)

// LoadRequest starts a new walkthrough.
type LoadRequest struct {
	Expr       string          `json:"expr"`
	Vars       int             `json:"vars,omitempty"`
	Assignment map[string]bool `json:"assignment,omitempty"`
}

// View is the stepper as the client shows it.
type View struct {
	Expr       string     `json:"expr"`
	Vars       int        `json:"vars"`
	Assignment eval.Env   `json:"assignment"`
	Index      int        `json:"index"`
	Total      int        `json:"total"`
	Progress   string     `json:"progress"`
	Done       bool       `json:"done"`
	Moved      bool       `json:"moved"`
	Step       trace.Step `json:"step"`
}

func newView(s *stepper.Stepper, moved bool) View {
	st := s.State()
	return View{
		Expr:       st.Expr,
		Vars:       st.Mode,
		Assignment: s.Env(),
		Index:      s.Index(),
		Total:      s.Len(),
		Progress:   s.Progress(),
		Done:       s.Done(),
		Moved:      moved,
		Step:       s.Current(),
	}
}
