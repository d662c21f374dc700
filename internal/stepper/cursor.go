// Package stepper walks through a reduction trace one step at a time, in
// the terminal or on behalf of an HTTP session.
package stepper

import (
	"fmt"

	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/parser"
	"github.com/leapstack-labs/boolstep/pkg/trace"
	"github.com/leapstack-labs/boolstep/pkg/truthtable"
)

// State is everything needed to rebuild a stepper. It holds no trace, so
// it can live in a cookie and be replayed against the core on each request.
type State struct {
	Expr  string   `json:"expr"`
	Mode  int      `json:"vars"`
	Set   []string `json:"assignment,omitempty"`
	Index int      `json:"index"`
}

// Stepper is a cursor over the steps of one trace.
type Stepper struct {
	state State
	env   eval.Env
	steps []trace.Step
}

// New parses and traces the expression in st. Variables of the mode
// default to False unless st.Set assigns them. The index is clamped to
// the trace.
func New(st State) (*Stepper, error) {
	vars, err := truthtable.VarsForMode(st.Mode)
	if err != nil {
		return nil, err
	}
	n, err := parser.ParseString(st.Expr)
	if err != nil {
		return nil, err
	}
	defaults, err := eval.NewEnv(vars, make([]bool, len(vars)))
	if err != nil {
		return nil, err
	}
	env, err := eval.ParseAssignment(defaults, st.Set)
	if err != nil {
		return nil, err
	}
	steps, err := trace.Trace(n, env)
	if err != nil {
		return nil, err
	}

	s := &Stepper{state: st, env: env, steps: steps}
	s.seek(st.Index)
	return s, nil
}

func (s *Stepper) seek(i int) {
	s.state.Index = max(0, min(i, len(s.steps)-1))
}

// Next moves forward one step and reports whether it moved.
func (s *Stepper) Next() bool {
	old := s.state.Index
	s.seek(old + 1)
	return s.state.Index != old
}

// Prev moves back one step and reports whether it moved.
func (s *Stepper) Prev() bool {
	old := s.state.Index
	s.seek(old - 1)
	return s.state.Index != old
}

// Reset returns to the first step.
func (s *Stepper) Reset() { s.seek(0) }

// End jumps to the final step.
func (s *Stepper) End() { s.seek(len(s.steps) - 1) }

// Index is the position of the current step.
func (s *Stepper) Index() int { return s.state.Index }

// Len is the number of steps.
func (s *Stepper) Len() int { return len(s.steps) }

// Done reports whether the current step is the final one.
func (s *Stepper) Done() bool { return s.state.Index == len(s.steps)-1 }

// Current returns the current step.
func (s *Stepper) Current() trace.Step { return s.steps[s.state.Index] }

// Steps returns every step of the trace.
func (s *Stepper) Steps() []trace.Step { return s.steps }

// Env returns the assignment the trace was built with.
func (s *Stepper) Env() eval.Env { return s.env }

// State returns the replayable state at the current position.
func (s *Stepper) State() State { return s.state }

// Progress renders "Step 2 of 5".
func (s *Stepper) Progress() string {
	return fmt.Sprintf("Step %d of %d", s.state.Index+1, len(s.steps))
}
