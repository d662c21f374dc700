package expressions

import (
	"github.com/leapstack-labs/boolstep/pkg/trace"
	"github.com/leapstack-labs/boolstep/pkg/truthtable"
)

// ExprRequest is the body of /api/eval and /api/trace.
type ExprRequest struct {
	Expr       string          `json:"expr"`
	Vars       int             `json:"vars,omitempty"`
	Assignment map[string]bool `json:"assignment,omitempty"`
}

// TableRequest is the body of /api/table.
type TableRequest struct {
	Expr string `json:"expr"`
	Vars int    `json:"vars,omitempty"`
}

// CompareRequest is the body of /api/compare.
type CompareRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	Vars  int    `json:"vars,omitempty"`
}

// CheckRequest is the body of /api/check. Answers holds one character per
// row, T, F or ? for a blank.
type CheckRequest struct {
	Expr    string `json:"expr"`
	Vars    int    `json:"vars,omitempty"`
	Answers string `json:"answers"`
}

// EvalResponse is the value of an expression.
type EvalResponse struct {
	Expr       string          `json:"expr"`
	Assignment map[string]bool `json:"assignment"`
	Value      bool            `json:"value"`
}

// TraceResponse lists the reduction steps.
type TraceResponse struct {
	Expr  string       `json:"expr"`
	Steps []trace.Step `json:"steps"`
}

// CheckResponse grades the submitted result column.
type CheckResponse struct {
	*truthtable.Report
	Expected []bool `json:"expected"`
	Score    string `json:"score"`
	Perfect  bool   `json:"perfect"`
}
