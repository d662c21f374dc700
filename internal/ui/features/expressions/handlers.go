package expressions

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/boolstep/internal/ui/features/common"
	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/format"
	"github.com/leapstack-labs/boolstep/pkg/trace"
	"github.com/leapstack-labs/boolstep/pkg/truthtable"
)

// Handlers provides HTTP handlers for the expressions feature.
type Handlers struct {
	defaultVars int
	logger      *slog.Logger
}

// NewHandlers creates a new Handlers instance. Requests without a vars
// field use defaultVars.
func NewHandlers(defaultVars int, logger *slog.Logger) *Handlers {
	return &Handlers{
		defaultVars: defaultVars,
		logger:      logger,
	}
}

// Eval evaluates an expression under an assignment.
func (h *Handlers) Eval(w http.ResponseWriter, r *http.Request) {
	var req ExprRequest
	if err := common.Decode(w, r, &req); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	n, err := common.ParseExpr(req.Expr)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	env, err := common.Env(common.ModeOr(req.Vars, h.defaultVars), req.Assignment)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	value, err := eval.Evaluate(n, env)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, EvalResponse{
		Expr:       format.Expr(n),
		Assignment: env,
		Value:      value,
	})
}

// Trace returns every reduction step of an expression.
func (h *Handlers) Trace(w http.ResponseWriter, r *http.Request) {
	var req ExprRequest
	if err := common.Decode(w, r, &req); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	n, err := common.ParseExpr(req.Expr)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	env, err := common.Env(common.ModeOr(req.Vars, h.defaultVars), req.Assignment)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	steps, err := trace.Trace(n, env)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}

	h.logger.Debug("traced expression", slog.String("expr", req.Expr), slog.Int("steps", len(steps)))
	common.WriteJSON(w, http.StatusOK, TraceResponse{Expr: format.Expr(n), Steps: steps})
}

// Table returns the truth table of an expression.
func (h *Handlers) Table(w http.ResponseWriter, r *http.Request) {
	var req TableRequest
	if err := common.Decode(w, r, &req); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	table, err := h.generate(req.Expr, req.Vars)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, table)
}

// Compare returns the truth tables of two expressions and whether they
// are equivalent.
func (h *Handlers) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := common.Decode(w, r, &req); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	left, err := common.ParseExpr(req.Left)
	if err != nil {
		common.WriteError(w, h.logger, fmt.Errorf("left expression: %w", err))
		return
	}
	right, err := common.ParseExpr(req.Right)
	if err != nil {
		common.WriteError(w, h.logger, fmt.Errorf("right expression: %w", err))
		return
	}
	vars, err := common.Vars(common.ModeOr(req.Vars, h.defaultVars))
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	cmp, err := truthtable.Compare(left, right, vars)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, cmp)
}

// Check grades a guessed result column against the truth table.
func (h *Handlers) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := common.Decode(w, r, &req); err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	table, err := h.generate(req.Expr, req.Vars)
	if err != nil {
		common.WriteError(w, h.logger, err)
		return
	}
	answers, err := truthtable.ParseAnswers(req.Answers)
	if err != nil {
		common.WriteError(w, h.logger, common.BadRequest(err))
		return
	}
	report, err := table.Check(answers)
	if err != nil {
		common.WriteError(w, h.logger, common.BadRequest(err))
		return
	}

	common.WriteJSON(w, http.StatusOK, CheckResponse{
		Report:   report,
		Expected: table.Results(),
		Score:    report.Score(),
		Perfect:  report.Perfect(),
	})
}

func (h *Handlers) generate(src string, mode int) (*truthtable.Table, error) {
	n, err := common.ParseExpr(src)
	if err != nil {
		return nil, err
	}
	vars, err := common.Vars(common.ModeOr(mode, h.defaultVars))
	if err != nil {
		return nil, err
	}
	return truthtable.Generate(n, vars)
}
