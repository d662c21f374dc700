package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/parser"
	"github.com/leapstack-labs/boolstep/pkg/truthtable"
)

// Request limits.
const (
	MaxBodyBytes = 16 << 10
	MaxExprLen   = 1024
)

// Decode reads a JSON body into v. Unknown fields are rejected.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return BadRequest(fmt.Errorf("invalid request body: %w", err))
	}
	return nil
}

// CheckExprLen rejects expressions longer than MaxExprLen.
func CheckExprLen(src string) error {
	if len(src) > MaxExprLen {
		return BadRequest(fmt.Errorf("expression longer than %d bytes", MaxExprLen))
	}
	return nil
}

// ParseExpr parses src after checking its length.
func ParseExpr(src string) (parser.Node, error) {
	if err := CheckExprLen(src); err != nil {
		return nil, err
	}
	return parser.ParseString(src)
}

// ModeOr returns mode, or fallback when mode is unset.
func ModeOr(mode, fallback int) int {
	if mode == 0 {
		return fallback
	}
	return mode
}

// Vars returns the variables of mode as a request error when mode is invalid.
func Vars(mode int) ([]string, error) {
	vars, err := truthtable.VarsForMode(mode)
	if err != nil {
		return nil, BadRequest(err)
	}
	return vars, nil
}

// Env builds the environment for mode with every variable False except
// those set in assignment.
func Env(mode int, assignment map[string]bool) (eval.Env, error) {
	vars, err := Vars(mode)
	if err != nil {
		return nil, err
	}
	defaults, err := eval.NewEnv(vars, make([]bool, len(vars)))
	if err != nil {
		return nil, err
	}
	env, err := eval.ParseAssignment(defaults, Pairs(assignment))
	if err != nil {
		if errors.Is(err, eval.ErrUndefinedVariable) {
			return nil, err
		}
		return nil, BadRequest(err)
	}
	return env, nil
}

// Pairs renders an assignment as sorted NAME=VALUE pairs.
func Pairs(assignment map[string]bool) []string {
	pairs := make([]string, 0, len(assignment))
	for name, v := range assignment {
		pairs = append(pairs, name+"="+strconv.FormatBool(v))
	}
	sort.Strings(pairs)
	return pairs
}
