// Package common provides the request decoding and error mapping shared by
// the API features.
package common

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/parser"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// RequestError marks a malformed request: bad JSON, an oversized body or
// expression, an unknown mode or assignment.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

// BadRequest wraps err as a *RequestError.
func BadRequest(err error) error {
	return &RequestError{Err: err}
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to a status and JSON body. Parse and
// undefined-variable errors are 422, oversized bodies 413, request errors
// 400 and anything else 500.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		parseErr *parser.ParseError
		undefErr *eval.UndefinedVariableError
		reqErr   *RequestError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &parseErr):
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: parseErr.Code()})
	case errors.As(err, &undefErr):
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: "UndefinedVariable"})
	case errors.As(err, &tooLarge):
		WriteJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large", Kind: "TooLarge"})
	case errors.As(err, &reqErr):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "BadRequest"})
	default:
		logger.Error("request failed", slog.String("error", err.Error()))
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Kind: "Internal"})
	}
}
