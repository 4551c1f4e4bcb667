// Package handler holds helpers shared by the HTTP handlers.
package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/mager/tracklens/dataset"
	"github.com/mager/tracklens/query"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// ErrorKind classifies an error for responses and metrics.
func ErrorKind(err error) (int, string) {
	var (
		uc *query.UnknownColumnError
		nf *dataset.NotFoundError
		se *dataset.SchemaError
		be *BadParamError
	)
	switch {
	case errors.As(err, &uc):
		return http.StatusBadRequest, "unknown_column"
	case errors.As(err, &be):
		return http.StatusBadRequest, "bad_param"
	case errors.As(err, &nf):
		return http.StatusServiceUnavailable, "dataset_not_found"
	case errors.As(err, &se):
		return http.StatusServiceUnavailable, "dataset_schema"
	}
	return http.StatusInternalServerError, "internal"
}

// WriteError responds with the status matching err.
func WriteError(w http.ResponseWriter, err error) {
	status, kind := ErrorKind(err)
	WriteJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind})
}

// BadParamError is a malformed query parameter.
type BadParamError struct {
	Param string
	Value string
}

func (e *BadParamError) Error() string {
	return "invalid " + e.Param + ": " + strconv.Quote(e.Value)
}

// IntParam reads an integer parameter, returning def when absent.
func IntParam(q url.Values, name string, def int) (int, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &BadParamError{Param: name, Value: s}
	}
	return n, nil
}

// YearRange reads year_low and year_high, defaulting to [lo, hi].
func YearRange(q url.Values, lo, hi int) (int, int, error) {
	low, err := IntParam(q, "year_low", lo)
	if err != nil {
		return 0, 0, err
	}
	high, err := IntParam(q, "year_high", hi)
	if err != nil {
		return 0, 0, err
	}
	return low, high, nil
}
