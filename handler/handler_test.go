package handler

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mager/tracklens/dataset"
	"github.com/mager/tracklens/query"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{&query.UnknownColumnError{Column: "x"}, http.StatusBadRequest, "unknown_column"},
		{pkgerrors.Wrap(&query.UnknownColumnError{Column: "x"}, "figures"), http.StatusBadRequest, "unknown_column"},
		{&BadParamError{Param: "year_low", Value: "abc"}, http.StatusBadRequest, "bad_param"},
		{&dataset.NotFoundError{Dir: "data"}, http.StatusServiceUnavailable, "dataset_not_found"},
		{&dataset.SchemaError{Missing: []string{"tempo"}}, http.StatusServiceUnavailable, "dataset_schema"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		status, kind := ErrorKind(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.kind, kind, tt.err.Error())
	}
}

func TestYearRange(t *testing.T) {
	lo, hi, err := YearRange(url.Values{}, 1950, 2020)
	require.NoError(t, err)
	assert.Equal(t, []int{1950, 2020}, []int{lo, hi})

	lo, hi, err = YearRange(url.Values{"year_low": {"2001"}, "year_high": {"1999"}}, 1950, 2020)
	require.NoError(t, err)
	assert.Equal(t, []int{2001, 1999}, []int{lo, hi})

	_, _, err = YearRange(url.Values{"year_high": {"soon"}}, 1950, 2020)
	var be *BadParamError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "year_high", be.Param)
}
