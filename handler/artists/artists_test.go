package artists

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mager/tracklens/config"
	"github.com/mager/tracklens/dataset"
	"github.com/mager/tracklens/dataset/datasettest"
	"github.com/mager/tracklens/explorer"
	"github.com/mager/tracklens/logger"
	"github.com/mager/tracklens/metrics"
	"github.com/mager/tracklens/query"
)

func newHandler(t *testing.T) *ArtistsHandler {
	t.Helper()
	log, _ := logger.NewTestLogger()
	e := explorer.NewExplorer(config.Config{ArtistLimit: 300}, dataset.NewStaticStore(datasettest.Table()), log)
	return NewArtistsHandler(log, e, metrics.New())
}

func TestArtistsHandler(t *testing.T) {
	h := newHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/artists?previous=B", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp explorer.ArtistsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []query.ArtistCount{{Artist: "A", Count: 2}, {Artist: "B", Count: 1}}, resp.Options)
	assert.True(t, resp.RetainedPrevious)
	assert.Equal(t, "B", resp.Selected)
}

func TestArtistsHandlerFilters(t *testing.T) {
	h := newHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/artists?year_low=2020&year_high=2020&search=song3&previous=A", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp explorer.ArtistsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []query.ArtistCount{{Artist: "B", Count: 1}}, resp.Options)
	assert.False(t, resp.RetainedPrevious)
	assert.Empty(t, resp.Selected)
}

func TestArtistsHandlerBadYear(t *testing.T) {
	h := newHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/artists?year_low=last", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "bad_param")
}
