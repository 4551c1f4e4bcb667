package figures

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
	"github.com/mager/tracklens/handler"
	"github.com/mager/tracklens/logger"
	"github.com/mager/tracklens/metrics"
)

func newHandler(t *testing.T) *FiguresHandler {
	t.Helper()
	log, _ := logger.NewTestLogger()
	cfg := config.Config{ScatterMaxRows: 5000, ScatterSeed: 7, TopN: 15}
	e := explorer.NewExplorer(cfg, dataset.NewStaticStore(datasettest.Table()), log)
	return NewFiguresHandler(log, e, metrics.New())
}

func TestFiguresHandler(t *testing.T) {
	h := newHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/figures?year_low=2020&year_high=2020&metric=tempo", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp explorer.FiguresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Rows)
	assert.Equal(t, "tempo", resp.Trend.Metric)
	require.Len(t, resp.Ranked.Rows, 2)
	assert.Equal(t, "Song3", resp.Ranked.Rows[0].Track)
	assert.Equal(t, 95.0, resp.Ranked.Rows[0].Value)
	require.Len(t, resp.Scatter.Points, 2)
	assert.Equal(t, "Song1", resp.Scatter.Points[0].Hover["track_name"])
}

func TestFiguresHandlerDefaults(t *testing.T) {
	h := newHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/figures", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp explorer.FiguresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Rows)
	assert.Equal(t, "danceability", resp.Trend.Metric)
}

func TestFiguresHandlerUnknownMetric(t *testing.T) {
	h := newHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/figures?metric=loudness", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "unknown_column", resp.Kind)
	assert.Contains(t, resp.Error, "loudness")
}

func TestFiguresHandlerInvertedRange(t *testing.T) {
	h := newHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/figures?year_low=9999&year_high=0", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp explorer.FiguresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Rows)
	assert.True(t, resp.Trend.Empty)
	assert.True(t, resp.Ranked.Empty)
}
