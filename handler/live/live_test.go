package live

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mager/tracklens/config"
	"github.com/mager/tracklens/dataset"
	"github.com/mager/tracklens/dataset/datasettest"
	"github.com/mager/tracklens/explorer"
	"github.com/mager/tracklens/logger"
	"github.com/mager/tracklens/metrics"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	log, _ := logger.NewTestLogger()
	cfg := config.Config{ScatterMaxRows: 5000, ScatterSeed: 7, TopN: 15, ArtistLimit: 300}
	e := explorer.NewExplorer(cfg, dataset.NewStaticStore(datasettest.Table()), log)
	srv := httptest.NewServer(NewLiveHandler(log, e, metrics.New()))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestLiveUpdates(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteJSON(Request{Artist: "B", Metric: "energy"}))
	var first Update
	require.NoError(t, conn.ReadJSON(&first))
	require.Nil(t, first.Error)
	assert.Equal(t, "B", first.Artist)
	assert.Len(t, first.Artists.Options, 2)
	assert.Equal(t, 1, first.Figures.Rows)

	// Song search drops B from the options, so the selection is cleared
	require.NoError(t, conn.WriteJSON(Request{Artist: "B", Metric: "energy", YearLow: 2020, YearHigh: 2021, Search: "song2"}))
	var second Update
	require.NoError(t, conn.ReadJSON(&second))
	require.Nil(t, second.Error)
	assert.Empty(t, second.Artist)
	assert.Equal(t, 1, second.Figures.Rows)
	assert.Equal(t, "Song2", second.Figures.Ranked.Rows[0].Track)
}

func TestLiveUnknownMetric(t *testing.T) {
	conn := dial(t)

	require.NoError(t, conn.WriteJSON(Request{Metric: "loudness"}))
	var u Update
	require.NoError(t, conn.ReadJSON(&u))
	require.NotNil(t, u.Error)
	assert.Equal(t, "unknown_column", u.Error.Kind)
	assert.Nil(t, u.Figures)

	// The connection survives a rejected query
	require.NoError(t, conn.WriteJSON(Request{}))
	var ok Update
	require.NoError(t, conn.ReadJSON(&ok))
	assert.Nil(t, ok.Error)
	assert.Equal(t, 3, ok.Figures.Rows)
}
