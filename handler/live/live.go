package live

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mager/tracklens/explorer"
	"github.com/mager/tracklens/handler"
	"github.com/mager/tracklens/metrics"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Request is the full control state sent by the client on every change.
// Zero years select the default range.
type Request struct {
	Artist   string `json:"artist"`
	Metric   string `json:"metric"`
	YearLow  int    `json:"year_low"`
	YearHigh int    `json:"year_high"`
	Search   string `json:"search"`
}

// Update is sent back for every Request. Artist is the selection after the
// artist options were recomputed; it is cleared when no longer offered.
type Update struct {
	Artist  string                    `json:"artist"`
	Artists *explorer.ArtistsResponse `json:"artists,omitempty"`
	Figures *explorer.FiguresResponse `json:"figures,omitempty"`
	Error   *handler.ErrorResponse    `json:"error,omitempty"`
}

// LiveHandler streams figure updates over a WebSocket.
type LiveHandler struct {
	log      *zap.SugaredLogger
	explorer *explorer.Explorer
	metrics  *metrics.Metrics
}

func (*LiveHandler) Pattern() string {
	return "/figures/live"
}

// NewLiveHandler builds a new LiveHandler.
func NewLiveHandler(log *zap.SugaredLogger, e *explorer.Explorer, m *metrics.Metrics) *LiveHandler {
	return &LiveHandler{
		log:      log,
		explorer: e,
		metrics:  m,
	}
}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorw("Error upgrading connection to WebSocket", "error", err)
		return
	}
	defer conn.Close()

	h.log.Info("WebSocket client connected")

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warnw("WebSocket read failed", "error", err)
			}
			return
		}

		update := h.update(r, req)
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(update); err != nil {
			h.log.Errorw("Error sending WebSocket message", "error", err)
			return
		}
	}
}

// update mirrors the page flow: recompute the artist options, keep or
// clear the selected artist, then compute the figures.
func (h *LiveHandler) update(r *http.Request, req Request) Update {
	f, err := h.explorer.Facts()
	if err != nil {
		return h.fail(err)
	}
	if req.YearLow == 0 && req.YearHigh == 0 {
		req.YearLow, req.YearHigh = f.DefaultYears[0], f.DefaultYears[1]
	}
	if req.Metric == "" {
		req.Metric = f.DefaultMetric
	}

	artists, err := h.explorer.Artists(explorer.ArtistsRequest{
		YearLow:  req.YearLow,
		YearHigh: req.YearHigh,
		Search:   req.Search,
		Previous: req.Artist,
	})
	if err != nil {
		return h.fail(err)
	}

	figures, err := h.explorer.Figures(r.Context(), explorer.FiguresRequest{
		Artist:   artists.Selected,
		Metric:   req.Metric,
		YearLow:  req.YearLow,
		YearHigh: req.YearHigh,
		Search:   req.Search,
	})
	if err != nil {
		return h.fail(err)
	}
	return Update{Artist: artists.Selected, Artists: &artists, Figures: &figures}
}

func (h *LiveHandler) fail(err error) Update {
	_, kind := handler.ErrorKind(err)
	h.metrics.QueryError(kind)
	h.log.Warnw("live query rejected", "error", err, "kind", kind)
	return Update{Error: &handler.ErrorResponse{Error: err.Error(), Kind: kind}}
}
