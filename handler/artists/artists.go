package artists

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mager/tracklens/explorer"
	"github.com/mager/tracklens/handler"
	"github.com/mager/tracklens/metrics"
)

// ArtistsHandler lists artists matching the year range and song search.
type ArtistsHandler struct {
	log      *zap.SugaredLogger
	explorer *explorer.Explorer
	metrics  *metrics.Metrics
}

func (*ArtistsHandler) Pattern() string {
	return "/artists"
}

// NewArtistsHandler builds a new ArtistsHandler.
func NewArtistsHandler(log *zap.SugaredLogger, e *explorer.Explorer, m *metrics.Metrics) *ArtistsHandler {
	return &ArtistsHandler{
		log:      log,
		explorer: e,
		metrics:  m,
	}
}

// List artists
// @Summary List artists
// @Description Artists ranked by track count under the current filters, capped at 300
// @Produce json
// @Param year_low query int false "First year"
// @Param year_high query int false "Last year"
// @Param search query string false "Song title search"
// @Param previous query string false "Currently selected artist"
// @Success 200 {object} explorer.ArtistsResponse
// @Router /artists [get]
func (h *ArtistsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f, err := h.explorer.Facts()
	if err != nil {
		h.fail(w, err)
		return
	}
	lo, hi, err := handler.YearRange(q, f.DefaultYears[0], f.DefaultYears[1])
	if err != nil {
		h.fail(w, err)
		return
	}

	req := explorer.ArtistsRequest{
		YearLow:  lo,
		YearHigh: hi,
		Search:   q.Get("search"),
		Previous: q.Get("previous"),
	}
	h.log.Infow("list artists", "year_low", lo, "year_high", hi, "search", req.Search)

	resp, err := h.explorer.Artists(req)
	if err != nil {
		h.fail(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, resp)
}

func (h *ArtistsHandler) fail(w http.ResponseWriter, err error) {
	_, kind := handler.ErrorKind(err)
	h.metrics.QueryError(kind)
	h.log.Warnw("artists query rejected", "error", err, "kind", kind)
	handler.WriteError(w, err)
}
