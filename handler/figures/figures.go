package figures

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mager/tracklens/explorer"
	"github.com/mager/tracklens/handler"
	"github.com/mager/tracklens/metrics"
)

// FiguresHandler returns the data for the trend, scatter and top tracks
// figures.
type FiguresHandler struct {
	log      *zap.SugaredLogger
	explorer *explorer.Explorer
	metrics  *metrics.Metrics
}

func (*FiguresHandler) Pattern() string {
	return "/figures"
}

// NewFiguresHandler builds a new FiguresHandler.
func NewFiguresHandler(log *zap.SugaredLogger, e *explorer.Explorer, m *metrics.Metrics) *FiguresHandler {
	return &FiguresHandler{
		log:      log,
		explorer: e,
		metrics:  m,
	}
}

// ParseRequest reads a FiguresRequest from query parameters. Missing years
// default to the facts' defaults.
func ParseRequest(r *http.Request, f explorer.Facts) (explorer.FiguresRequest, error) {
	q := r.URL.Query()
	lo, hi, err := handler.YearRange(q, f.DefaultYears[0], f.DefaultYears[1])
	if err != nil {
		return explorer.FiguresRequest{}, err
	}
	req := explorer.FiguresRequest{
		Artist:   q.Get("artist"),
		Metric:   q.Get("metric"),
		YearLow:  lo,
		YearHigh: hi,
		Search:   q.Get("search"),
	}
	if req.Metric == "" {
		req.Metric = f.DefaultMetric
	}
	return req, nil
}

// Get figures
// @Summary Get figures
// @Description Yearly trend of a metric, energy vs tempo sample and top tracks
// @Produce json
// @Param artist query string false "Artist, exact match"
// @Param metric query string false "Metric for the trend"
// @Param year_low query int false "First year"
// @Param year_high query int false "Last year"
// @Param search query string false "Song title search"
// @Success 200 {object} explorer.FiguresResponse
// @Failure 400 {object} handler.ErrorResponse
// @Router /figures [get]
func (h *FiguresHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, err := h.explorer.Facts()
	if err != nil {
		h.fail(w, err)
		return
	}
	req, err := ParseRequest(r, f)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.log.Infow("get figures",
		"artist", req.Artist, "metric", req.Metric,
		"year_low", req.YearLow, "year_high", req.YearHigh, "search", req.Search)

	resp, err := h.explorer.Figures(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, resp)
}

func (h *FiguresHandler) fail(w http.ResponseWriter, err error) {
	_, kind := handler.ErrorKind(err)
	h.metrics.QueryError(kind)
	h.log.Warnw("figures query rejected", "error", err, "kind", kind)
	handler.WriteError(w, err)
}
