package facts

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mager/tracklens/explorer"
	"github.com/mager/tracklens/handler"
)

// FactsHandler serves the metric options and year bounds.
type FactsHandler struct {
	log      *zap.SugaredLogger
	explorer *explorer.Explorer
}

func (*FactsHandler) Pattern() string {
	return "/facts"
}

// NewFactsHandler builds a new FactsHandler.
func NewFactsHandler(log *zap.SugaredLogger, e *explorer.Explorer) *FactsHandler {
	return &FactsHandler{
		log:      log,
		explorer: e,
	}
}

// Get table facts
// @Summary Get table facts
// @Description Selectable metrics, year bounds and defaults for the controls
// @Produce json
// @Success 200 {object} explorer.Facts
// @Router /facts [get]
func (h *FactsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, err := h.explorer.Facts()
	if err != nil {
		h.log.Errorw("facts failed", "error", err)
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, f)
}
