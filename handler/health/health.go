package health

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mager/tracklens/dataset"
)

// HealthHandler reports whether the server is up and the dataset loaded.
type HealthHandler struct {
	log   *zap.SugaredLogger
	store *dataset.Store
}

func (*HealthHandler) Pattern() string {
	return "/health"
}

// NewHealthHandler builds a new HealthHandler.
func NewHealthHandler(log *zap.SugaredLogger, store *dataset.Store) *HealthHandler {
	return &HealthHandler{
		log:   log,
		store: store,
	}
}

type Response struct {
	Server  bool `json:"server"`
	Dataset bool `json:"dataset"`
	Rows    int  `json:"rows"`
}

// Health check
// @Summary Health check
// @Description Reports server and dataset status
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var resp Response

	h.log.Debug("health check")

	resp.Server = true
	status := http.StatusServiceUnavailable

	// Never trigger the load from a probe
	if h.store.Loaded() {
		resp.Dataset = true
		if f, err := h.store.Facts(); err == nil {
			resp.Rows = f.Rows
		}
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
