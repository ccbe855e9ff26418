package handlers

import (
	"net/http"
	"time"
)

// ReadinessReporter reports whether the model is loaded and predictions can
// be served.
type ReadinessReporter interface {
	Ready() bool
}

// HealthHandler answers liveness checks.
type HealthHandler struct {
	predictor ReadinessReporter
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(predictor ReadinessReporter) *HealthHandler {
	return &HealthHandler{predictor: predictor}
}

// Check handles GET /health. The process stays healthy even when the model
// failed to load; model_loaded tells callers whether predictions work.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"model_loaded": h.predictor.Ready(),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}
