package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/obstetra/fetal-health-service/internal/application/services"
	"github.com/obstetra/fetal-health-service/internal/domain/entities"
	"github.com/obstetra/fetal-health-service/internal/infrastructure/observability"
	apperrors "github.com/obstetra/fetal-health-service/pkg/errors"
)

// Predictor defines the prediction operations used by the handler.
type Predictor interface {
	Predict(ctx context.Context, raw map[string]any) (*entities.Prediction, error)
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	predictor Predictor
	metrics   *observability.Metrics
}

// NewPredictHandler creates a new prediction handler. metrics may be nil.
func NewPredictHandler(predictor Predictor, metrics *observability.Metrics) *PredictHandler {
	return &PredictHandler{predictor: predictor, metrics: metrics}
}

// predictResponse is the wire shape of /api/predict. Validation failures keep
// HTTP 200 and signal through the success field; existing callers depend on
// this convention.
type predictResponse struct {
	Success    bool                       `json:"success"`
	Prediction *entities.Label            `json:"prediction"`
	Confidence map[entities.Label]float64 `json:"confidence"`
	Timestamp  string                     `json:"timestamp,omitempty"`
	InputData  entities.Observation       `json:"input_data,omitempty"`
	Error      string                     `json:"error,omitempty"`
}

// Predict handles POST /api/predict.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil || len(raw) == 0 {
		respondWithJSON(w, http.StatusBadRequest, predictResponse{
			Success: false,
			Error:   "No JSON data provided",
		})
		return
	}

	prediction, err := h.predictor.Predict(r.Context(), raw)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if h.metrics != nil {
		observability.RecordPrediction(r.Context(), h.metrics, string(prediction.Label))
	}

	respondWithJSON(w, http.StatusOK, predictResponse{
		Success:    true,
		Prediction: &prediction.Label,
		Confidence: prediction.Confidence,
		Timestamp:  prediction.Timestamp,
		InputData:  prediction.Input,
	})
}

func (h *PredictHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		respondWithJSON(w, http.StatusOK, predictResponse{
			Success: false,
			Error:   verr.Error(),
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeUnavailable {
		respondWithJSON(w, http.StatusOK, predictResponse{
			Success: false,
			Error:   appErr.Message,
		})
		return
	}

	// Inference failures are recovered here; the process keeps serving.
	observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("prediction failed")
	respondWithJSON(w, http.StatusInternalServerError, predictResponse{
		Success: false,
		Error:   "prediction failed",
	})
}

// decodeBody parses the request body into an untyped mapping, keeping numbers
// as json.Number so the validator controls coercion.
func decodeBody(r *http.Request) (map[string]any, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}
