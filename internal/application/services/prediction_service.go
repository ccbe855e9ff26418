package services

import (
	"context"
	"time"

	"github.com/obstetra/fetal-health-service/internal/domain/entities"
	"github.com/obstetra/fetal-health-service/internal/domain/providers"
	apperrors "github.com/obstetra/fetal-health-service/pkg/errors"
)

// ErrModelUnavailable is returned when the model artifact failed to load at
// startup. The server keeps serving so /health can report the condition, but
// prediction calls are refused.
var ErrModelUnavailable = apperrors.NewUnavailableError("Model not loaded")

// PredictionService orchestrates validation, model inference, and response
// assembly.
type PredictionService struct {
	model     providers.ModelProvider
	validator *Validator
	now       func() time.Time
}

// NewPredictionService creates a prediction service. A nil model is allowed
// and makes every prediction fail with ErrModelUnavailable.
func NewPredictionService(model providers.ModelProvider, validator *Validator) *PredictionService {
	return &PredictionService{
		model:     model,
		validator: validator,
		now:       time.Now,
	}
}

// Ready reports whether the model is loaded and predictions can be served.
func (s *PredictionService) Ready() bool {
	return s.model != nil
}

// Predict validates an untyped input mapping and classifies it. Validation
// failures return a *ValidationError without touching the model.
func (s *PredictionService) Predict(ctx context.Context, raw map[string]any) (*entities.Prediction, error) {
	observation, err := s.validator.Validate(raw)
	if err != nil {
		return nil, err
	}
	return s.PredictObservation(ctx, observation)
}

// PredictObservation classifies an already-validated observation.
func (s *PredictionService) PredictObservation(ctx context.Context, observation entities.Observation) (*entities.Prediction, error) {
	if s.model == nil {
		return nil, ErrModelUnavailable
	}

	// The vector order is a hard contract with the trained model.
	vector := make([]float64, len(entities.FeatureOrder))
	for i, name := range entities.FeatureOrder {
		vector[i] = observation[name]
	}

	classification, err := s.model.Predict(ctx, vector)
	if err != nil {
		return nil, apperrors.NewExternalError("model inference failed", err)
	}

	labels := entities.Labels()
	if classification.ClassIndex < 0 || classification.ClassIndex >= len(labels) {
		return nil, apperrors.NewInternalError("model returned an unknown class", nil)
	}

	// All three labels are always present in the confidence map, even when
	// the model assigns a probability of ~0.
	confidence := make(map[entities.Label]float64, len(labels))
	for i, label := range labels {
		if i < len(classification.Probabilities) {
			confidence[label] = classification.Probabilities[i]
		} else {
			confidence[label] = 0
		}
	}

	return &entities.Prediction{
		Label:      labels[classification.ClassIndex],
		Confidence: confidence,
		Timestamp:  s.now().UTC().Format(time.RFC3339),
		Input:      observation,
	}, nil
}
