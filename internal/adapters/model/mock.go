package model

import (
	"context"

	"github.com/obstetra/fetal-health-service/internal/domain/providers"
)

// Positions in the canonical feature vector used by the mock rules.
const (
	idxProlonguedDecelerations = 0
	idxAbnormalSTV             = 1
	idxPctAbnormalLTV          = 2
	idxMeanLTV                 = 5
)

// MockProvider is a deterministic stand-in classifier for tests and
// modelless development. The rules roughly mimic the trained model's behavior
// on the canonical example cases.
type MockProvider struct{}

// NewMockProvider creates a new mock classifier.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Predict classifies with fixed thresholds; identical input always yields an
// identical result.
func (m *MockProvider) Predict(ctx context.Context, features []float64) (*providers.Classification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	class := 0 // NORMAL
	switch {
	case features[idxProlonguedDecelerations] > 0.0015 && features[idxMeanLTV] == 0:
		class = 2 // PATHOLOGICAL
	case features[idxPctAbnormalLTV] > 40 && features[idxAbnormalSTV] > 60:
		class = 1 // SUSPECT
	}

	probabilities := []float64{0.1, 0.1, 0.1}
	probabilities[class] = 0.8

	return &providers.Classification{
		ClassIndex:    class,
		Probabilities: probabilities,
	}, nil
}
