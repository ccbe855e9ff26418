package providers

import (
	"context"
)

// Classification is the raw output of a model inference call.
type Classification struct {
	// ClassIndex indexes into entities.Labels(): 0=NORMAL, 1=SUSPECT,
	// 2=PATHOLOGICAL.
	ClassIndex int

	// Probabilities holds the per-class probability distribution, aligned
	// with the label order. Values sum to ~1.0.
	Probabilities []float64
}

// ModelProvider wraps a pre-trained fetal health classifier. Implementations
// must be safe for concurrent use; inference is a bounded, synchronous,
// in-process or remote computation with no retained state per call.
type ModelProvider interface {
	// Predict classifies a feature vector ordered per entities.FeatureOrder.
	Predict(ctx context.Context, features []float64) (*Classification, error)
}
