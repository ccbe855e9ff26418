package model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/obstetra/fetal-health-service/internal/domain/entities"
	"github.com/obstetra/fetal-health-service/internal/domain/providers"
)

// forestArtifact is the JSON export of the trained random forest. The trees
// were exported from the training pipeline; this adapter only evaluates them.
type forestArtifact struct {
	Classes  []float64    `json:"classes"`
	Features []string     `json:"features"`
	Trees    []forestTree `json:"trees"`
}

type forestTree struct {
	Nodes []forestNode `json:"nodes"`
}

// forestNode is one decision node. Feature is -1 for leaves; internal nodes
// route to Left when value <= Threshold, otherwise Right.
type forestNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

// ForestProvider runs random-forest inference in process from a JSON model
// artifact loaded once at startup. Traversal is read-only, so the provider is
// safe for concurrent use without locking.
type ForestProvider struct {
	trees      []forestTree
	classCount int
}

// NewForestProvider loads the artifact at path and verifies its feature order
// against the canonical schema. A mismatch means the artifact was trained
// against a different schema and must not be served.
func NewForestProvider(path string) (*ForestProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var artifact forestArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	if len(artifact.Trees) == 0 {
		return nil, fmt.Errorf("model artifact %s contains no trees", path)
	}
	if len(artifact.Classes) != len(entities.Labels()) {
		return nil, fmt.Errorf("model artifact declares %d classes, want %d", len(artifact.Classes), len(entities.Labels()))
	}
	if len(artifact.Features) != len(entities.FeatureOrder) {
		return nil, fmt.Errorf("model artifact declares %d features, want %d", len(artifact.Features), len(entities.FeatureOrder))
	}
	for i, name := range entities.FeatureOrder {
		if artifact.Features[i] != name {
			return nil, fmt.Errorf("model artifact feature %d is %q, want %q", i, artifact.Features[i], name)
		}
	}

	for ti, tree := range artifact.Trees {
		if err := validateTree(tree, len(artifact.Features), len(artifact.Classes)); err != nil {
			return nil, fmt.Errorf("model artifact tree %d: %w", ti, err)
		}
	}

	return &ForestProvider{
		trees:      artifact.Trees,
		classCount: len(artifact.Classes),
	}, nil
}

func validateTree(tree forestTree, featureCount, classCount int) error {
	if len(tree.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, node := range tree.Nodes {
		if node.Feature < 0 {
			if len(node.Value) != classCount {
				return fmt.Errorf("leaf %d has %d class counts, want %d", i, len(node.Value), classCount)
			}
			continue
		}
		if node.Feature >= featureCount {
			return fmt.Errorf("node %d references feature %d", i, node.Feature)
		}
		if node.Left < 0 || node.Left >= len(tree.Nodes) || node.Right < 0 || node.Right >= len(tree.Nodes) {
			return fmt.Errorf("node %d has out-of-range children", i)
		}
	}
	return nil
}

// Predict averages the normalized leaf distributions of every tree and picks
// the class with the highest mean probability.
func (p *ForestProvider) Predict(ctx context.Context, features []float64) (*providers.Classification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(features) != len(entities.FeatureOrder) {
		return nil, fmt.Errorf("expected %d features, got %d", len(entities.FeatureOrder), len(features))
	}

	probabilities := make([]float64, p.classCount)
	for _, tree := range p.trees {
		leaf := walk(tree, features)
		total := 0.0
		for _, count := range leaf.Value {
			total += count
		}
		if total == 0 {
			continue
		}
		for i, count := range leaf.Value {
			probabilities[i] += count / total
		}
	}
	for i := range probabilities {
		probabilities[i] /= float64(len(p.trees))
	}

	best := 0
	for i, prob := range probabilities {
		if prob > probabilities[best] {
			best = i
		}
	}

	return &providers.Classification{
		ClassIndex:    best,
		Probabilities: probabilities,
	}, nil
}

func walk(tree forestTree, features []float64) forestNode {
	node := tree.Nodes[0]
	for node.Feature >= 0 {
		if features[node.Feature] <= node.Threshold {
			node = tree.Nodes[node.Left]
		} else {
			node = tree.Nodes[node.Right]
		}
	}
	return node
}
