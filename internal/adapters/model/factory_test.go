package model

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obstetra/fetal-health-service/pkg/config"
)

func TestNewProviderFromConfig(t *testing.T) {
	forest, err := NewProviderFromConfig(&config.ModelConfig{
		Provider: "forest",
		Path:     filepath.Join("..", "..", "..", "models", "fetal_health.json"),
	})
	require.NoError(t, err)
	assert.IsType(t, &ForestProvider{}, forest)

	remote, err := NewProviderFromConfig(&config.ModelConfig{
		Provider: "remote",
		URL:      "http://inference:9000",
	})
	require.NoError(t, err)
	assert.IsType(t, &RemoteProvider{}, remote)

	mock, err := NewProviderFromConfig(&config.ModelConfig{Provider: "mock"})
	require.NoError(t, err)
	assert.IsType(t, &MockProvider{}, mock)
}

func TestNewProviderFromConfig_RemoteRequiresURL(t *testing.T) {
	_, err := NewProviderFromConfig(&config.ModelConfig{Provider: "remote"})
	assert.Error(t, err)
}

func TestNewProviderFromConfig_UnknownProvider(t *testing.T) {
	_, err := NewProviderFromConfig(&config.ModelConfig{Provider: "tensor"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tensor")
}

func TestMockProvider_Deterministic(t *testing.T) {
	provider := NewMockProvider()
	ctx := context.Background()

	// prolongued decelerations with flat long term variability
	pathological := []float64{0.004, 80, 75, 200, 100, 0, 95, 0}
	c, err := provider.Predict(ctx, pathological)
	require.NoError(t, err)
	assert.Equal(t, 2, c.ClassIndex)
	assert.Equal(t, 0.8, c.Probabilities[2])

	suspect := []float64{0.001, 65, 50, 120, 125, 15, 118, 0.003}
	c, err = provider.Predict(ctx, suspect)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ClassIndex)

	normal := []float64{0, 20, 10, 50, 140, 30, 140, 0.015}
	c, err = provider.Predict(ctx, normal)
	require.NoError(t, err)
	assert.Equal(t, 0, c.ClassIndex)

	again, err := provider.Predict(ctx, normal)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}
