package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obstetra/fetal-health-service/internal/adapters/model"
	"github.com/obstetra/fetal-health-service/internal/api/handlers"
	"github.com/obstetra/fetal-health-service/internal/application/services"
	"github.com/obstetra/fetal-health-service/internal/domain/entities"
)

func TestMetaHandler_Sample(t *testing.T) {
	handler := handlers.NewMetaHandler()

	req := httptest.NewRequest("GET", "/api/sample", nil)
	w := httptest.NewRecorder()
	handler.Sample(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var sample map[string]float64
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sample))
	assert.Len(t, sample, len(entities.FeatureOrder))
	for _, name := range entities.FeatureOrder {
		assert.Contains(t, sample, name)
	}
}

func TestMetaHandler_Features(t *testing.T) {
	handler := handlers.NewMetaHandler()

	req := httptest.NewRequest("GET", "/api/features", nil)
	w := httptest.NewRecorder()
	handler.Features(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var features map[string]struct {
		Range       [2]float64 `json:"range"`
		Description string     `json:"description"`
		Unit        string     `json:"unit"`
		Importance  string     `json:"importance"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&features))
	assert.Len(t, features, len(entities.FeatureOrder))

	stv := features["abnormal_short_term_variability"]
	assert.Equal(t, [2]float64{12, 87}, stv.Range)
	assert.NotEmpty(t, stv.Description)
	assert.NotEmpty(t, stv.Importance)
}

func TestMetaHandler_Examples(t *testing.T) {
	handler := handlers.NewMetaHandler()

	req := httptest.NewRequest("GET", "/api/examples", nil)
	w := httptest.NewRecorder()
	handler.Examples(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var examples map[string]map[string]float64
	require.NoError(t, json.NewDecoder(w.Body).Decode(&examples))
	require.Len(t, examples, 3)
	for _, label := range []string{"NORMAL", "SUSPECT", "PATHOLOGICAL"} {
		require.Contains(t, examples, label)
		assert.Len(t, examples[label], len(entities.FeatureOrder))
	}
}

// The sample and example endpoints promise inputs that the predictor accepts.
func TestMetaOutputsFeedBackIntoPredict(t *testing.T) {
	service := services.NewPredictionService(model.NewMockProvider(), services.NewValidator())
	predictHandler := handlers.NewPredictHandler(service, nil)
	metaHandler := handlers.NewMetaHandler()

	w := httptest.NewRecorder()
	metaHandler.Sample(w, httptest.NewRequest("GET", "/api/sample", nil))
	bodies := [][]byte{w.Body.Bytes()}

	w = httptest.NewRecorder()
	metaHandler.Examples(w, httptest.NewRequest("GET", "/api/examples", nil))
	var examples map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &examples))
	for _, raw := range examples {
		bodies = append(bodies, raw)
	}

	for _, body := range bodies {
		req := httptest.NewRequest("POST", "/api/predict", bytes.NewReader(body))
		req = req.WithContext(context.Background())
		w := httptest.NewRecorder()
		predictHandler.Predict(w, req)

		require.Equal(t, http.StatusOK, w.Code, string(body))

		var response map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, true, response["success"], string(body))
		assert.NotEmpty(t, response["prediction"], string(body))
	}
}
