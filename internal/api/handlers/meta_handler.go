package handlers

import (
	"net/http"

	"github.com/obstetra/fetal-health-service/internal/domain/entities"
)

// MetaHandler serves the static schema endpoints: sample input, feature
// information, and per-label example cases.
type MetaHandler struct{}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// Sample handles GET /api/sample. Its output fed unchanged into /api/predict
// always validates.
func (h *MetaHandler) Sample(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, entities.SampleObservation())
}

type featureInfo struct {
	Range       [2]float64 `json:"range"`
	Description string     `json:"description"`
	Unit        string     `json:"unit"`
	Importance  string     `json:"importance"`
}

// Features handles GET /api/features.
func (h *MetaHandler) Features(w http.ResponseWriter, r *http.Request) {
	info := make(map[string]featureInfo, len(entities.FeatureOrder))
	for _, spec := range entities.FeatureSpecs() {
		info[spec.Name] = featureInfo{
			Range:       [2]float64{spec.Min, spec.Max},
			Description: spec.Description,
			Unit:        spec.Unit,
			Importance:  spec.ClinicalNote,
		}
	}
	respondWithJSON(w, http.StatusOK, info)
}

// Examples handles GET /api/examples.
func (h *MetaHandler) Examples(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, entities.ExampleCases())
}
