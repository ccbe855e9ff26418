package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/obstetra/fetal-health-service/internal/application/services"
	"github.com/obstetra/fetal-health-service/internal/domain/entities"
	"github.com/obstetra/fetal-health-service/internal/web"
	apperrors "github.com/obstetra/fetal-health-service/pkg/errors"
	"github.com/rs/zerolog/log"
)

// WebHandler renders the server-side UI: home page, prediction form, result
// page, and the chat interface.
type WebHandler struct {
	tmpl      *template.Template
	predictor Predictor
	readiness ReadinessReporter
}

// NewWebHandler parses the embedded templates and creates the UI handler.
func NewWebHandler(predictor Predictor, readiness ReadinessReporter) (*WebHandler, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	return &WebHandler{tmpl: tmpl, predictor: predictor, readiness: readiness}, nil
}

// Home handles GET /.
func (h *WebHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index.html", map[string]any{
		"ModelLoaded": h.readiness.Ready(),
	})
}

// Form handles GET /form.
func (h *WebHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "form.html", map[string]any{
		"Features": entities.FeatureSpecs(),
	})
}

// Chat handles GET /chat.
func (h *WebHandler) Chat(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "chat.html", nil)
}

// PredictForm handles POST /predict from the HTML form. Field values arrive
// as strings; the validator handles coercion.
func (h *WebHandler) PredictForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, "invalid form submission")
		return
	}

	raw := make(map[string]any, len(entities.FeatureOrder))
	for _, name := range entities.FeatureOrder {
		if value := r.PostFormValue(name); value != "" {
			raw[name] = value
		}
	}

	prediction, err := h.predictor.Predict(r.Context(), raw)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			h.renderError(w, verr.Error())
			return
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeUnavailable {
			h.renderError(w, appErr.Message)
			return
		}
		log.Error().Err(err).Msg("form prediction failed")
		h.renderError(w, "prediction failed")
		return
	}

	h.render(w, http.StatusOK, "result.html", resultView(prediction))
}

type confidenceRow struct {
	Label   entities.Label
	Percent float64
}

type inputRow struct {
	Name  string
	Value string
}

func resultView(p *entities.Prediction) map[string]any {
	confidence := make([]confidenceRow, 0, len(entities.Labels()))
	for _, label := range entities.Labels() {
		confidence = append(confidence, confidenceRow{
			Label:   label,
			Percent: p.Confidence[label] * 100,
		})
	}

	inputs := make([]inputRow, 0, len(entities.FeatureOrder))
	for _, name := range entities.FeatureOrder {
		inputs = append(inputs, inputRow{
			Name:  name,
			Value: strconv.FormatFloat(p.Input[name], 'f', -1, 64),
		})
	}

	return map[string]any{
		"Prediction":     p,
		"Interpretation": p.Label.Interpretation(),
		"Confidence":     confidence,
		"Inputs":         inputs,
	}
}

func (h *WebHandler) renderError(w http.ResponseWriter, message string) {
	h.render(w, http.StatusOK, "error.html", map[string]any{"Error": message})
}

func (h *WebHandler) render(w http.ResponseWriter, statusCode int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("template rendering failed")
	}
}
