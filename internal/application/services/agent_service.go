package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/obstetra/fetal-health-service/internal/domain/entities"
)

const helpText = `**Fetal Health Agent Help**

**Available Commands:**
- **"predict"** - Make a prediction (requires medical data)
- **"sample"** - Get sample input data format
- **"sample cases"** - Get examples for all classifications
- **"features"** - Get detailed parameter information
- **"accuracy"** - View model performance details
- **"help"** - Show this help message

**Classifications:**
- **NORMAL** - Healthy fetal condition
- **SUSPECT** - Requires medical attention
- **PATHOLOGICAL** - Urgent intervention needed

**To make a prediction:**
Provide medical data in JSON format with all 8 required parameters.

**Medical Disclaimer:**
This system is for clinical decision support only. Always combine with professional medical judgment.`

const accuracyText = `**Model Performance:**

- **Overall Accuracy:** 95.92%
- **Algorithm:** Random Forest Classifier
- **Training Data:** 2,126 fetal health records
- **Features:** 8 medical parameters
- **Classes:** 3 fetal health conditions

**Feature Importance:**
1. Abnormal Short Term Variability (22.83%)
2. Percentage Abnormal Long Term Variability (19.52%)
3. Histogram Median (13.37%)
4. Histogram Mode (12.36%)

**Clinical Validation:**
Suitable for medical screening and decision support; requires clinical oversight.`

const unknownText = `I can help you with fetal health predictions!

**Try asking:**
- "help" - See all available commands
- "sample" - Get example input data
- "features" - Learn about medical parameters
- "sample cases" - See examples for each classification
- "accuracy" - View model performance details

**For predictions:** Provide medical data and ask me to "predict"`

const predictPromptText = `To make a prediction, please provide the required medical data. Use "sample" to see example data format.`

// AgentService routes free-text chat commands to the prediction service or to
// canned informational responses. Dispatch is stateless: every call is
// independent and no conversation state is kept.
type AgentService struct {
	predictor *PredictionService
}

// NewAgentService creates the chat agent.
func NewAgentService(predictor *PredictionService) *AgentService {
	return &AgentService{predictor: predictor}
}

// ClassifyIntent resolves a message to one of the closed set of intents by
// case-insensitive substring matching. Precedence follows the original
// command table: predict beats sample beats features beats help.
func (a *AgentService) ClassifyIntent(message string) entities.Intent {
	q := strings.ToLower(message)
	switch {
	case strings.Contains(q, "predict"):
		return entities.IntentPredict
	case strings.Contains(q, "sample") || strings.Contains(q, "example"):
		if strings.Contains(q, "cases") || strings.Contains(q, "all") || strings.Contains(q, "examples") {
			return entities.IntentExamples
		}
		return entities.IntentSample
	case strings.Contains(q, "features") || strings.Contains(q, "parameters"):
		return entities.IntentFeatures
	case strings.Contains(q, "help"):
		return entities.IntentHelp
	case strings.Contains(q, "accuracy") || strings.Contains(q, "performance"):
		return entities.IntentAccuracy
	default:
		return entities.IntentUnknown
	}
}

// Respond handles one chat turn. The optional data mapping is only consulted
// for the predict intent; without it the agent answers with a guidance prompt
// and never invokes the model.
func (a *AgentService) Respond(ctx context.Context, message string, data map[string]any) entities.ChatReply {
	intent := a.ClassifyIntent(message)

	switch intent {
	case entities.IntentPredict:
		return a.respondPredict(ctx, intent, data)
	case entities.IntentSample:
		return entities.ChatReply{Success: true, Text: sampleText(), Intent: intent}
	case entities.IntentExamples:
		return entities.ChatReply{Success: true, Text: exampleCasesText(), Intent: intent}
	case entities.IntentFeatures:
		return entities.ChatReply{Success: true, Text: featureInfoText(), Intent: intent}
	case entities.IntentHelp:
		return entities.ChatReply{Success: true, Text: helpText, Intent: intent}
	case entities.IntentAccuracy:
		return entities.ChatReply{Success: true, Text: accuracyText, Intent: intent}
	default:
		return entities.ChatReply{Success: true, Text: unknownText, Intent: entities.IntentUnknown}
	}
}

func (a *AgentService) respondPredict(ctx context.Context, intent entities.Intent, data map[string]any) entities.ChatReply {
	if len(data) == 0 {
		return entities.ChatReply{Success: true, Text: predictPromptText, Intent: intent}
	}

	prediction, err := a.predictor.Predict(ctx, data)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return entities.ChatReply{
				Success: false,
				Text:    "**Prediction failed:** " + verr.Error(),
				Intent:  intent,
			}
		}
		return entities.ChatReply{
			Success: false,
			Text:    "**Prediction failed:** " + err.Error(),
			Intent:  intent,
		}
	}

	return entities.ChatReply{Success: true, Text: predictionText(prediction), Intent: intent}
}

func predictionText(p *entities.Prediction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Prediction: %s**\n\n", p.Label)
	b.WriteString("**Confidence Scores:**\n")
	for _, label := range entities.Labels() {
		fmt.Fprintf(&b, "  %s: %.1f%%\n", label, p.Confidence[label]*100)
	}
	b.WriteString("\n**Interpretation:** " + p.Label.Interpretation())
	return b.String()
}

func sampleText() string {
	sample := entities.SampleObservation()
	var b strings.Builder
	b.WriteString("**Sample Input Data:**\n\n")
	for _, name := range entities.FeatureOrder {
		fmt.Fprintf(&b, "  - **%s**: %s\n", name, formatFloat(sample[name]))
	}
	return b.String()
}

func exampleCasesText() string {
	cases := entities.ExampleCases()
	var b strings.Builder
	b.WriteString("**Example Cases for Each Classification:**\n\n")
	for _, label := range entities.Labels() {
		fmt.Fprintf(&b, "**%s Case:**\n", label)
		observation := cases[label]
		for _, name := range entities.FeatureOrder {
			fmt.Fprintf(&b, "  - %s: %s\n", name, formatFloat(observation[name]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func featureInfoText() string {
	var b strings.Builder
	b.WriteString("**Medical Parameters Information:**\n\n")
	for _, spec := range entities.FeatureSpecs() {
		fmt.Fprintf(&b, "**%s:**\n", titleCase(spec.Name))
		fmt.Fprintf(&b, "  - Description: %s\n", spec.Description)
		fmt.Fprintf(&b, "  - Range: %s - %s %s\n", formatFloat(spec.Min), formatFloat(spec.Max), spec.Unit)
		fmt.Fprintf(&b, "  - Clinical Note: %s\n\n", spec.ClinicalNote)
	}
	return b.String()
}

func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
