package entities

// Label is a fetal health classification produced by the model.
type Label string

const (
	LabelNormal       Label = "NORMAL"
	LabelSuspect      Label = "SUSPECT"
	LabelPathological Label = "PATHOLOGICAL"
)

// Labels returns all classifications in model class order (classes 1, 2, 3).
func Labels() []Label {
	return []Label{LabelNormal, LabelSuspect, LabelPathological}
}

// Interpretation returns the clinical guidance text shown alongside a
// classification.
func (l Label) Interpretation() string {
	switch l {
	case LabelNormal:
		return "Healthy fetal condition. Regular monitoring sufficient."
	case LabelSuspect:
		return "Requires medical attention and close monitoring."
	case LabelPathological:
		return "URGENT - Immediate medical intervention required!"
	}
	return ""
}

// Observation maps each of the required feature names to its measured value.
// A validated observation contains exactly the features in FeatureOrder.
type Observation map[string]float64

// Prediction is the result of one classification call. It is assembled fresh
// per request and never persisted.
type Prediction struct {
	Label      Label             `json:"prediction"`
	Confidence map[Label]float64 `json:"confidence"`
	Timestamp  string            `json:"timestamp"`
	Input      Observation       `json:"input_data"`
}
