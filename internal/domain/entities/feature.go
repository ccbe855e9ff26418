package entities

// FeatureSpec describes one cardiotocography (CTG) input parameter: its valid
// numeric range and what it measures.
type FeatureSpec struct {
	Name         string  `json:"name"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit"`
	ClinicalNote string  `json:"importance"`
}

// FeatureOrder is the positional order the model was trained with. The index
// of each name is the index of that feature in the inference vector — do not
// reorder.
var FeatureOrder = []string{
	"prolongued_decelerations",
	"abnormal_short_term_variability",
	"percentage_abnormal_long_term_variability",
	"histogram_variance",
	"histogram_median",
	"mean_long_term_variability",
	"histogram_mode",
	"accelerations",
}

// featureSpecs holds the static schema, keyed in training order. Ranges come
// from the training data distribution.
var featureSpecs = []FeatureSpec{
	{
		Name:         "prolongued_decelerations",
		Min:          0.0,
		Max:          0.005,
		Description:  "Prolonged decelerations in fetal heart rate",
		Unit:         "ratio",
		ClinicalNote: "Low values indicate healthier condition",
	},
	{
		Name:         "abnormal_short_term_variability",
		Min:          12.0,
		Max:          87.0,
		Description:  "Abnormal short-term variability percentage",
		Unit:         "percentage",
		ClinicalNote: "Most important feature - extreme values indicate problems",
	},
	{
		Name:         "percentage_abnormal_long_term_variability",
		Min:          0.0,
		Max:          91.0,
		Description:  "Percentage of time with abnormal long-term variability",
		Unit:         "percentage",
		ClinicalNote: "Second most important - high values concerning",
	},
	{
		Name:         "histogram_variance",
		Min:          0.0,
		Max:          269.0,
		Description:  "Variance of the fetal heart rate histogram",
		Unit:         "numeric",
		ClinicalNote: "Extreme values (very high/low) indicate issues",
	},
	{
		Name:         "histogram_median",
		Min:          77.0,
		Max:          186.0,
		Description:  "Median of the fetal heart rate histogram",
		Unit:         "bpm",
		ClinicalNote: "Normal range around 140-160 bpm",
	},
	{
		Name:         "mean_long_term_variability",
		Min:          0.0,
		Max:          50.7,
		Description:  "Mean value of long-term variability",
		Unit:         "numeric",
		ClinicalNote: "Zero values are extremely concerning",
	},
	{
		Name:         "histogram_mode",
		Min:          60.0,
		Max:          187.0,
		Description:  "Mode of the fetal heart rate histogram",
		Unit:         "bpm",
		ClinicalNote: "Should align with median for healthy patterns",
	},
	{
		Name:         "accelerations",
		Min:          0.0,
		Max:          0.019,
		Description:  "Number of accelerations per second",
		Unit:         "per second",
		ClinicalNote: "Higher values indicate healthy fetal responses",
	},
}

// FeatureSpecs returns the schema in training order.
func FeatureSpecs() []FeatureSpec {
	specs := make([]FeatureSpec, len(featureSpecs))
	copy(specs, featureSpecs)
	return specs
}

// FeatureByName looks up a feature spec by its canonical name.
func FeatureByName(name string) (FeatureSpec, bool) {
	for _, spec := range featureSpecs {
		if spec.Name == name {
			return spec, true
		}
	}
	return FeatureSpec{}, false
}

// SampleObservation returns a known-valid input suitable for demos and the
// /api/sample endpoint. Feeding it to the predictor must always succeed.
func SampleObservation() Observation {
	return Observation{
		"prolongued_decelerations":                  0.002,
		"abnormal_short_term_variability":           50.0,
		"percentage_abnormal_long_term_variability": 45.0,
		"histogram_variance":                        134.0,
		"histogram_median":                          130.0,
		"mean_long_term_variability":                25.0,
		"histogram_mode":                            120.0,
		"accelerations":                             0.01,
	}
}

// ExampleCases returns one representative observation per classification,
// taken from the training data.
func ExampleCases() map[Label]Observation {
	return map[Label]Observation{
		LabelNormal: {
			"prolongued_decelerations":                  0.0,
			"abnormal_short_term_variability":           85.0,
			"percentage_abnormal_long_term_variability": 5.0,
			"histogram_variance":                        80.0,
			"histogram_median":                          170.0,
			"mean_long_term_variability":                5.0,
			"histogram_mode":                            170.0,
			"accelerations":                             0.015,
		},
		LabelSuspect: {
			"prolongued_decelerations":                  0.0,
			"abnormal_short_term_variability":           73.0,
			"percentage_abnormal_long_term_variability": 43.0,
			"histogram_variance":                        73.0,
			"histogram_median":                          121.0,
			"mean_long_term_variability":                2.4,
			"histogram_mode":                            120.0,
			"accelerations":                             0.0,
		},
		LabelPathological: {
			"prolongued_decelerations":                  0.002,
			"abnormal_short_term_variability":           26.0,
			"percentage_abnormal_long_term_variability": 0.0,
			"histogram_variance":                        170.0,
			"histogram_median":                          107.0,
			"mean_long_term_variability":                0.0,
			"histogram_mode":                            76.0,
			"accelerations":                             0.001,
		},
	}
}
