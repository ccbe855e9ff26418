package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/obstetra/fetal-health-service/internal/domain/entities"
)

// ValidationError aggregates every violation found in one validation pass so
// a single response can name all of them, not just the first.
type ValidationError struct {
	Problems []string
}

// Error joins the individual problems into one message.
func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validator checks presence, type, and range of the required features and
// produces a normalized observation. Out-of-range values are rejected rather
// than clamped or passed through.
type Validator struct {
	specs []entities.FeatureSpec
}

// NewValidator creates a validator over the static feature schema.
func NewValidator() *Validator {
	return &Validator{specs: entities.FeatureSpecs()}
}

// Validate checks an untyped key-value mapping, as parsed from a JSON or form
// body, against the feature schema. On success it returns an observation
// containing exactly the required features as floats; unrecognized keys are
// discarded. On failure it returns a ValidationError listing every violation.
// No side effects.
func (v *Validator) Validate(raw map[string]any) (entities.Observation, error) {
	verr := &ValidationError{}

	var missing []string
	for _, spec := range v.specs {
		if _, ok := raw[spec.Name]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) > 0 {
		verr.Problems = append(verr.Problems, "Missing features: "+strings.Join(missing, ", "))
	}

	observation := make(entities.Observation, len(v.specs))
	for _, spec := range v.specs {
		value, ok := raw[spec.Name]
		if !ok {
			continue
		}

		number, err := coerceFloat(value)
		if err != nil {
			verr.Problems = append(verr.Problems, fmt.Sprintf("%s: invalid numeric value", spec.Name))
			continue
		}

		if number < spec.Min || number > spec.Max {
			verr.Problems = append(verr.Problems, fmt.Sprintf(
				"%s: value %s outside range [%s, %s]",
				spec.Name, formatFloat(number), formatFloat(spec.Min), formatFloat(spec.Max),
			))
			continue
		}

		observation[spec.Name] = number
	}

	if len(verr.Problems) > 0 {
		return nil, verr
	}
	return observation, nil
}

// coerceFloat accepts the value representations that JSON decoding and HTML
// form parsing produce.
func coerceFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
