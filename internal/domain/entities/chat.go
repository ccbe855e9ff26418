package entities

// Intent is the resolved meaning of a free-text chat message, drawn from a
// closed set of commands the agent understands.
type Intent string

const (
	IntentPredict  Intent = "predict"
	IntentSample   Intent = "sample"
	IntentExamples Intent = "examples"
	IntentFeatures Intent = "features"
	IntentHelp     Intent = "help"
	IntentAccuracy Intent = "accuracy"
	IntentUnknown  Intent = "unknown"
)

// ChatReply is the agent's answer to a single chat turn. No conversation
// state is carried between turns.
type ChatReply struct {
	Success bool   `json:"success"`
	Text    string `json:"response"`
	Intent  Intent `json:"-"`
}
