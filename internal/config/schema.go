package config

// Guardrail kinds understood by the guardrail catalog.
const (
	KindSubstring   = "substring"
	KindPlaceholder = "placeholder"
)

// PipelineConfig is the YAML document describing the model invocation and
// the guardrails a caller may enable.
type PipelineConfig struct {
	Model      ModelConfig       `yaml:"model"`
	Guardrails []GuardrailConfig `yaml:"guardrails"`
}

// ModelConfig holds the fixed invocation parameters for this deployment.
type ModelConfig struct {
	ModelID       string   `yaml:"model_id"`
	Seed          *int64   `yaml:"seed"`
	MaxTokens     int      `yaml:"max_tokens"`
	Temperature   *float64 `yaml:"temperature"`
	StopSequences []string `yaml:"stop_sequences"`
}

// GuardrailConfig is one selectable entry of the guardrail checklist.
type GuardrailConfig struct {
	Name         string `yaml:"name"`
	Kind         string `yaml:"kind"`
	Label        string `yaml:"label"`
	DefaultParam string `yaml:"default_param"`
}
