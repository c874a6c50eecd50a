package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "configs/pipeline.yaml"
	DefaultModelID    = "Qwen/Qwen2.5-1.5B-Instruct"
	DefaultSeed       = int64(45)
	DefaultMaxTokens  = 500
)

func LoadPipelineConfigFile(path string) (*PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg PipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *PipelineConfig {
	cfg := &PipelineConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *PipelineConfig) {
	if cfg.Model.ModelID == "" {
		cfg.Model.ModelID = DefaultModelID
	}
	if cfg.Model.Seed == nil {
		seed := DefaultSeed
		cfg.Model.Seed = &seed
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = DefaultMaxTokens
	}

	if len(cfg.Guardrails) == 0 {
		cfg.Guardrails = []GuardrailConfig{
			{Name: "custom", Kind: KindSubstring, Label: "Custom Text-checker", DefaultParam: "bird"},
			{Name: "two", Kind: KindPlaceholder, Label: "placeholder"},
			{Name: "three", Kind: KindPlaceholder, Label: "placeholder"},
		}
	}

	for i := range cfg.Guardrails {
		if cfg.Guardrails[i].Label == "" {
			cfg.Guardrails[i].Label = cfg.Guardrails[i].Name
		}
	}
}

func (c *PipelineConfig) Validate() error {
	if c.Model.MaxTokens < 0 {
		return fmt.Errorf("invalid model config: negative max_tokens %d", c.Model.MaxTokens)
	}
	if t := c.Model.Temperature; t != nil && (*t < 0.0 || *t > 2.0) {
		return fmt.Errorf("invalid model config: invalid temperature %.2f", *t)
	}

	seen := make(map[string]bool, len(c.Guardrails))
	for i, g := range c.Guardrails {
		if g.Name == "" {
			return fmt.Errorf("guardrail at index %d: missing name", i)
		}
		if seen[g.Name] {
			return fmt.Errorf("duplicate guardrail name %q", g.Name)
		}
		seen[g.Name] = true

		switch g.Kind {
		case KindSubstring, KindPlaceholder:
		default:
			return fmt.Errorf("guardrail %q: unsupported kind %q", g.Name, g.Kind)
		}
	}

	return nil
}
