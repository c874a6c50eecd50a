package setup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/config"
	"github.com/rs/zerolog"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"LLM_PROVIDER", "LLM_SEED", "LLM_MODEL_ID", "LLM_MAX_TOKENS", "GUARDRAIL_API_PORT", "COUNTER_BACKEND"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Provider != ProviderVLLM {
		t.Errorf("Provider: %s, want vllm", cfg.Provider)
	}
	if cfg.Port != "18090" {
		t.Errorf("Port: %s, want 18090", cfg.Port)
	}
	if cfg.CounterBackend != "memory" {
		t.Errorf("CounterBackend: %s, want memory", cfg.CounterBackend)
	}
	if cfg.Seed != nil {
		t.Errorf("Seed: %v, want nil", *cfg.Seed)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad provider", map[string]string{"LLM_PROVIDER": "openai"}},
		{"bad seed", map[string]string{"LLM_SEED": "forty-five"}},
		{"bad counter backend", map[string]string{"COUNTER_BACKEND": "disk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LLM_PROVIDER", "")
			t.Setenv("LLM_SEED", "")
			t.Setenv("COUNTER_BACKEND", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := LoadConfig(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestConfig_ModelConfig_Overrides(t *testing.T) {
	seed := int64(7)
	base := config.Default().Model

	tests := []struct {
		name      string
		cfg       Config
		wantModel string
		wantSeed  int64
		wantMax   int
	}{
		{"no overrides", Config{Provider: ProviderVLLM}, config.DefaultModelID, config.DefaultSeed, config.DefaultMaxTokens},
		{"bedrock model", Config{Provider: ProviderBedrock, ClaudeModelID: "claude"}, "claude", config.DefaultSeed, config.DefaultMaxTokens},
		{"explicit model wins", Config{Provider: ProviderBedrock, ClaudeModelID: "claude", ModelID: "other"}, "other", config.DefaultSeed, config.DefaultMaxTokens},
		{"seed and tokens", Config{Provider: ProviderVLLM, Seed: &seed, MaxTokens: 64}, config.DefaultModelID, 7, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := tt.cfg.ModelConfig(base)
			if model.ModelID != tt.wantModel {
				t.Errorf("ModelID: %s, want %s", model.ModelID, tt.wantModel)
			}
			if *model.Seed != tt.wantSeed {
				t.Errorf("Seed: %d, want %d", *model.Seed, tt.wantSeed)
			}
			if model.MaxTokens != tt.wantMax {
				t.Errorf("MaxTokens: %d, want %d", model.MaxTokens, tt.wantMax)
			}
		})
	}
}

func TestWire_VLLM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	yaml := `
model:
  model_id: test-model
guardrails:
  - name: custom
    kind: substring
    default_param: bird
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	logger := zerolog.Nop()
	deps, err := Wire(context.Background(), &Config{
		Provider:           ProviderVLLM,
		VLLMBaseURL:        "http://127.0.0.1:1/v1",
		PipelineConfigPath: path,
	}, &logger)
	if err != nil {
		t.Fatalf("Wire() failed: %v", err)
	}

	if deps.Executor == nil || deps.Catalog == nil || deps.Metrics == nil {
		t.Fatalf("incomplete dependencies: %+v", deps)
	}
	if len(deps.Catalog.Entries()) != 1 {
		t.Errorf("catalog entries: %d, want 1", len(deps.Catalog.Entries()))
	}
}

func TestWire_MissingConfig(t *testing.T) {
	logger := zerolog.Nop()
	_, err := Wire(context.Background(), &Config{
		Provider:           ProviderVLLM,
		PipelineConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
	}, &logger)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
