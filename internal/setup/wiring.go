package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/config"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/guardrails"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/llm/vllm"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/metrics"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/prompt"
	"github.com/rs/zerolog"
)

const (
	ProviderVLLM    = "vllm"
	ProviderBedrock = "bedrock"
)

type Config struct {
	Provider           string
	VLLMBaseURL        string
	VLLMAPIKey         string
	AWSRegion          string
	ClaudeModelID      string
	ModelID            string
	Seed               *int64
	MaxTokens          int
	PipelineConfigPath string
	Port               string
	RedisAddr          string
	RedisPassword      string
	CounterBackend     string
	LogLevel           string
}

type Dependencies struct {
	Catalog  *guardrails.Catalog
	Executor *executor.Executor
	Metrics  *metrics.Recorder
	Logger   *zerolog.Logger
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Provider:           getEnv("LLM_PROVIDER", ProviderVLLM),
		VLLMBaseURL:        getEnv("VLLM_BASE_URL", vllm.DefaultBaseURL),
		VLLMAPIKey:         getEnv("VLLM_API_KEY", vllm.DefaultAPIKey),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:      getEnv("CLAUDE_MODEL_ID", ""),
		ModelID:            getEnv("LLM_MODEL_ID", ""),
		MaxTokens:          getEnvInt("LLM_MAX_TOKENS", 0),
		PipelineConfigPath: getEnv("PIPELINE_CONFIG_PATH", config.DefaultConfigPath),
		Port:               getEnv("GUARDRAIL_API_PORT", "18090"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		CounterBackend:     getEnv("COUNTER_BACKEND", "memory"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	if seedStr := os.Getenv("LLM_SEED"); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_SEED %q: %w", seedStr, err)
		}
		cfg.Seed = &seed
	}

	switch cfg.Provider {
	case ProviderVLLM, ProviderBedrock:
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (expected %s or %s)", cfg.Provider, ProviderVLLM, ProviderBedrock)
	}

	switch cfg.CounterBackend {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unknown COUNTER_BACKEND %q (expected memory or redis)", cfg.CounterBackend)
	}

	return cfg, nil
}

// ModelConfig merges the YAML model section with environment overrides.
func (c *Config) ModelConfig(base config.ModelConfig) config.ModelConfig {
	model := base
	if c.Provider == ProviderBedrock && c.ClaudeModelID != "" {
		model.ModelID = c.ClaudeModelID
	}
	if c.ModelID != "" {
		model.ModelID = c.ModelID
	}
	if c.Seed != nil {
		model.Seed = c.Seed
	}
	if c.MaxTokens > 0 {
		model.MaxTokens = c.MaxTokens
	}
	return model
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	pipelineConfig, err := config.LoadPipelineConfigFile(cfg.PipelineConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline config: %w", err)
	}

	model := cfg.ModelConfig(pipelineConfig.Model)

	llmClient, err := NewLLMClient(ctx, cfg, model.ModelID)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	catalog := guardrails.NewCatalog(pipelineConfig.Guardrails, logger)
	recorder := metrics.NewRecorder()

	exec := executor.NewExecutor(prompt.NewBuilder(), catalog, llmClient, model, recorder, logger)

	logger.Info().
		Str("provider", cfg.Provider).
		Str("modelID", model.ModelID).
		Int("guardrails", len(pipelineConfig.Guardrails)).
		Msg("Pipeline wired")

	return &Dependencies{
		Catalog:  catalog,
		Executor: exec,
		Metrics:  recorder,
		Logger:   logger,
	}, nil
}

func NewLLMClient(ctx context.Context, cfg *Config, modelID string) (llm.LLMClient, error) {
	switch cfg.Provider {
	case ProviderBedrock:
		return bedrock.NewClient(ctx, cfg.AWSRegion, modelID)
	default:
		return vllm.NewClient(vllm.Options{
			BaseURL: cfg.VLLMBaseURL,
			APIKey:  cfg.VLLMAPIKey,
			ModelID: modelID,
		})
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}
