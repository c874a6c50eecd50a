package executor

//go:generate mockgen -source=pipeline_executor.go -destination=mocks/mock_pipeline_executor.go -package=mocks

import (
	"context"
	"time"

	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/config"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/guardrails"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
	"github.com/rs/zerolog"
)

// PromptBuilder renders a query into the text sent to the model
type PromptBuilder interface {
	Build(query string) string
}

// StageBuilder creates a fresh guardrail stage for one run
type StageBuilder interface {
	BuildStage(position models.Position, enabled []string, params map[string]string) (*guardrails.Stage, error)
}

// Observer receives run events, typically for metrics
type Observer interface {
	RunFinished(state models.RunState, duration time.Duration)
	Violation(position models.Position, guardrail string)
	ModelCall(duration time.Duration, err error)
}

type Executor struct {
	prompts  PromptBuilder
	stages   StageBuilder
	client   llm.LLMClient
	model    config.ModelConfig
	observer Observer
	logger   *zerolog.Logger
}

func NewExecutor(
	prompts PromptBuilder,
	stages StageBuilder,
	client llm.LLMClient,
	model config.ModelConfig,
	observer Observer,
	logger *zerolog.Logger,
) *Executor {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Executor{
		prompts:  prompts,
		stages:   stages,
		client:   client,
		model:    model,
		observer: observer,
		logger:   logger,
	}
}

// Run executes one query end to end. Violations and model errors never
// escape: every path ends in exactly one terminal state.
func (e *Executor) Run(ctx context.Context, req models.QueryRequest) models.PipelineResult {
	start := time.Now()
	req = req.Normalize()
	log := e.logger.With().Str("requestID", req.RequestID).Logger()

	result := e.run(ctx, req, &log)
	result.RequestID = req.RequestID
	result.Duration = time.Since(start)

	e.observer.RunFinished(result.State, result.Duration)
	log.Info().
		Str("state", string(result.State)).
		Dur("duration", result.Duration).
		Msg("pipeline run complete")

	return result
}

func (e *Executor) run(ctx context.Context, req models.QueryRequest, log *zerolog.Logger) models.PipelineResult {
	prompt := e.prompts.Build(req.Query)
	log.Debug().Int("promptLength", len(prompt)).Msg("prompt built")

	inputStage, err := e.stages.BuildStage(models.PositionInput, req.InputGuardrails, req.InputParams)
	if err != nil {
		log.Error().Err(err).Msg("failed to build input guardrail stage")
		return modelFailure()
	}
	outputStage, err := e.stages.BuildStage(models.PositionOutput, req.OutputGuardrails, req.OutputParams)
	if err != nil {
		log.Error().Err(err).Msg("failed to build output guardrail stage")
		return modelFailure()
	}

	if outcome := inputStage.Apply(prompt); !outcome.Passed {
		e.observer.Violation(models.PositionInput, outcome.Guardrail)
		log.Info().Str("guardrail", outcome.Guardrail).Msg("input guardrail violation")
		return models.PipelineResult{
			State:       models.StateInputViolation,
			RawResponse: models.NotCalledMarker,
			Final:       outcome.Message,
			Guardrail:   outcome.Guardrail,
		}
	}
	log.Debug().Int("rules", inputStage.Len()).Msg("input guardrails passed")

	callStart := time.Now()
	resp, err := e.client.InvokeModel(ctx, llm.LLMRequest{
		Prompt:        prompt,
		ModelID:       e.model.ModelID,
		Seed:          e.model.Seed,
		MaxTokens:     e.model.MaxTokens,
		Temperature:   e.model.Temperature,
		StopSequences: e.model.StopSequences,
	})
	e.observer.ModelCall(time.Since(callStart), err)
	if err != nil {
		log.Error().Err(err).Msg("model call failed")
		return modelFailure()
	}

	raw := resp.Content
	log.Debug().
		Int("responseLength", len(raw)).
		Str("stopReason", resp.StopReason).
		Msg("model response captured")

	if outcome := outputStage.Apply(raw); !outcome.Passed {
		e.observer.Violation(models.PositionOutput, outcome.Guardrail)
		log.Info().Str("guardrail", outcome.Guardrail).Msg("output guardrail violation")
		return models.PipelineResult{
			State:       models.StateOutputViolation,
			RawResponse: raw,
			Final:       outcome.Message,
			Guardrail:   outcome.Guardrail,
		}
	}
	log.Debug().Int("rules", outputStage.Len()).Msg("output guardrails passed")

	return models.PipelineResult{
		State:       models.StateSuccess,
		RawResponse: raw,
		Final:       raw,
	}
}

func modelFailure() models.PipelineResult {
	return models.PipelineResult{
		State:       models.StateModelFailure,
		RawResponse: models.FailureRawMarker,
		Final:       models.FailureFinalMessage,
	}
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) RunFinished(models.RunState, time.Duration) {}
func (NopObserver) Violation(models.Position, string)          {}
func (NopObserver) ModelCall(time.Duration, error)             {}
