package vllm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/llm"
)

const provider = "vllm"

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	modelID := request.ModelID
	if modelID == "" {
		modelID = c.ModelID
	}

	params := openai.CompletionNewParams{
		Model: openai.CompletionNewParamsModel(modelID),
		Prompt: openai.CompletionNewParamsPromptUnion{
			OfString: openai.String(request.Prompt),
		},
	}
	if request.Temperature != nil {
		params.Temperature = openai.Float(*request.Temperature)
	}
	if request.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(request.MaxTokens))
	}
	if request.Seed != nil {
		params.Seed = openai.Int(*request.Seed)
	}
	if len(request.StopSequences) > 0 {
		params.Stop = openai.CompletionNewParamsStopUnion{
			OfStringArray: request.StopSequences,
		}
	}

	output, err := c.Client.Completions.New(ctx, params)
	if err != nil {
		return nil, llm.NewServiceError(provider, fmt.Errorf("unable to invoke completion model: %w", err))
	}

	if len(output.Choices) == 0 {
		return nil, llm.NewServiceError(provider, fmt.Errorf("no choices in response"))
	}

	choice := output.Choices[0]
	return &llm.LLMResponse{
		Content:    choice.Text,
		StopReason: string(choice.FinishReason),
	}, nil
}
