package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/llm"
)

type fakeRuntime struct {
	input  *bedrockruntime.InvokeModelInput
	output *bedrockruntime.InvokeModelOutput
	err    error
}

func (f *fakeRuntime) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	return f.output, f.err
}

func TestClient_InvokeModel_Success(t *testing.T) {
	runtime := &fakeRuntime{
		output: &bedrockruntime.InvokeModelOutput{
			Body: []byte(`{"content":[{"type":"text","text":"A capybara is a rodent."}],"stop_reason":"end_turn"}`),
		},
	}
	client := &Client{Client: runtime, ModelID: "anthropic.claude"}

	resp, err := client.InvokeModel(context.Background(), llm.LLMRequest{
		Prompt:        "Question: What is a capybara?",
		MaxTokens:     500,
		StopSequences: []string{"\n\nHuman:"},
	})
	if err != nil {
		t.Fatalf("InvokeModel failed: %v", err)
	}

	if resp.Content != "A capybara is a rodent." {
		t.Errorf("Content: %q", resp.Content)
	}
	if resp.StopReason != "end_turn" {
		t.Errorf("StopReason: %q", resp.StopReason)
	}

	if *runtime.input.ModelId != "anthropic.claude" {
		t.Errorf("ModelId: %s", *runtime.input.ModelId)
	}

	var sent claudeMessageRequest
	if err := json.Unmarshal(runtime.input.Body, &sent); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if sent.MaxTokens != 500 || len(sent.Messages) != 1 || sent.Messages[0].Role != "user" {
		t.Errorf("unexpected request %+v", sent)
	}
	if len(sent.StopSequences) != 1 {
		t.Errorf("StopSequences: %v", sent.StopSequences)
	}
}

func TestClient_InvokeModel_TransportError(t *testing.T) {
	client := &Client{Client: &fakeRuntime{err: errors.New("ThrottlingException")}, ModelID: "m"}

	_, err := client.InvokeModel(context.Background(), llm.LLMRequest{Prompt: "p"})

	var serviceErr *llm.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected *llm.ServiceError, got %v", err)
	}
	if serviceErr.Provider != "bedrock" {
		t.Errorf("Provider: %s", serviceErr.Provider)
	}
}

func TestClient_InvokeModel_MalformedResponse(t *testing.T) {
	client := &Client{
		Client:  &fakeRuntime{output: &bedrockruntime.InvokeModelOutput{Body: []byte("not json")}},
		ModelID: "m",
	}

	_, err := client.InvokeModel(context.Background(), llm.LLMRequest{Prompt: "p"})

	var serviceErr *llm.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected *llm.ServiceError, got %v", err)
	}
}

func TestClient_InvokeModel_RequestModelOverride(t *testing.T) {
	runtime := &fakeRuntime{
		output: &bedrockruntime.InvokeModelOutput{Body: []byte(`{"content":[],"stop_reason":"max_tokens"}`)},
	}
	client := &Client{Client: runtime, ModelID: "default"}

	resp, err := client.InvokeModel(context.Background(), llm.LLMRequest{Prompt: "p", ModelID: "override"})
	if err != nil {
		t.Fatalf("InvokeModel failed: %v", err)
	}
	if *runtime.input.ModelId != "override" {
		t.Errorf("ModelId: %s, want override", *runtime.input.ModelId)
	}
	if resp.Content != "" {
		t.Errorf("expected empty content, got %q", resp.Content)
	}
}
