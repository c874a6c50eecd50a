package llm

import "fmt"

// LLMRequest is a one-shot generation request; no conversation history is sent.
type LLMRequest struct {
	Prompt        string
	ModelID       string
	Seed          *int64
	MaxTokens     int
	Temperature   *float64
	StopSequences []string
}

type LLMResponse struct {
	Content    string
	StopReason string
}

// ServiceError wraps any failure talking to the model service: connectivity,
// timeouts, non-2xx replies or a response that could not be decoded.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: model service error: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewServiceError(provider string, err error) *ServiceError {
	return &ServiceError{Provider: provider, Err: err}
}
