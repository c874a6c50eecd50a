package vllm

import (
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultBaseURL = "http://vllm-tester:8000/v1"
	DefaultAPIKey  = "EMPTY"
	DefaultTimeout = 60 * time.Second
)

// Client talks to an OpenAI-compatible vLLM server through the legacy
// completions endpoint.
type Client struct {
	Client  openai.Client
	ModelID string
}

type Options struct {
	BaseURL string
	APIKey  string
	ModelID string
	Timeout time.Duration
	Extra   []option.RequestOption
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.ModelID) == "" {
		return nil, fmt.Errorf("vLLM model ID is required")
	}

	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	requestOpts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(baseURL, "/") + "/"),
		option.WithAPIKey(apiKey),
		// A failed call ends the run; the pipeline does not retry.
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	requestOpts = append(requestOpts, opts.Extra...)

	return &Client{
		Client:  openai.NewClient(requestOpts...),
		ModelID: opts.ModelID,
	}, nil
}
