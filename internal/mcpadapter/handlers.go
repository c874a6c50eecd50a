package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/guardrails"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
)

// Pipeline runs one guardrailed LLM query.
type Pipeline interface {
	Run(ctx context.Context, req models.QueryRequest) models.PipelineResult
}

// Catalog lists and validates guardrail names.
type Catalog interface {
	Entries() []guardrails.Entry
	Validate(names []string) error
}

// QueryInput is the MCP tool input schema (matches HTTP API field names).
type QueryInput struct {
	RequestID        string            `json:"request_id,omitempty" jsonschema:"optional request identifier"`
	Query            string            `json:"query" jsonschema:"question to send to the model"`
	InputGuardrails  []string          `json:"input_guardrails,omitempty" jsonschema:"guardrail names checked against the rendered prompt"`
	InputParams      map[string]string `json:"input_params,omitempty" jsonschema:"forbidden term per input guardrail name"`
	OutputGuardrails []string          `json:"output_guardrails,omitempty" jsonschema:"guardrail names checked against the model response"`
	OutputParams     map[string]string `json:"output_params,omitempty" jsonschema:"forbidden term per output guardrail name"`
}

type ListGuardrailsInput struct{}

type ListGuardrailsOutput struct {
	Guardrails []guardrails.Entry `json:"guardrails" jsonschema:"guardrails that can be enabled"`
}

// NewQueryHandler returns a tool handler that uses the given pipeline.
// Pass the returned function to mcp.AddTool.
func NewQueryHandler(pipeline Pipeline, catalog Catalog) func(context.Context, *mcp.CallToolRequest, QueryInput) (*mcp.CallToolResult, models.PipelineResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, models.PipelineResult, error) {
		return QueryLLM(ctx, pipeline, catalog, req, input)
	}
}

// QueryLLM validates the input and runs the pipeline. Guardrail violations
// and model failures are normal results; only invalid input is a tool error.
func QueryLLM(
	ctx context.Context,
	pipeline Pipeline,
	catalog Catalog,
	req *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, models.PipelineResult, error) {
	if err := catalog.Validate(input.InputGuardrails); err != nil {
		return nil, models.PipelineResult{}, err
	}
	if err := catalog.Validate(input.OutputGuardrails); err != nil {
		return nil, models.PipelineResult{}, err
	}

	result := pipeline.Run(ctx, models.QueryRequest{
		RequestID:        input.RequestID,
		Query:            input.Query,
		InputGuardrails:  input.InputGuardrails,
		InputParams:      input.InputParams,
		OutputGuardrails: input.OutputGuardrails,
		OutputParams:     input.OutputParams,
	})
	return nil, result, nil
}

// NewListGuardrailsHandler returns a tool handler describing the catalog.
func NewListGuardrailsHandler(catalog Catalog) func(context.Context, *mcp.CallToolRequest, ListGuardrailsInput) (*mcp.CallToolResult, ListGuardrailsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListGuardrailsInput) (*mcp.CallToolResult, ListGuardrailsOutput, error) {
		return nil, ListGuardrailsOutput{Guardrails: catalog.Entries()}, nil
	}
}

// NewServer registers the guardrail tools on a new MCP server.
func NewServer(pipeline Pipeline, catalog Catalog) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "guardrail-agent",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_llm",
		Description: "Send a question to the LLM through optional input and output guardrails. Returns the raw model response and the guardrail-checked answer.",
	}, NewQueryHandler(pipeline, catalog))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_guardrails",
		Description: "List the guardrails that query_llm accepts, with their default forbidden terms.",
	}, NewListGuardrailsHandler(catalog))

	return server
}
