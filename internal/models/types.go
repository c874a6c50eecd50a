package models

import (
	"time"

	"github.com/google/uuid"
)

type Position string

const (
	PositionInput  Position = "input"
	PositionOutput Position = "output"
)

// Label is the capitalised form used in user-facing violation messages.
func (p Position) Label() string {
	switch p {
	case PositionInput:
		return "Input"
	case PositionOutput:
		return "Output"
	default:
		return string(p)
	}
}

type RunState string

const (
	StateSuccess         RunState = "success"
	StateInputViolation  RunState = "input_violation"
	StateOutputViolation RunState = "output_violation"
	StateModelFailure    RunState = "model_failure"
)

// Display values shown in the two LLM panel text areas.
const (
	InitialRawPlaceholder   = "<LLM response>"
	InitialFinalPlaceholder = "<Guardrail response>"
	PendingMarker           = "..."
	NotCalledMarker         = "<LLM not called>"
	FailureRawMarker        = "<LLM call failed>"
	FailureFinalMessage     = "Something went wrong while querying the LLM. Please contact the administrator."
)

// Input message

type QueryRequest struct {
	RequestID        string            `json:"request_id,omitempty" description:"Optional request identifier (generated when empty)"`
	Query            string            `json:"query" description:"User question"`
	InputGuardrails  []string          `json:"input_guardrails,omitempty" description:"Guardrail names applied to the rendered prompt"`
	InputParams      map[string]string `json:"input_params,omitempty" description:"Per-guardrail parameter for input guardrails"`
	OutputGuardrails []string          `json:"output_guardrails,omitempty" description:"Guardrail names applied to the raw model response"`
	OutputParams     map[string]string `json:"output_params,omitempty" description:"Per-guardrail parameter for output guardrails"`
}

// Normalize fills the request id when the caller did not send one.
func (q QueryRequest) Normalize() QueryRequest {
	if q.RequestID == "" {
		q.RequestID = uuid.NewString()
	}
	return q
}

type GuardrailSpec struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Position Position `json:"position"`
	Param    string   `json:"param"`
}

// Outcome is the result of one guardrail rule or a whole stage.
type Outcome struct {
	Passed    bool   `json:"passed"`
	Text      string `json:"text,omitempty"`
	Guardrail string `json:"guardrail,omitempty"`
	Message   string `json:"message,omitempty"`
}

func Pass(text string) Outcome {
	return Outcome{Passed: true, Text: text}
}

func Violation(guardrail string, message string) Outcome {
	return Outcome{Passed: false, Guardrail: guardrail, Message: message}
}

// Final output of one pipeline run
type PipelineResult struct {
	RequestID   string        `json:"request_id"`
	State       RunState      `json:"state"`
	RawResponse string        `json:"raw_response"`
	Final       string        `json:"final"`
	Guardrail   string        `json:"guardrail,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
}

// Display is the pair of strings rendered by the UI boundary.
type Display struct {
	RawResponse string `json:"raw_response"`
	Final       string `json:"final"`
}

func PendingDisplay() Display {
	return Display{RawResponse: PendingMarker, Final: PendingMarker}
}
