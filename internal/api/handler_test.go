package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/config"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/executor"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/guardrails"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/panels"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/prompt"
	"github.com/rs/zerolog"
)

// stubClient returns a canned response and counts calls.
type stubClient struct {
	reply string
	err   error
	calls int
}

func (s *stubClient) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llm.LLMResponse{Content: s.reply}, nil
}

func setupTestAPI(t *testing.T, client llm.LLMClient) *restful.Container {
	t.Helper()
	logger := zerolog.Nop()

	pipelineConfig := config.Default()
	catalog := guardrails.NewCatalog(pipelineConfig.Guardrails, &logger)
	exec := executor.NewExecutor(prompt.NewBuilder(), catalog, client, pipelineConfig.Model, nil, &logger)
	form := panels.NewForm(panels.NewMemoryCounter(), &logger)

	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	RegisterRoutes(container, NewHandler(exec, catalog, form, &logger))
	RegisterOpenAPI(container)

	return container
}

func doJSON(t *testing.T, container *restful.Container, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func decodeResult(t *testing.T, recorder *httptest.ResponseRecorder) models.PipelineResult {
	t.Helper()
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var result models.PipelineResult
	if err := json.NewDecoder(recorder.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return result
}

func TestAPI_Health(t *testing.T) {
	container := setupTestAPI(t, &stubClient{})

	recorder := doJSON(t, container, http.MethodGet, "/api/v1/health", nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	var health HealthResponse
	if err := json.NewDecoder(recorder.Body).Decode(&health); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if health.Status != "ok" || health.Version != "1.0.0" {
		t.Errorf("unexpected health %+v", health)
	}
}

func TestAPI_Guardrails(t *testing.T) {
	container := setupTestAPI(t, &stubClient{})

	recorder := doJSON(t, container, http.MethodGet, "/api/v1/guardrails", nil)

	var entries []guardrails.Entry
	if err := json.NewDecoder(recorder.Body).Decode(&entries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries: %d, want 3", len(entries))
	}
	if entries[0].Name != "custom" || entries[0].DefaultParam != "bird" {
		t.Errorf("unexpected first entry %+v", entries[0])
	}
}

func TestAPI_Query_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		client    *stubClient
		req       models.QueryRequest
		wantState models.RunState
		wantRaw   string
		wantFinal string
		wantCalls int
	}{
		{
			name:      "success",
			client:    &stubClient{reply: "A capybara is a rodent."},
			req:       models.QueryRequest{Query: "What is a capybara?"},
			wantState: models.StateSuccess,
			wantRaw:   "A capybara is a rodent.",
			wantFinal: "A capybara is a rodent.",
			wantCalls: 1,
		},
		{
			name:   "input violation",
			client: &stubClient{reply: "unused"},
			req: models.QueryRequest{
				Query:           "Tell me about birds",
				InputGuardrails: []string{"custom"},
			},
			wantState: models.StateInputViolation,
			wantRaw:   models.NotCalledMarker,
			wantFinal: `Input guardrail triggered. We aren't allowed to talk about "bird".`,
			wantCalls: 0,
		},
		{
			name:   "output violation",
			client: &stubClient{reply: "A capybara is a rodent."},
			req: models.QueryRequest{
				Query:            "What is a capybara?",
				OutputGuardrails: []string{"custom", "two"},
				OutputParams:     map[string]string{"custom": "rodent"},
			},
			wantState: models.StateOutputViolation,
			wantRaw:   "A capybara is a rodent.",
			wantFinal: `Output guardrail triggered. We aren't allowed to talk about "rodent".`,
			wantCalls: 1,
		},
		{
			name:      "model failure",
			client:    &stubClient{err: llm.NewServiceError("vllm", context.DeadlineExceeded)},
			req:       models.QueryRequest{Query: "What is a capybara?"},
			wantState: models.StateModelFailure,
			wantRaw:   models.FailureRawMarker,
			wantFinal: models.FailureFinalMessage,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container := setupTestAPI(t, tt.client)

			result := decodeResult(t, doJSON(t, container, http.MethodPost, "/api/v1/llm/query", tt.req))

			if result.State != tt.wantState {
				t.Errorf("state: %s, want %s", result.State, tt.wantState)
			}
			if result.RawResponse != tt.wantRaw {
				t.Errorf("raw_response: %q, want %q", result.RawResponse, tt.wantRaw)
			}
			if result.Final != tt.wantFinal {
				t.Errorf("final: %q, want %q", result.Final, tt.wantFinal)
			}
			if result.RequestID == "" {
				t.Error("expected a request id")
			}
			if tt.client.calls != tt.wantCalls {
				t.Errorf("model calls: %d, want %d", tt.client.calls, tt.wantCalls)
			}
		})
	}
}

func TestAPI_Query_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"unknown input guardrail", models.QueryRequest{Query: "q", InputGuardrails: []string{"nope"}}},
		{"unknown output guardrail", models.QueryRequest{Query: "q", OutputGuardrails: []string{"custom", "nope"}}},
		{"malformed body", "not an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{reply: "unused"}
			container := setupTestAPI(t, client)

			recorder := doJSON(t, container, http.MethodPost, "/api/v1/llm/query", tt.body)

			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", recorder.Code, recorder.Body.String())
			}
			var errResp middleware.ErrorResponse
			if err := json.NewDecoder(recorder.Body).Decode(&errResp); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if errResp.Code != http.StatusBadRequest {
				t.Errorf("code: %d, want 400", errResp.Code)
			}
			if client.calls != 0 {
				t.Errorf("model calls: %d, want 0", client.calls)
			}
		})
	}
}

type sseFrame struct {
	event string
	data  string
}

func readFrames(t *testing.T, body string) []sseFrame {
	t.Helper()
	var frames []sseFrame
	var current sseFrame
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if current.event != "" {
				frames = append(frames, current)
			}
			current = sseFrame{}
		}
	}
	return frames
}

func TestAPI_QueryStream_PendingThenResult(t *testing.T) {
	container := setupTestAPI(t, &stubClient{reply: "A capybara is a rodent."})

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/llm/query/stream", models.QueryRequest{
		Query: "What is a capybara?",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type: %q, want text/event-stream", ct)
	}

	frames := readFrames(t, recorder.Body.String())
	if len(frames) != 2 {
		t.Fatalf("frames: %d, want 2 (%q)", len(frames), recorder.Body.String())
	}

	if frames[0].event != EventPending {
		t.Errorf("first event: %s, want pending", frames[0].event)
	}
	var pending models.Display
	if err := json.Unmarshal([]byte(frames[0].data), &pending); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	if pending != models.PendingDisplay() {
		t.Errorf("pending: %+v", pending)
	}

	if frames[1].event != EventResult {
		t.Errorf("second event: %s, want result", frames[1].event)
	}
	var result models.PipelineResult
	if err := json.Unmarshal([]byte(frames[1].data), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.State != models.StateSuccess || result.Final != "A capybara is a rodent." {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestAPI_QueryStream_UnknownGuardrail(t *testing.T) {
	container := setupTestAPI(t, &stubClient{})

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/llm/query/stream", models.QueryRequest{
		Query:           "q",
		InputGuardrails: []string{"nope"},
	})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", recorder.Code)
	}
}

func TestAPI_FormSubmit(t *testing.T) {
	container := setupTestAPI(t, &stubClient{})

	var last panels.FormResult
	for i := 1; i <= 2; i++ {
		recorder := doJSON(t, container, http.MethodPost, "/api/v1/form/submit", panels.FormSubmission{
			NClicks: i,
			Input1:  "Montréal",
			Input2:  "Canada",
		})
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		if err := json.NewDecoder(recorder.Body).Decode(&last); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}

	if last.Counter != panels.InitialCounter+2 {
		t.Errorf("counter: %d, want %d", last.Counter, panels.InitialCounter+2)
	}
	if !strings.HasPrefix(last.Message, "The Button has been pressed 2 times") {
		t.Errorf("message: %q", last.Message)
	}
}

func TestAPI_PanelDefaults(t *testing.T) {
	container := setupTestAPI(t, &stubClient{})

	recorder := doJSON(t, container, http.MethodGet, "/api/v1/panels/defaults", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var defaults panels.Defaults
	if err := json.NewDecoder(recorder.Body).Decode(&defaults); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if defaults.Form.Input1 != "Montréal" || defaults.Form.Input2 != "Canada" {
		t.Errorf("unexpected form defaults %+v", defaults.Form)
	}
	if defaults.Form.Counter != panels.InitialCounter {
		t.Errorf("counter: %d, want %d", defaults.Form.Counter, panels.InitialCounter)
	}
	if defaults.LLM.RawResponse != models.InitialRawPlaceholder || defaults.LLM.Final != models.InitialFinalPlaceholder {
		t.Errorf("unexpected llm defaults %+v", defaults.LLM)
	}
}

func TestAPI_Query_EmptyQueryRunsPipeline(t *testing.T) {
	client := &stubClient{reply: "empty prompt reply"}
	container := setupTestAPI(t, client)

	recorder := doJSON(t, container, http.MethodPost, "/api/v1/llm/query", models.QueryRequest{Query: ""})
	result := decodeResult(t, recorder)

	if result.State != models.StateSuccess {
		t.Fatalf("state: %s, want success", result.State)
	}
	if result.RawResponse != client.reply || result.Final != client.reply {
		t.Errorf("got (%q, %q), want both %q", result.RawResponse, result.Final, client.reply)
	}
	if client.calls != 1 {
		t.Errorf("model calls: %d, want 1", client.calls)
	}
}

func TestAPI_Graph(t *testing.T) {
	container := setupTestAPI(t, &stubClient{})

	recorder := doJSON(t, container, http.MethodGet, "/api/v1/graph", nil)

	var fig panels.Figure
	if err := json.NewDecoder(recorder.Body).Decode(&fig); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if fig.Title != "Tab content 2" || len(fig.Data) != 1 || fig.Data[0].Type != "bar" {
		t.Errorf("unexpected figure %+v", fig)
	}
}

func TestAPI_OpenAPI(t *testing.T) {
	container := setupTestAPI(t, &stubClient{})

	recorder := doJSON(t, container, http.MethodGet, OpenAPIPath, nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	for _, path := range []string{"/api/v1/llm/query", "/api/v1/form/submit", "Guardrail Agent API"} {
		if !strings.Contains(body, path) {
			t.Errorf("openapi document missing %q", path)
		}
	}
}
