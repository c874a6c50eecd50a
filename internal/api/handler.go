package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/guardrails"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/panels"
	"github.com/rs/zerolog"
)

// Pipeline runs one guardrailed LLM query
type Pipeline interface {
	Run(ctx context.Context, req models.QueryRequest) models.PipelineResult
}

// GuardrailCatalog lists and validates the guardrails callers may enable
type GuardrailCatalog interface {
	Entries() []guardrails.Entry
	Validate(names []string) error
}

type Handler struct {
	pipeline Pipeline
	catalog  GuardrailCatalog
	form     *panels.Form
	logger   *zerolog.Logger
}

func NewHandler(pipeline Pipeline, catalog GuardrailCatalog, form *panels.Form, logger *zerolog.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		catalog:  catalog,
		form:     form,
		logger:   logger,
	}
}

// POST /api/v1/llm/query
// Body: QueryRequest
// Returns: PipelineResult
func (h *Handler) Query(req *restful.Request, resp *restful.Response) {
	queryRequest, ok := h.readQuery(req, resp)
	if !ok {
		return
	}

	result := h.pipeline.Run(req.Request.Context(), queryRequest)

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/llm/query/stream
// Emits a pending event with both fields blanked, then the result.
func (h *Handler) QueryStream(req *restful.Request, resp *restful.Response) {
	queryRequest, ok := h.readQuery(req, resp)
	if !ok {
		return
	}

	writer := resp.ResponseWriter
	flusher, ok := writer.(http.Flusher)
	if !ok {
		middleware.HandleError(resp, middleware.ErrStreamNotSupported, http.StatusInternalServerError)
		return
	}

	resp.AddHeader("Content-Type", "text/event-stream")
	resp.AddHeader("Cache-Control", "no-cache")
	resp.AddHeader("Connection", "keep-alive")
	resp.AddHeader("X-Accel-Buffering", "no")

	h.writeEvent(writer, flusher, SSEEvent{Event: EventPending, Data: models.PendingDisplay()})

	result := h.pipeline.Run(req.Request.Context(), queryRequest)

	h.writeEvent(writer, flusher, SSEEvent{Event: EventResult, Data: result})
}

func (h *Handler) writeEvent(writer http.ResponseWriter, flusher http.Flusher, event SSEEvent) {
	formatted, err := event.Format()
	if err != nil {
		h.logger.Error().Err(err).Str("event", event.Event).Msg("Failed to format SSE event")
		return
	}

	fmt.Fprint(writer, formatted)
	flusher.Flush()
}

func (h *Handler) readQuery(req *restful.Request, resp *restful.Response) (models.QueryRequest, bool) {
	var queryRequest models.QueryRequest
	if err := req.ReadEntity(&queryRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return queryRequest, false
	}

	for _, names := range [][]string{queryRequest.InputGuardrails, queryRequest.OutputGuardrails} {
		if err := h.catalog.Validate(names); err != nil {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return queryRequest, false
		}
	}

	queryRequest = queryRequest.Normalize()

	h.logger.Info().
		Str("requestID", queryRequest.RequestID).
		Strs("inputGuardrails", queryRequest.InputGuardrails).
		Strs("outputGuardrails", queryRequest.OutputGuardrails).
		Msg("Process query")

	return queryRequest, true
}

// GET /api/v1/guardrails
func (h *Handler) Guardrails(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, h.catalog.Entries())
}

// POST /api/v1/form/submit
func (h *Handler) SubmitForm(req *restful.Request, resp *restful.Response) {
	var submission panels.FormSubmission
	if err := req.ReadEntity(&submission); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse form submission")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	result, err := h.form.Submit(req.Request.Context(), submission)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to submit form")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/panels/defaults
func (h *Handler) PanelDefaults(req *restful.Request, resp *restful.Response) {
	defaults, err := h.form.Defaults(req.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read panel defaults")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, defaults)
}

// GET /api/v1/graph
func (h *Handler) Graph(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, panels.Graph())
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
