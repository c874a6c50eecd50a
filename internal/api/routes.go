package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/guardrails"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/panels"
)

const OpenAPIPath = "/api/v1/openapi.json"

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.GET("/guardrails").
			To(handler.Guardrails).
			Doc("List the guardrails that can be enabled").
			Metadata(restfulspec.KeyOpenAPITags, []string{"llm"}).
			Writes([]guardrails.Entry{}).
			Returns(200, "OK", []guardrails.Entry{}))

	ws.
		Route(ws.POST("/llm/query").
			To(handler.Query).
			Doc("Run a query through the guardrail pipeline").
			Metadata(restfulspec.KeyOpenAPITags, []string{"llm"}).
			Reads(models.QueryRequest{}).
			Writes(models.PipelineResult{}).
			Returns(200, "OK", models.PipelineResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/llm/query/stream").
			To(handler.QueryStream).
			Consumes(restful.MIME_JSON).
			Produces("text/event-stream", restful.MIME_JSON).
			Doc("Run a query and stream the pending and result updates").
			Metadata(restfulspec.KeyOpenAPITags, []string{"llm"}).
			Reads(models.QueryRequest{}).
			Returns(200, "OK", nil).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/form/submit").
			To(handler.SubmitForm).
			Doc("Submit the form panel and advance the shared counter").
			Metadata(restfulspec.KeyOpenAPITags, []string{"panels"}).
			Reads(panels.FormSubmission{}).
			Writes(panels.FormResult{}).
			Returns(200, "OK", panels.FormResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/panels/defaults").
			To(handler.PanelDefaults).
			Doc("Initial values of the form and LLM panels").
			Metadata(restfulspec.KeyOpenAPITags, []string{"panels"}).
			Writes(panels.Defaults{}).
			Returns(200, "OK", panels.Defaults{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/graph").
			To(handler.Graph).
			Doc("Static bar chart").
			Metadata(restfulspec.KeyOpenAPITags, []string{"panels"}).
			Writes(panels.Figure{}).
			Returns(200, "OK", panels.Figure{}))

	container.Add(ws)
}

// RegisterOpenAPI serves the OpenAPI document for every web service
// registered so far.
func RegisterOpenAPI(container *restful.Container) {
	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       OpenAPIPath,
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}

	container.Add(restfulspec.NewOpenAPIService(config))
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Guardrail Agent API",
			Description: "LLM query pipeline with input and output guardrails",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "llm", Description: "Guardrailed LLM queries"}},
		{TagProps: spec.TagProps{Name: "panels", Description: "Form and graph panels"}},
	}
}
