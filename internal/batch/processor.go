package batch

import (
	"context"
	"sync"

	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
	"github.com/rs/zerolog"
)

// Pipeline runs one guardrailed LLM query.
type Pipeline interface {
	Run(ctx context.Context, req models.QueryRequest) models.PipelineResult
}

// Validator rejects requests naming unknown guardrails before they run.
type Validator interface {
	Validate(names []string) error
}

type OutputRecord struct {
	LineNumber int                    `json:"line"`
	Result     *models.PipelineResult `json:"result,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

type Processor struct {
	pipeline  Pipeline
	validator Validator
	workers   int
	logger    *zerolog.Logger
}

func NewProcessor(pipeline Pipeline, validator Validator, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		pipeline:  pipeline,
		validator: validator,
		workers:   workers,
		logger:    logger,
	}
}

// Process fans records out to the worker pool. Output order follows
// completion, not input; use LineNumber to correlate.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan OutputRecord {
	jobs := make(chan InputRecord)
	results := make(chan OutputRecord)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				out := p.processOne(ctx, record)
				select {
				case results <- out:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				p.logger.Warn().Int("line", record.LineNumber).Msg("Batch cancelled before all records were queued")
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) processOne(ctx context.Context, record InputRecord) OutputRecord {
	out := OutputRecord{LineNumber: record.LineNumber}
	if record.Error != nil {
		out.Error = record.Error.Error()
		return out
	}

	if p.validator != nil {
		for _, names := range [][]string{record.Request.InputGuardrails, record.Request.OutputGuardrails} {
			if err := p.validator.Validate(names); err != nil {
				out.Error = err.Error()
				return out
			}
		}
	}

	result := p.pipeline.Run(ctx, record.Request)
	out.Result = &result
	return out
}
