package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

// Summary counts results by terminal state.
type Summary struct {
	Total      int                     `json:"total"`
	Errors     int                     `json:"errors"`
	States     map[models.RunState]int `json:"states"`
	Guardrails map[string]int          `json:"guardrails,omitempty"`
}

func NewSummary() *Summary {
	return &Summary{
		States:     map[models.RunState]int{},
		Guardrails: map[string]int{},
	}
}

func (s *Summary) Add(record OutputRecord) {
	s.Total++
	if record.Result == nil {
		s.Errors++
		return
	}
	s.States[record.Result.State]++
	if record.Result.Guardrail != "" {
		s.Guardrails[record.Result.Guardrail]++
	}
}

type Writer struct {
	out     io.Writer
	format  string
	encoder *json.Encoder
	summary *Summary
	logger  *zerolog.Logger
}

func NewWriter(out io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	switch format {
	case FormatJSONL, FormatSummary:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	return &Writer{
		out:     out,
		format:  format,
		encoder: json.NewEncoder(out),
		summary: NewSummary(),
		logger:  logger,
	}, nil
}

func (w *Writer) Write(record OutputRecord) error {
	w.summary.Add(record)
	if w.format != FormatJSONL {
		return nil
	}
	if err := w.encoder.Encode(record); err != nil {
		w.logger.Error().Err(err).Int("line", record.LineNumber).Msg("Failed to encode result")
		return err
	}
	return nil
}

func (w *Writer) Summary() *Summary {
	return w.summary
}

// Close flushes the summary when the writer is in summary mode.
func (w *Writer) Close() error {
	if w.format != FormatSummary {
		return nil
	}
	return WriteSummary(w.out, w.summary)
}

// WriteSummary renders s as an indented JSON document.
func WriteSummary(out io.Writer, s *Summary) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}
