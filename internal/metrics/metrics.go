package metrics

import (
	"net/http"
	"time"

	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "guardrail"

// Recorder exports pipeline events as Prometheus metrics. It satisfies
// executor.Observer.
type Recorder struct {
	registry *prometheus.Registry

	runs       *prometheus.CounterVec
	violations *prometheus.CounterVec
	modelCalls *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total number of pipeline runs by terminal state.",
		},
		[]string{"state"},
	)
	violations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "violations_total",
			Help:      "Guardrail violations by position and guardrail name.",
		},
		[]string{"position", "guardrail"},
	)
	modelCalls := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_call_seconds",
			Help:      "Duration of language model calls in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"outcome"},
	)

	registry.MustRegister(runs, violations, modelCalls)

	return &Recorder{
		registry:   registry,
		runs:       runs,
		violations: violations,
		modelCalls: modelCalls,
	}
}

func (r *Recorder) RunFinished(state models.RunState, duration time.Duration) {
	r.runs.WithLabelValues(string(state)).Inc()
}

func (r *Recorder) Violation(position models.Position, guardrail string) {
	r.violations.WithLabelValues(string(position), guardrail).Inc()
}

func (r *Recorder) ModelCall(duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.modelCalls.WithLabelValues(outcome).Observe(duration.Seconds())
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
