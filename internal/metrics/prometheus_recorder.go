package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	stepDuration  *prom.HistogramVec
	stepOutcomes  *prom.CounterVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	exportResults *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stepDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docxbuilder",
			Name:      "step_duration_seconds",
			Help:      "Duration of individual manifest steps by tool",
			Buckets:   prom.DefBuckets,
		}, []string{"tool"})
		pr.stepOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docxbuilder",
			Name:      "step_outcomes_total",
			Help:      "Manifest step outcomes by tool",
		}, []string{"tool", "outcome"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docxbuilder",
			Name:      "build_duration_seconds",
			Help:      "Total manifest build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docxbuilder",
			Name:      "build_outcomes_total",
			Help:      "Manifest builds by final status",
		}, []string{"outcome"})
		pr.exportResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docxbuilder",
			Name:      "export_results_total",
			Help:      "Pandoc export results by format",
		}, []string{"format", "result"})
		reg.MustRegister(pr.stepDuration, pr.stepOutcomes, pr.buildDuration, pr.buildOutcome, pr.exportResults)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStepDuration(tool string, d time.Duration) {
	if p == nil || p.stepDuration == nil {
		return
	}
	p.stepDuration.WithLabelValues(tool).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStepOutcome(tool string, outcome OutcomeLabel) {
	if p == nil || p.stepOutcomes == nil {
		return
	}
	p.stepOutcomes.WithLabelValues(tool, string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncExportResult(format string, success bool) {
	if p == nil || p.exportResults == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.exportResults.WithLabelValues(format, res).Inc()
}
