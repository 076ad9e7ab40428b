// Package metrics wraps github.com/prometheus/client_golang/prometheus
// instrumentation for the optimization core (spec §4.10 [NEW]): an
// iteration counter, an evaluation-duration histogram, a current
// best-fitness gauge, and a stall-counter gauge.
package metrics

import (
	"time"

	"github.com/pa-m/geneva/population"
	"github.com/prometheus/client_golang/prometheus"
)

var _ population.MetricsRecorder = (*Recorder)(nil)

// Recorder registers its collectors against a caller-supplied
// *prometheus.Registry rather than the package-global default registry
// (unlike the teacher pack's promauto-based dashboards), so multiple
// concurrent optimization runs in one process never collide on metric
// names. A nil *Recorder is a legal no-op (population.Iterate only calls
// Observe through the interface, and a nil receiver here never panics).
type Recorder struct {
	iterations   prometheus.Counter
	evalDuration prometheus.Histogram
	bestFitness  prometheus.Gauge
	stallCount   prometheus.Gauge
}

// New registers a Recorder's collectors on reg. labels (e.g. a run name)
// are attached as a ConstLabels set so one registry can host metrics for
// more than one named run.
func New(reg *prometheus.Registry, labels prometheus.Labels) *Recorder {
	r := &Recorder{
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "geneva_iterations_total",
			Help:        "Number of completed optimization iterations.",
			ConstLabels: labels,
		}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "geneva_evaluation_duration_seconds",
			Help:        "Wall-clock time spent in the Evaluator per iteration.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "geneva_best_fitness",
			Help:        "Best raw fitness known so far.",
			ConstLabels: labels,
		}),
		stallCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "geneva_stall_iterations",
			Help:        "Consecutive iterations without improvement.",
			ConstLabels: labels,
		}),
	}
	reg.MustRegister(r.iterations, r.evalDuration, r.bestFitness, r.stallCount)
	return r
}

// Observe implements population.MetricsRecorder.
func (r *Recorder) Observe(p *population.Population, evalDuration time.Duration) {
	if r == nil {
		return
	}
	r.iterations.Inc()
	r.evalDuration.Observe(evalDuration.Seconds())
	r.stallCount.Set(float64(p.StallCounter()))
	if best, ok := p.BestPastFitness(); ok {
		r.bestFitness.Set(best)
	}
}
