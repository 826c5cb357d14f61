// Package metrics exports the outcome of a render batch as a Prometheus textfile, for pickup by
// a node_exporter textfile collector after a solver run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/667r/INF295-Inteligencia-Artificial/src/convergence"
)

// Recorder holds the batch metrics on a private registry.
type Recorder struct {
	registry    *prometheus.Registry
	instances   *prometheus.GaugeVec
	bestProfit  *prometheus.GaugeVec
	lastImprove *prometheus.GaugeVec
	duration    prometheus.Gauge
}

// NewRecorder registers the convplot metrics on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		instances: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "convplot_instances",
			Help: "Number of configured instances per outcome of the last render batch",
		}, []string{"status"}),
		bestProfit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "convplot_best_profit",
			Help: "Best profit recorded in the convergence table of an instance",
		}, []string{"instance"}),
		lastImprove: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "convplot_last_improvement_iteration",
			Help: "Iteration at which the best profit of an instance was last raised",
		}, []string{"instance"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "convplot_run_duration_seconds",
			Help: "Wall time of the last render batch",
		}),
	}
	r.registry.MustRegister(r.instances, r.bestProfit, r.lastImprove, r.duration)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Observe replaces the recorded values with those of rep.
func (r *Recorder) Observe(rep convergence.Report) {
	r.bestProfit.Reset()
	r.lastImprove.Reset()
	for _, s := range []convergence.Status{convergence.StatusRendered, convergence.StatusSkipped, convergence.StatusFailed} {
		r.instances.WithLabelValues(s.String()).Set(float64(rep.Count(s)))
	}
	for _, o := range rep.Outcomes {
		if o.Status != convergence.StatusRendered {
			continue
		}
		r.bestProfit.WithLabelValues(o.Instance).Set(o.Summary.BestProfit)
		r.lastImprove.WithLabelValues(o.Instance).Set(o.Summary.LastImprovement)
	}
	r.duration.Set(rep.Duration.Seconds())
}

// WriteTextfile writes the registry in the text exposition format. The file is replaced
// atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
