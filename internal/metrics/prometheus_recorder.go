package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg              *prom.Registry
	imagesFound      *prom.GaugeVec
	collectionsFound prom.Gauge
	updateResults    *prom.CounterVec
	runDuration      prom.Histogram
	lastRun          prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a
// fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		imagesFound: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "folio",
			Name:      "images_found",
			Help:      "Images found by the last run, per target document",
		}, []string{"target"}),
		collectionsFound: prom.NewGauge(prom.GaugeOpts{
			Namespace: "folio",
			Name:      "collections_found",
			Help:      "Collections with at least one image found by the last run",
		}),
		updateResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "folio",
			Name:      "update_results_total",
			Help:      "Document update outcomes by target and status",
		}, []string{"target", "status"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "folio",
			Name:      "run_duration_seconds",
			Help:      "Duration of a full update run",
			Buckets:   prom.DefBuckets,
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: "folio",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
	reg.MustRegister(pr.imagesFound, pr.collectionsFound, pr.updateResults, pr.runDuration, pr.lastRun)
	return pr
}

func (p *PrometheusRecorder) SetImagesFound(target string, n int) {
	p.imagesFound.WithLabelValues(target).Set(float64(n))
}

func (p *PrometheusRecorder) SetCollectionsFound(n int) {
	p.collectionsFound.Set(float64(n))
}

func (p *PrometheusRecorder) IncUpdateResult(target, status string) {
	p.updateResults.WithLabelValues(target, status).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
	p.lastRun.SetToCurrentTime()
}

// Registry exposes the underlying registry.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes all registered metrics to path in the text exposition
// format. The write goes through a temporary file and a rename.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

var _ Recorder = (*PrometheusRecorder)(nil)
var _ Recorder = NoopRecorder{}
