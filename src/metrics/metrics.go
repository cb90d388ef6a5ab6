// Package metrics exposes dashboard render and interaction counters on a private
// Prometheus registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all metrics for one dashboard session.
type Collector struct {
	registry *prometheus.Registry

	RenderPasses     *prometheus.CounterVec
	RenderDuration   *prometheus.HistogramVec
	MarksEntered     *prometheus.CounterVec
	MarksExited      *prometheus.CounterVec
	SelectionChanges prometheus.Counter
	DatasetLoads     *prometheus.CounterVec
	DatasetRecords   prometheus.Gauge
}

// NewCollector registers every metric under namespace on a fresh registry, so
// tests can build as many collectors as they like.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		RenderPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_passes_total",
			Help:      "Render passes executed per chart.",
		}, []string{"chart"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent reconciling marks per render pass.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"chart"}),
		MarksEntered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marks_entered_total",
			Help:      "Marks created for new record ids.",
		}, []string{"chart"}),
		MarksExited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marks_exited_total",
			Help:      "Marks removed for vanished record ids.",
		}, []string{"chart"}),
		SelectionChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_changes_total",
			Help:      "Applied changes of the shared selection.",
		}),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by outcome.",
		}, []string{"status"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Records in the current dataset snapshot.",
		}),
	}
	c.registry.MustRegister(
		c.RenderPasses,
		c.RenderDuration,
		c.MarksEntered,
		c.MarksExited,
		c.SelectionChanges,
		c.DatasetLoads,
		c.DatasetRecords,
	)
	return c
}

// Registry returns the private registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveRender records one pass for chart.
func (c *Collector) ObserveRender(chart string, entered, exited int, took time.Duration) {
	if c == nil {
		return
	}
	c.RenderPasses.WithLabelValues(chart).Inc()
	c.RenderDuration.WithLabelValues(chart).Observe(took.Seconds())
	c.MarksEntered.WithLabelValues(chart).Add(float64(entered))
	c.MarksExited.WithLabelValues(chart).Add(float64(exited))
}

// ObserveSelection counts one applied selection change.
func (c *Collector) ObserveSelection() {
	if c == nil {
		return
	}
	c.SelectionChanges.Inc()
}

// ObserveLoad records a dataset load outcome ("ready" or "error").
func (c *Collector) ObserveLoad(status string, records int) {
	if c == nil {
		return
	}
	c.DatasetLoads.WithLabelValues(status).Inc()
	if status == "ready" {
		c.DatasetRecords.Set(float64(records))
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
