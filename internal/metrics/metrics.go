// Package metrics exposes world engine counters and timings to Prometheus.
package metrics

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private Prometheus registry. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry *prometheus.Registry

	generations  prometheus.Counter
	genSeconds   prometheus.Histogram
	meshBuilds   prometheus.Counter
	meshSeconds  prometheus.Histogram
	meshQuads    prometheus.Gauge
	edits        *prometheus.CounterVec
	solidBlocks  prometheus.Gauge
	frameSeconds prometheus.Histogram
}

// New creates a recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockworld",
			Name:      "generations_total",
			Help:      "Worlds generated.",
		}),
		genSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blockworld",
			Name:      "generation_seconds",
			Help:      "Time spent generating terrain, caves and trees.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
		meshBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockworld",
			Name:      "mesh_builds_total",
			Help:      "Full mesh rebuilds.",
		}),
		meshSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blockworld",
			Name:      "mesh_build_seconds",
			Help:      "Time spent extracting visible faces.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		meshQuads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockworld",
			Name:      "mesh_quads",
			Help:      "Quads in the current mesh.",
		}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockworld",
			Name:      "block_edits_total",
			Help:      "Block edits by kind and outcome.",
		}, []string{"kind", "result"}),
		solidBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockworld",
			Name:      "solid_blocks",
			Help:      "Non-air cells after generation.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blockworld",
			Name:      "frame_seconds",
			Help:      "Client frame duration.",
			Buckets:   prometheus.ExponentialBuckets(0.002, 2, 8),
		}),
	}
	r.registry.MustRegister(
		r.generations, r.genSeconds,
		r.meshBuilds, r.meshSeconds, r.meshQuads,
		r.edits, r.solidBlocks, r.frameSeconds,
	)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) ObserveGeneration(d time.Duration, solid int) {
	if r == nil {
		return
	}
	r.generations.Inc()
	r.genSeconds.Observe(d.Seconds())
	r.solidBlocks.Set(float64(solid))
}

func (r *Recorder) ObserveMeshBuild(d time.Duration, quads int) {
	if r == nil {
		return
	}
	r.meshBuilds.Inc()
	r.meshSeconds.Observe(d.Seconds())
	r.meshQuads.Set(float64(quads))
}

// ObserveEdit counts a place or remove attempt.
func (r *Recorder) ObserveEdit(kind string, ok bool) {
	if r == nil {
		return
	}
	result := "rejected"
	if ok {
		result = "applied"
	}
	r.edits.WithLabelValues(kind, result).Inc()
}

func (r *Recorder) ObserveFrame(d time.Duration) {
	if r == nil {
		return
	}
	r.frameSeconds.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve starts the /metrics listener on addr in its own goroutine and returns
// the server so the caller can shut it down.
func (r *Recorder) Serve(addr string, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("Prometheus /metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Prometheus HTTP server failed", "err", err)
		}
	}()
	return srv
}
