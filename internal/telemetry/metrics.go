// Package telemetry exports profiling reports as Prometheus metrics.
package telemetry

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"augkit/internal/logging"
	"augkit/profiler"
)

const namespace = "augkit"

var (
	callsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "profile", "calls"),
		"Tracked calls recorded in the last profiling session.",
		[]string{"class", "method"}, nil)
	secondsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "profile", "seconds_total"),
		"Total latency of tracked calls in the last profiling session.",
		[]string{"class", "method"}, nil)
	minDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "profile", "min_seconds"),
		"Fastest tracked call in the last profiling session.",
		[]string{"class", "method"}, nil)
	maxDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "profile", "max_seconds"),
		"Slowest tracked call in the last profiling session.",
		[]string{"class", "method"}, nil)
	sessionDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "profile", "session_seconds"),
		"Wall time of the last profiling session.",
		nil, nil)
)

// Collector serves the most recently observed report.
type Collector struct {
	mu       sync.RWMutex
	summary  *profiler.Summary
	sessions prometheus.Counter
}

func NewCollector() *Collector {
	return &Collector{
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "profile",
			Name:      "sessions_total",
			Help:      "Profiling sessions observed.",
		}),
	}
}

// Observe replaces the exported report.
func (c *Collector) Observe(rep *profiler.Report) {
	sum := rep.Summary()
	c.mu.Lock()
	c.summary = &sum
	c.mu.Unlock()
	c.sessions.Inc()
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- callsDesc
	ch <- secondsDesc
	ch <- minDesc
	ch <- maxDesc
	ch <- sessionDesc
	c.sessions.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.sessions.Collect(ch)
	c.mu.RLock()
	sum := c.summary
	c.mu.RUnlock()
	if sum == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(sessionDesc, prometheus.GaugeValue, sum.Total.Seconds())
	for _, g := range sum.Groups {
		ch <- prometheus.MustNewConstMetric(callsDesc, prometheus.GaugeValue, float64(g.Count), g.Class, g.Method)
		ch <- prometheus.MustNewConstMetric(secondsDesc, prometheus.GaugeValue, g.Total.Seconds(), g.Class, g.Method)
		ch <- prometheus.MustNewConstMetric(minDesc, prometheus.GaugeValue, g.Min.Seconds(), g.Class, g.Method)
		ch <- prometheus.MustNewConstMetric(maxDesc, prometheus.GaugeValue, g.Max.Seconds(), g.Class, g.Method)
	}
}

// Expose serves g on addr under /metrics until Shutdown is called on the
// returned server.
func Expose(addr string, g prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.L().Error("telemetry: metrics server stopped", "addr", addr, "err", err)
		}
	}()
	return srv
}

// Shutdown stops srv, waiting at most five seconds for open requests.
func Shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
