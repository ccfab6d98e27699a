package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "promo_service",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promo_service",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promo_service",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	compositions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promo_service",
			Subsystem: "compose",
			Name:      "compositions_total",
			Help:      "Total number of compositions built, by surface.",
		},
		[]string{"surface"},
	)

	exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promo_service",
			Subsystem: "export",
			Name:      "renders_total",
			Help:      "Total number of PNG export attempts.",
		},
		[]string{"status"},
	)

	exportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promo_service",
			Subsystem: "export",
			Name:      "render_duration_seconds",
			Help:      "Duration of PNG export renders.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"status"},
	)

	mediaCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promo_service",
			Subsystem: "media",
			Name:      "cache_lookups_total",
			Help:      "Media URL cache lookups, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		compositions,
		exports,
		exportDuration,
		mediaCache,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

// RecordComposition counts a composition build for a surface such as
// "editor", "thumbnail" or "landing".
func RecordComposition(surface string) {
	if surface == "" {
		surface = "unknown"
	}
	compositions.WithLabelValues(surface).Inc()
}

// RecordExport records a PNG export attempt.
func RecordExport(duration time.Duration, success bool) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	status := "error"
	if success {
		status = "ok"
	}
	exports.WithLabelValues(status).Inc()
	exportDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// MediaStats adapts the media cache counters to the resolver's Stats
// interface.
type MediaStats struct{}

// CacheHit counts a cache hit.
func (MediaStats) CacheHit() { mediaCache.WithLabelValues("hit").Inc() }

// CacheMiss counts a cache miss.
func (MediaStats) CacheMiss() { mediaCache.WithLabelValues("miss").Inc() }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// canonicalPath collapses request paths to a bounded label set so metric
// cardinality stays flat no matter how many slugs and ids exist.
func canonicalPath(raw string) string {
	if raw == "" || raw == "/" {
		return "/"
	}
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")

	switch parts[0] {
	case "promotions":
		if len(parts) == 1 {
			return "/promotions"
		}
		switch parts[1] {
		case "release":
			if len(parts) >= 3 && parts[len(parts)-1] == "export.png" {
				return "/promotions/release/:id/export.png"
			}
			return "/promotions/release/:id"
		case "public":
			return "/promotions/public/:slug"
		}
		return "/promotions/:id"
	case "releases":
		if len(parts) == 1 {
			return "/releases"
		}
		return "/releases/:id"
	case "p":
		return "/p/:slug"
	default:
		return "/" + parts[0]
	}
}
