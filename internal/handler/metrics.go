package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the review backend.
var Metrics = struct {
	SubmissionsTotal     *prometheus.CounterVec
	DuplicatesTotal      prometheus.Counter
	TransitionsTotal     *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	DBPoolActive         prometheus.GaugeFunc
	DBPoolIdle           prometheus.GaugeFunc
	RequestsInFlight     prometheus.Gauge
	CacheHits            prometheus.Counter
	CacheMisses          prometheus.Counter
	TakenByRepairsTotal  prometheus.Counter
	ProvisioningDuration prometheus.Histogram
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reaction_submissions_total",
			Help: "Total video topics submitted, by type.",
		},
		[]string{"type"},
	)

	Metrics.DuplicatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reaction_duplicate_submissions_total",
			Help: "Total submissions rejected as duplicate content.",
		},
	)

	Metrics.TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reaction_host_transitions_total",
			Help: "Total host status transitions applied, by target status.",
		},
		[]string{"status"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reaction_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reaction_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reaction_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reaction_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	Metrics.TakenByRepairsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reaction_takenby_repairs_total",
			Help: "Videos whose taken-by aggregate the audit worker repaired.",
		},
	)

	Metrics.ProvisioningDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reaction_host_provisioning_duration_seconds",
			Help:    "Duration of host registration provisioning runs.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "reaction_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "reaction_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.SubmissionsTotal,
		Metrics.DuplicatesTotal,
		Metrics.TransitionsTotal,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.TakenByRepairsTotal,
		Metrics.ProvisioningDuration,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers.
		endpoint := string(append([]byte(nil), c.Path()...))
		method := string(append([]byte(nil), c.Method()...))

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		Metrics.RequestsInFlight.Dec()
		status := strconv.Itoa(c.Response().StatusCode())
		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).
			Observe(time.Since(start).Seconds())

		return err
	}
}

// MetricsHandler serves GET /metrics by adapting promhttp to fasthttp.
func MetricsHandler() fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}
