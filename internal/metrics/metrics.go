package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "georef",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "georef",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	indexBatchSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "georef",
			Name:      "index_batch_size",
			Help:      "Number of queries per batched index call",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"entity"},
	)

	indexBatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "georef",
			Name:      "index_batch_duration_seconds",
			Help:      "Duration of batched index calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"entity", "result"},
	)

	indexCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "georef",
			Name:      "index_cache_lookups_total",
			Help:      "Index response cache lookups by outcome",
		},
		[]string{"entity", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(indexBatchSize)
	prometheus.MustRegister(indexBatchDuration)
	prometheus.MustRegister(indexCacheLookups)
}

// Middleware records HTTP request duration and count.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		path := normalizePath(c.Route().Path)
		method := c.Method()
		code := strconv.Itoa(status)

		httpRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(method, path, code).Inc()
		return err
	}
}

// ObserveIndexBatch records one batched index call.
func ObserveIndexBatch(entity string, size int, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	indexBatchSize.WithLabelValues(entity).Observe(float64(size))
	indexBatchDuration.WithLabelValues(entity, result).Observe(elapsed.Seconds())
}

// ObserveCache records cache hits and misses of one batch.
func ObserveCache(entity string, hits, misses int) {
	indexCacheLookups.WithLabelValues(entity, "hit").Add(float64(hits))
	indexCacheLookups.WithLabelValues(entity, "miss").Add(float64(misses))
}

// normalizePath normalizes paths to prevent high cardinality in metrics labels.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}
