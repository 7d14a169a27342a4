package router

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/esp046-cyber/budget-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// URLMiddleware makes the configured base URL available to handlers so
// they can construct absolute links.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url.String())
		c.Next()
	}
}

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests served, partitioned by status code, method and route.",
		},
		[]string{"code", "method", "route"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code", "method", "route"},
	)
)

// registerPrometheusMetrics registers the request collectors with the
// default registry.
func registerPrometheusMetrics() error {
	for _, collector := range []prometheus.Collector{requestCount, requestDuration} {
		if err := prometheus.Register(collector); err != nil {
			return fmt.Errorf("could not register collector with Prometheus: %w", err)
		}
	}

	return nil
}

// unregisterPrometheusMetrics removes the request collectors again so
// that the engine can be set up repeatedly, e.g. in tests.
func unregisterPrometheusMetrics() {
	prometheus.Unregister(requestCount)
	prometheus.Unregister(requestDuration)
}

// MetricsMiddleware records the request count and duration collectors.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Record the route pattern, not the raw path, to keep the label
		// cardinality bounded
		route := c.Request.URL.Path
		for _, p := range c.Params {
			route = strings.Replace(route, p.Value, ":"+p.Key, 1)
		}

		code := strconv.Itoa(c.Writer.Status())
		requestCount.WithLabelValues(code, c.Request.Method, route).Inc()
		requestDuration.WithLabelValues(code, c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
