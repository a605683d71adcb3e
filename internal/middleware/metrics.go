package middleware

import (
	"strconv"
	"time"

	"rewear-service/prometheus"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware adds prometheus metrics to track HTTP requests
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Start timer for request duration
		start := time.Now()

		prometheus.APIRequestCounter.WithLabelValues(c.Request().Method, c.Path()).Inc()

		// Process request
		err := next(c)

		// Calculate request duration
		duration := time.Since(start).Seconds()

		// Get request details
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		// Record metrics
		prometheus.RequestDurationHistogram.WithLabelValues(method, path, status).Observe(duration)
		if c.Response().Status >= 400 {
			prometheus.APIErrorCounter.WithLabelValues(method, path, status).Inc()
		}

		return err
	}
}
