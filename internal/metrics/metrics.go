// Package metrics exposes Prometheus counters for the dashboard: guard
// decisions, token validations, logins, device requests and bundle uploads.
package metrics

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	guardDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "molinar_guard_decisions_total",
			Help: "Route guard outcomes by guard and status.",
		},
		[]string{"guard", "status"},
	)
	validations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "molinar_token_validations_total",
			Help: "Token validations by result (valid, invalid, absent, discarded).",
		},
		[]string{"result"},
	)
	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "molinar_logins_total",
			Help: "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)
	deviceRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "molinar_device_requests_total",
			Help: "Requests sent to the device API by operation and status class.",
		},
		[]string{"op", "status"},
	)
	deviceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "molinar_device_request_duration_seconds",
			Help:    "Device API round-trip time in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	uploadedFiles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "molinar_bundle_files_total",
			Help: "Bundle files pushed to the device by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(guardDecisions, validations, logins, deviceRequests, deviceDuration, uploadedFiles)
}

func IncGuardDecision(guard, status string) { guardDecisions.WithLabelValues(guard, status).Inc() }
func IncValidation(result string)           { validations.WithLabelValues(result).Inc() }
func IncLogin(outcome string)               { logins.WithLabelValues(outcome).Inc() }
func IncUploadedFile(result string)         { uploadedFiles.WithLabelValues(result).Inc() }

// ObserveDeviceRequest records one device API call. status is the HTTP
// status class ("2xx", "4xx", ...) or "error" when no response arrived.
func ObserveDeviceRequest(op, status string, start time.Time) {
	deviceRequests.WithLabelValues(op, status).Inc()
	deviceDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
