// Package metrics provides Prometheus metrics for refreshes, notification
// delivery and exports.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements prometheus.Collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	RefreshTotal         *prometheus.CounterVec // by result: success, error
	RefreshDuration      prometheus.Histogram
	PredictedOrders      prometheus.Gauge
	HighRiskRestaurants  prometheus.Gauge
	ValidatedRestaurants prometheus.Gauge

	DeploymentsTotal    prometheus.Counter
	DeliveryStatusTotal *prometheus.CounterVec // by status

	ExportFilesTotal *prometheus.CounterVec // by dataset, format
	ExportBytesTotal prometheus.Counter

	registry *prometheus.Registry
}

// New registers the metrics on registry, or on a fresh registry when nil.
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register foodpredict metrics: %w", err)
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.RefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodpredict_refresh_total",
			Help: "Prediction refreshes by result",
		},
		[]string{"result"},
	)
	m.RefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodpredict_refresh_duration_seconds",
			Help:    "Wall time spent in a prediction refresh, including simulated latency",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10},
		},
	)
	m.PredictedOrders = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "foodpredict_predicted_orders",
		Help: "Total predicted orders across all restaurants for the forecast day",
	})
	m.HighRiskRestaurants = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "foodpredict_high_risk_restaurants",
		Help: "Restaurants classified as high cancellation risk",
	})
	m.ValidatedRestaurants = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "foodpredict_validated_restaurants",
		Help: "Restaurants currently cleared to receive notifications",
	})
	m.DeploymentsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "foodpredict_notification_deployments_total",
		Help: "Notification batches started",
	})
	m.DeliveryStatusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodpredict_notification_status_total",
			Help: "Simulated notification status transitions by resulting status",
		},
		[]string{"status"}, // sent, delivered, failed
	)
	m.ExportFilesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodpredict_export_files_total",
			Help: "Export files written by dataset and format",
		},
		[]string{"dataset", "format"},
	)
	m.ExportBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "foodpredict_export_bytes_total",
		Help: "Bytes written by exports",
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordRefresh(err error, duration time.Duration, predictedOrders, highRisk int) {
	if m == nil {
		return
	}
	m.RefreshDuration.Observe(duration.Seconds())
	if err != nil {
		m.RefreshTotal.WithLabelValues("error").Inc()
		return
	}
	m.RefreshTotal.WithLabelValues("success").Inc()
	m.PredictedOrders.Set(float64(predictedOrders))
	m.HighRiskRestaurants.Set(float64(highRisk))
}

func (m *Metrics) SetValidated(n int) {
	if m == nil {
		return
	}
	m.ValidatedRestaurants.Set(float64(n))
}

func (m *Metrics) RecordDeployment() {
	if m == nil {
		return
	}
	m.DeploymentsTotal.Inc()
}

func (m *Metrics) RecordDeliveryStatus(status string) {
	if m == nil {
		return
	}
	m.DeliveryStatusTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordExport(dataset, format string, bytes int) {
	if m == nil {
		return
	}
	m.ExportFilesTotal.WithLabelValues(dataset, format).Inc()
	m.ExportBytesTotal.Add(float64(bytes))
}

// Collect implements the prometheus.Collector interface.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.RefreshTotal.Collect(ch)
	m.RefreshDuration.Collect(ch)
	m.PredictedOrders.Collect(ch)
	m.HighRiskRestaurants.Collect(ch)
	m.ValidatedRestaurants.Collect(ch)
	m.DeploymentsTotal.Collect(ch)
	m.DeliveryStatusTotal.Collect(ch)
	m.ExportFilesTotal.Collect(ch)
	m.ExportBytesTotal.Collect(ch)
}

// Describe implements the prometheus.Collector interface.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.RefreshTotal.Describe(ch)
	m.RefreshDuration.Describe(ch)
	m.PredictedOrders.Describe(ch)
	m.HighRiskRestaurants.Describe(ch)
	m.ValidatedRestaurants.Describe(ch)
	m.DeploymentsTotal.Describe(ch)
	m.DeliveryStatusTotal.Describe(ch)
	m.ExportFilesTotal.Describe(ch)
	m.ExportBytesTotal.Describe(ch)
}
