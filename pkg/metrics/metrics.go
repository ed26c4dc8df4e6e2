// Package metrics содержит prometheus-коллекторы сервиса:
// HTTP-запросы, запросы к БД и состояние connection pool.
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	dbOpenConnections  prometheus.Gauge
	dbInUseConnections prometheus.Gauge
	dbIdleConnections  prometheus.Gauge
}

// New регистрирует коллекторы в дефолтном registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		dbOpenConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open database connections.",
			ConstLabels: constLabels,
		}),
		dbInUseConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections currently in use.",
			ConstLabels: constLabels,
		}),
		dbIdleConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections.",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, seconds float64) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// SetDBPoolStats обновляет gauges состояния connection pool
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbOpenConnections.Set(float64(stats.OpenConnections))
	m.dbInUseConnections.Set(float64(stats.InUse))
	m.dbIdleConnections.Set(float64(stats.Idle))
}
