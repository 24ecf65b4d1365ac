// Package metrics registers the Prometheus collectors exposed on
// /metrics by the serve command.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Operations counts engine operations by name and outcome.
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockbook_engine_operations_total",
			Help: "Engine operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// LowStockProducts tracks how many products sit at or below the
	// low-stock threshold.
	LowStockProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockbook_low_stock_products",
			Help: "Number of products at or below the low-stock threshold",
		},
	)

	// HTTPRequests counts API requests by method, path and status code.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockbook_http_requests_total",
			Help: "HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(Operations)
	prometheus.MustRegister(LowStockProducts)
	prometheus.MustRegister(HTTPRequests)
}
