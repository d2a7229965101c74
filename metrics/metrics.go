package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OperationsTotal counts submitted operations by kind and outcome
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbutils_operations_total",
			Help: "Total number of submitted operations",
		},
		[]string{"kind", "status"},
	)

	// OperationLatency tracks submit-to-completion latency by kind and query type
	OperationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dbutils_operation_latency_seconds",
			Help:    "Operation latency in seconds, measured from submission",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind", "query_type"},
	)

	// BatchRows tracks the number of parameter rows per batch
	BatchRows = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dbutils_batch_rows",
			Help:    "Number of parameter rows per submitted batch",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"query_type"},
	)

	once sync.Once
)

// Init registers all metrics with Prometheus
func Init() {
	once.Do(func() {
		prometheus.MustRegister(OperationsTotal)
		prometheus.MustRegister(OperationLatency)
		prometheus.MustRegister(BatchRows)
	})
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
