package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestCounter counts HTTP requests by route template and status
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockledger_requests_total",
			Help: "Total number of requests to the inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestLatency observes HTTP request duration
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockledger_request_duration_seconds",
			Help:    "Duration of inventory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// LedgerOperations counts committed mutations by kind
	LedgerOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockledger_ledger_operations_total",
			Help: "Committed inventory and ledger mutations",
		},
		[]string{"operation"},
	)

	// ImportRows counts spreadsheet rows by import kind and outcome
	ImportRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockledger_import_rows_total",
			Help: "Spreadsheet rows seen by the import pipelines",
		},
		[]string{"kind", "outcome"},
	)

	// StoreLatency observes persistence calls
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockledger_store_operation_duration_seconds",
			Help:    "Duration of store load/save calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver", "operation", "status"},
	)

	// InventoryItems is the number of items in the workspace
	InventoryItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockledger_inventory_items",
			Help: "Number of inventory items currently held",
		},
	)

	// Transactions is the number of ledger entries in the workspace
	Transactions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockledger_transactions",
			Help: "Number of ledger transactions currently held",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCounter,
		RequestLatency,
		LedgerOperations,
		ImportRows,
		StoreLatency,
		InventoryItems,
		Transactions,
	)
}

// ObserveStoreOperation records how long a store call took
func ObserveStoreOperation(driver, operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreLatency.WithLabelValues(driver, operation, status).Observe(time.Since(start).Seconds())
}

// SetSizes publishes the workspace collection sizes
func SetSizes(items, transactions int) {
	InventoryItems.Set(float64(items))
	Transactions.Set(float64(transactions))
}
