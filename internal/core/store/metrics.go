package store

import "github.com/prometheus/client_golang/prometheus"

var (
	opsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "store_operations_total", Help: "Count of document store operations"},
		[]string{"collection", "op", "result"},
	)
	malformedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "store_malformed_reads_total", Help: "Collections or records dropped while decoding"},
		[]string{"collection", "kind"},
	)
)

func init() { prometheus.MustRegister(opsTotal, malformedTotal) }

func observe(collection, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	opsTotal.WithLabelValues(collection, op, result).Inc()
}
