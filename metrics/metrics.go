package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodcart",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Total number of store operations by result.",
	}, []string{"op", "result"})

	LatencyMS = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "foodcart",
		Subsystem: "store",
		Name:      "operation_duration_ms",
		Help:      "Store operation latency in milliseconds.",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(Operations, LatencyMS)
}

// Observe records one finished operation. Use it as
//
//	defer metrics.Observe("create_order", time.Now(), &err)
func Observe(op string, start time.Time, errp *error) {
	result := ResultOK
	if errp != nil && *errp != nil {
		result = ResultError
	}
	Operations.WithLabelValues(op, result).Inc()
	LatencyMS.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
