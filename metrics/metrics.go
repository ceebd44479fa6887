package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	PrayerRecorded  = "recorded"
	PrayerDuplicate = "duplicate"
)

var (
	// Registry holds the application collectors exposed on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pray_noel",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pray_noel",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	Prayers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pray_noel",
			Name:      "prayers_total",
			Help:      "Prayers offered, by outcome.",
		},
		[]string{"result"},
	)

	Reports = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pray_noel",
			Name:      "reports_total",
			Help:      "Reports filed against prayer requests.",
		},
	)
)

func init() {
	Registry.MustRegister(
		HTTPRequests,
		HTTPDuration,
		Prayers,
		Reports,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registered collectors in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordPrayer(duplicate bool) {
	if duplicate {
		Prayers.WithLabelValues(PrayerDuplicate).Inc()
		return
	}
	Prayers.WithLabelValues(PrayerRecorded).Inc()
}

func RecordReport() {
	Reports.Inc()
}
