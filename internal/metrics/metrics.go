package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry держит только наши коллекторы, без go_* по умолчанию.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loyalty",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "loyalty",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	ordersProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loyalty",
			Subsystem: "orders",
			Name:      "processed_total",
			Help:      "Orders applied to accounts, split by accrual/redemption.",
		},
		[]string{"mode"},
	)

	pointsEarned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "loyalty",
			Subsystem: "points",
			Name:      "earned_total",
			Help:      "Loyalty points accrued across all accounts.",
		},
	)

	pointsSpent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "loyalty",
			Subsystem: "points",
			Name:      "spent_total",
			Help:      "Loyalty points redeemed across all accounts.",
		},
	)

	giftsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loyalty",
			Subsystem: "gifts",
			Name:      "granted_total",
			Help:      "Gift credits granted, split by source.",
		},
		[]string{"source"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, ordersProcessed, pointsEarned, pointsSpent, giftsGranted)
}

// Handler отдает /metrics по нашему реестру.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveRequest(method, path string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func CountOrder(usePoints bool, earned, spent int) {
	mode := "accrual"
	if usePoints {
		mode = "redemption"
	}
	ordersProcessed.WithLabelValues(mode).Inc()
	pointsEarned.Add(float64(earned))
	pointsSpent.Add(float64(spent))
}

func CountGift(source string) {
	giftsGranted.WithLabelValues(source).Inc()
}
