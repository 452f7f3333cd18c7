package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	orderingModel "university_backend/internals/features/ordering/model"
)

var (
	OrderingCommits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ordering_commits_total",
		Help: "Reorder commits by list and outcome.",
	}, []string{"list", "mode", "outcome"})

	OrderingItemWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ordering_item_writes_total",
		Help: "Position writes by outcome.",
	}, []string{"outcome"})

	OrderingCommitSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ordering_commit_seconds",
		Help:    "Duration of reorder commits.",
		Buckets: prometheus.DefBuckets,
	}, []string{"list"})

	PaymentNotifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_notifications_total",
		Help: "Payment gateway notifications by resulting status.",
	}, []string{"status"})

	NotificationsPurged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_purged_total",
		Help: "Notifications removed by the retention cleanup job.",
	})
)

func init() {
	prometheus.MustRegister(OrderingCommits, OrderingItemWrites, OrderingCommitSeconds, PaymentNotifications, NotificationsPurged)
}

// Handler: endpoint /metrics untuk Fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// OrderingObserver mengisi metrics dari Synchronizer.
type OrderingObserver struct{}

func (OrderingObserver) ObserveCommit(list orderingModel.ListRef, bulk bool, written, failed int, elapsedSeconds float64) {
	mode := "per_item"
	if bulk {
		mode = "bulk"
	}
	outcome := "ok"
	if failed > 0 {
		outcome = "failed"
	}
	OrderingCommits.WithLabelValues(list.Key(), mode, outcome).Inc()
	OrderingItemWrites.WithLabelValues("ok").Add(float64(written))
	OrderingItemWrites.WithLabelValues("failed").Add(float64(failed))
	OrderingCommitSeconds.WithLabelValues(list.Key()).Observe(elapsedSeconds)
}
