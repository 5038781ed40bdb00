package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	IdeasTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ideas_submitted_total",
			Help: "Total ideas submitted",
		},
	)
	VotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idea_votes_total",
			Help: "Total vote calls applied",
		},
		[]string{"direction"}, // up|down
	)
	CommentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "idea_comments_total",
			Help: "Total comments added",
		},
	)
	ModerationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_transitions_total",
			Help: "Total idea status transitions",
		},
		[]string{"status"}, // approved|rejected|implemented
	)
	FeedSourceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_source_failures_total",
			Help: "Aggregation sources substituted with an empty list",
		},
		[]string{"source"},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(IdeasTotal)
	prometheus.MustRegister(VotesTotal)
	prometheus.MustRegister(CommentsTotal)
	prometheus.MustRegister(ModerationTotal)
	prometheus.MustRegister(FeedSourceFailures)
	prometheus.MustRegister(WorkerQueueDepth)
}
