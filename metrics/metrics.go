// Package metrics holds the Prometheus collectors exported by rivalwatch.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rivalwatch"

var (
	MonitorPasses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "monitor_passes_total",
		Help:      "Completed monitoring passes.",
	})

	MonitorPassDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "monitor_pass_duration_seconds",
		Help:      "Duration of a monitoring pass.",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	CompetitorChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "competitor_checks_total",
		Help:      "Competitor gate outcomes, by outcome.",
	}, []string{"outcome"})

	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_failures_total",
		Help:      "Competitor website fetches that failed.",
	})

	UpdatesIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updates_ingested_total",
		Help:      "New competitor updates persisted, by category.",
	}, []string{"category"})

	NotificationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Notifications created for high-impact updates.",
	})

	AlertFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alert_failures_total",
		Help:      "Failed deliveries on optional alert channels, by channel.",
	}, []string{"channel"})

	TrendsTouched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trends_touched_total",
		Help:      "Trends created or refreshed by detection runs, by trend type.",
	}, []string{"trend_type"})
)
