package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedSignals counts change-feed signals received, per table.
	FeedSignals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventnight_changefeed_signals_total",
		Help: "Change-feed signals received, by table.",
	}, []string{"table"})

	// TimelineRefreshes counts aggregation passes, by outcome.
	TimelineRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventnight_timeline_refreshes_total",
		Help: "Timeline aggregation runs, by outcome (applied, stale, error).",
	}, []string{"outcome"})

	// PushSends counts push notification batches, by outcome.
	PushSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventnight_push_sends_total",
		Help: "Push notification sends, by outcome.",
	}, []string{"outcome"})
)
