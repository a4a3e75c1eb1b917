// Package metrics defines Prometheus metrics for poemarket.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "poem"

// Item overview metrics.
var (
	OverviewFetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overview_fetches_total",
		Help:      "Total number of item overview fetch attempts.",
	})

	OverviewRecoveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overview_recoveries_total",
		Help:      "Total number of recovery actions run between overview retries.",
	}, []string{"action"})

	OverviewFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overview_failures_total",
		Help:      "Total number of overview fetches that exhausted their retry budget.",
	})
)

// Trade API metrics.
var (
	TradeAPICallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trade_api_calls_total",
		Help:      "Total cumulative trade API calls.",
	})

	TradeDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trade_daily_limit_hits_total",
		Help:      "Number of times the trade API daily quota was hit.",
	})

	TradeDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "trade_daily_usage",
		Help:      "Trade API calls made in the current 24-hour window.",
	})

	BatchFetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_fetches_total",
		Help:      "Total number of listing batch fetches issued.",
	})

	ListingsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_dropped_total",
		Help:      "Listings dropped during validation, by reject reason.",
	}, []string{"reason"})
)
