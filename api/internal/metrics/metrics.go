// Package metrics declares the Prometheus collectors of the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets covers handler latencies from a millisecond to ten seconds.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

var LookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "whocall_lookups_total",
		Help: "Total number of phone number lookups by outcome",
	},
	[]string{"outcome"},
)

var CommandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "whocall_commands_total",
		Help: "Total number of bot commands received",
	},
	[]string{"command"},
)

var HandlerErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "whocall_handler_errors_total",
		Help: "Total number of failures caught while handling updates",
	},
	[]string{"stage"},
)

var UpdateDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "whocall_update_duration_seconds",
		Help:    "Time spent handling a single Telegram update",
		Buckets: DefaultBuckets,
	},
)

var PollingErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "whocall_polling_errors_total",
		Help: "Total number of failed getUpdates calls",
	},
)
