// api/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsTracked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchkit_events_tracked_total",
		Help: "Analytics events recorded, labelled by event name.",
	}, []string{"event"})

	AffiliateClicksTracked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "launchkit_affiliate_clicks_total",
		Help: "Affiliate link clicks recorded.",
	})

	StoreWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "launchkit_store_write_failures_total",
		Help: "Failed appends against the key-value store.",
	})
)
