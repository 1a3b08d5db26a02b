package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TicksProcessed    prometheus.Counter
	TickDuration      prometheus.Histogram
	ProviderRequests  *prometheus.CounterVec
	MilestonesFired   *prometheus.CounterVec
	NotificationsSent prometheus.Counter
	EventsPublished   prometheus.Counter
	PlansRebuilt      prometheus.Counter
	ErrorsCount       *prometheus.CounterVec
	CacheRequests     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the default registry
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWith creates new prometheus metrics on the given registry
func NewMetricsWith(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TicksProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_processed_total",
			Help:      "The total number of monitor ticks processed",
		}),
		TickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time taken to process one monitor tick",
			Buckets:   prometheus.DefBuckets,
		}),
		ProviderRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "The total number of flight provider lookups",
		}, []string{"result"}),
		MilestonesFired: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "milestones_fired_total",
			Help:      "The total number of milestone notifications fired",
		}, []string{"tag"}),
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of messages handed to the delivery channel",
		}),
		EventsPublished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "The total number of update events published to the bus",
		}),
		PlansRebuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_rebuilt_total",
			Help:      "The total number of polling plans replaced after a departure shift",
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
		CacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "The total number of provider cache operations",
		}, []string{"operation", "result"}),
	}
}
