package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the sales backend.
type Metrics struct {
	SalesCreated         prometheus.Counter
	SalesCompleted       prometheus.Counter
	SalesCanceled        prometheus.Counter
	CacheHits            prometheus.Counter
	CacheMisses          prometheus.Counter
	CacheRefreshFailures prometheus.Counter
	WebhookFailures      prometheus.Counter
}

// New creates and registers all counters against reg. Tests pass a private
// registry so parallel packages don't collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SalesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "vehicle_sales_created_total",
			Help: "Total number of sales accepted in pending state",
		}),
		SalesCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "vehicle_sales_completed_total",
			Help: "Total number of sales completed after payment approval",
		}),
		SalesCanceled: factory.NewCounter(prometheus.CounterOpts{
			Name: "vehicle_sales_canceled_total",
			Help: "Total number of sales canceled after payment rejection",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "vehicle_cache_hits_total",
			Help: "Availability listings served from the cache within TTL",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "vehicle_cache_misses_total",
			Help: "Availability listings that triggered an upstream refresh",
		}),
		CacheRefreshFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "vehicle_cache_refresh_failures_total",
			Help: "Upstream fetch failures during cache refresh",
		}),
		WebhookFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "vehicle_webhook_failures_total",
			Help: "Status notifications the inventory service did not accept",
		}),
	}
}
