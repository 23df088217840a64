package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all eventhub metrics
const namespace = "eventhub"

// Registry is the Prometheus registry for all metrics
var Registry = prometheus.NewRegistry()

// AppInfo is a gauge that exposes application version information as labels
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version", "backend"},
)

// Query cache metrics
var (
	// QueryCacheLookups counts cache lookups by query key and result (hit or miss)
	QueryCacheLookups = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_lookups_total",
			Help:      "Query cache lookups by key and result",
		},
		[]string{"key", "result"},
	)

	// QueryLoads counts remote loads started by the cache, by key and outcome
	QueryLoads = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_loads_total",
			Help:      "Remote query loads by key and outcome",
		},
		[]string{"key", "outcome"},
	)

	// QueryLoadDuration records remote load latency by key
	QueryLoadDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_load_duration_seconds",
			Help:      "Remote query load duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"key"},
	)

	// QueryInvalidations counts explicit invalidations by key
	QueryInvalidations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_invalidations_total",
			Help:      "Query cache invalidations by key",
		},
		[]string{"key"},
	)

	// Mutations counts mutations by name and outcome
	Mutations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Mutations by name and outcome",
		},
		[]string{"mutation", "outcome"},
	)
)

// ClientsActive is the number of browser clients held by the client registry
var ClientsActive = promauto.With(Registry).NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "clients_active",
		Help:      "Number of live browser clients",
	},
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Init sets the app info gauge.
func Init(version, backend string) {
	AppInfo.WithLabelValues(version, backend).Set(1)
}

// Outcome returns the outcome label for err.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
