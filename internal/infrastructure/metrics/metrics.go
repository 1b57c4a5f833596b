package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Movement metrics
	MovementsCommitted *prometheus.CounterVec
	MovementsReversed  prometheus.Counter
	MovementDuration   prometheus.Histogram
	MovementAmount     prometheus.Histogram
	MovementErrors     *prometheus.CounterVec
	CommitConflicts    prometheus.Counter
	CommitRetries      prometheus.Histogram

	// Account metrics
	AccountsOpened   prometheus.Counter
	AccountsArchived prometheus.Counter
	AccountBalance   *prometheus.GaugeVec

	// Ledger metrics
	ConsistencyChecks  prometheus.Counter
	InconsistentChecks prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Movement metrics
		MovementsCommitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_movements_committed_total",
				Help: "Total number of movements committed, by kind",
			},
			[]string{"kind"},
		),
		MovementsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_movements_reversed_total",
			Help: "Total number of movements reversed",
		}),
		MovementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finbook_movement_duration_seconds",
			Help:    "Duration of movement operations",
			Buckets: prometheus.DefBuckets,
		}),
		MovementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finbook_movement_amount",
			Help:    "Movement amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		MovementErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_movement_errors_total",
				Help: "Total number of movement errors by type",
			},
			[]string{"error_type"},
		),
		CommitConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_commit_conflicts_total",
			Help: "Total number of version conflicts detected at commit",
		}),
		CommitRetries: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finbook_commit_retries",
			Help:    "Attempts needed per committed movement",
			Buckets: []float64{1, 2, 3, 4, 5},
		}),

		// Account metrics
		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		AccountsArchived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_accounts_archived_total",
			Help: "Total number of accounts archived",
		}),
		AccountBalance: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finbook_account_balance",
				Help: "Current account balance",
			},
			[]string{"account_id", "kind"},
		),

		// Ledger metrics
		ConsistencyChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_consistency_checks_total",
			Help: "Total number of ledger consistency checks run",
		}),
		InconsistentChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_consistency_failures_total",
			Help: "Total number of consistency checks that found drift",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finbook_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finbook_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "finbook_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Outbox metrics
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_events_published_total",
			Help: "Total change events published",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finbook_event_publish_errors_total",
			Help: "Total change event publish failures",
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finbook_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
