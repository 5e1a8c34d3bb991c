package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application.
type Metrics struct {
	VerificationsCreated prometheus.Counter
	UsersCreated         prometheus.Counter
	ItemsCreated         prometheus.Counter
	RequestDuration      *prometheus.HistogramVec
}

// New creates and registers all collectors against the given registerer.
// main passes prometheus.DefaultRegisterer; tests pass a fresh registry so
// suites can construct Metrics repeatedly.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VerificationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "curio_verifications_created_total",
			Help: "Total number of item verifications recorded",
		}),
		UsersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "curio_users_created_total",
			Help: "Total number of users created",
		}),
		ItemsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "curio_items_created_total",
			Help: "Total number of items created",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "curio_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) IncrementVerificationsCreated() {
	m.VerificationsCreated.Inc()
}

func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementItemsCreated() {
	m.ItemsCreated.Inc()
}
