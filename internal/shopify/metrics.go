package shopify

import (
	"errors"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricRequestsTotal          = "storefront_shopify_requests_total"
	MetricRequestDurationSeconds = "storefront_shopify_request_duration_seconds"
)

// Metrics counts Storefront API calls by operation and outcome. A nil *Metrics records nothing.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRequestsTotal,
			Help: "Storefront API calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRequestDurationSeconds,
			Help:    "Storefront API call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{m.requestsTotal, m.requestDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(op string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(op, outcome(err)).Inc()
	m.requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrCartNotFound), errors.Is(err, domain.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, ErrUserErrors):
		return "user_error"
	case errors.Is(err, ErrGraphQL):
		return "graphql_error"
	case errors.Is(err, ErrRequestFailed):
		return "http_error"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	}
	return "error"
}
