package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess     = "success"
	outcomeClientError = "client_error"
	outcomeServerError = "server_error"
	outcomeError       = "error"
)

// Metrics records requests made against the admin server. A nil *Metrics
// records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the request metrics and registers them. Registering
// against a registry that already has them reuses the existing collectors.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xd",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of requests made against the admin server",
	}, []string{"operation", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "xd",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Duration of requests made against the admin server",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	if err := registerer.Register(requests); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}

		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		requests = existing
	}

	if err := registerer.Register(duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}

		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, err
		}
		duration = existing
	}

	return &Metrics{
		requests: requests,
		duration: duration,
	}, nil
}

func (m *Metrics) observe(op string, outcome string, d time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

func outcomeFor(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return outcomeServerError
	case status >= http.StatusBadRequest:
		return outcomeClientError
	}

	return outcomeSuccess
}
