package faas

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics exports request counts and latencies per operation.
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	metrics := &PrometheusMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faas",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Requests sent to the FaaS backend, by operation and status code.",
		}, []string{"operation", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "faas",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of requests to the FaaS backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faas",
			Subsystem: "client",
			Name:      "network_failures_total",
			Help:      "Requests that failed without a response.",
		}, []string{"operation"}),
	}

	if reg != nil {
		for _, collector := range []prometheus.Collector{metrics.requests, metrics.duration, metrics.failures} {
			err := reg.Register(collector)
			if err != nil {
				return nil, err
			}
		}
	}

	return metrics, nil
}

// RequestInterceptor records the start time.
func (m *PrometheusMetrics) RequestInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		markStart(req)

		return nil
	}
}

// ResponseInterceptor observes the outcome.
func (m *PrometheusMetrics) ResponseInterceptor() ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		operation := metricsKey(req)

		if latency, ok := elapsed(req); ok {
			m.duration.WithLabelValues(operation).Observe(latency.Seconds())
		}

		if resp.StatusCode == 0 {
			m.failures.WithLabelValues(operation).Inc()

			return nil
		}

		m.requests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

		return nil
	}
}

// Install adds both interceptors to chain.
func (m *PrometheusMetrics) Install(chain *InterceptorChain) *InterceptorChain {
	return chain.
		AddRequestInterceptor(m.RequestInterceptor()).
		AddResponseInterceptor(m.ResponseInterceptor())
}
