package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ChatCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_chat_completions_total",
			Help: "Total number of chat completion requests by outcome.",
		},
		[]string{"status"},
	)

	ChatStreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_chat_stream_duration_seconds",
			Help:    "Duration of chat completion streams in seconds.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_ratelimit_denied_total",
			Help: "Total number of requests denied by the daily rate limiter.",
		},
	)

	ContactEmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_contact_emails_total",
			Help: "Total number of contact form submissions by outcome.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ChatCompletionsTotal,
		ChatStreamDuration,
		RateLimitDeniedTotal,
		ContactEmailsTotal,
	)
}
