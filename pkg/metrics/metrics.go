package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type and scope."},
		[]string{"limiter", "scope"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type and scope."},
		[]string{"limiter", "scope"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "http_requests_total", Help: "HTTP requests by method, route and status class."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "folio", Name: "http_request_duration_seconds", Help: "HTTP request latency.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	ContentWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "content_writes_total", Help: "Admin content writes by section and operation."},
		[]string{"section", "op"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "cache_lookups_total", Help: "Public read cache lookups by result."},
		[]string{"result"},
	)
	UploadedBytes = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "folio", Name: "uploaded_bytes_total", Help: "Bytes stored by the upload endpoint."},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "login_attempts_total", Help: "Admin login attempts by result."},
		[]string{"result"},
	)
	ContactMessages = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "folio", Name: "contact_messages_total", Help: "Contact form submissions stored."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(ContentWrites)
	reg.MustRegister(CacheLookups)
	reg.MustRegister(UploadedBytes)
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(ContactMessages)
}
