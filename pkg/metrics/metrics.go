package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "showroom", Name: "http_requests_total", Help: "Number of HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "showroom", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "showroom", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	ImageUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "showroom", Name: "image_uploads_total", Help: "Number of image store uploads by result."},
		[]string{"result"},
	)
	ImageDeletes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "showroom", Name: "image_deletes_total", Help: "Number of image store deletions by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ImageUploads)
	reg.MustRegister(ImageDeletes)
}
