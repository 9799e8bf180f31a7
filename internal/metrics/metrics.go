package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Total successful signup requests",
		},
	)
	TokensIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tokens_issued_total",
			Help: "Total access tokens issued",
		},
	)
	ReviewsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_created_total",
			Help: "Total reviews created",
		},
	)

	// Mail dispatch queue
	MailQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mail_queue_depth",
			Help: "Pending outbound mail jobs",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(SignupsTotal)
	prometheus.MustRegister(TokensIssuedTotal)
	prometheus.MustRegister(ReviewsCreatedTotal)
	prometheus.MustRegister(MailQueueDepth)
}
