package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid"
	OutcomeFailed     = "failed"
	OutcomeNoDocument = "no_document"
)

var (
	uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docqa_uploads_total",
			Help: "Uploads by format and outcome",
		},
		[]string{"format", "outcome"},
	)
	extractionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docqa_extraction_duration_seconds",
			Help:    "Text extraction duration by format",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"format"},
	)
	answersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docqa_answers_total",
			Help: "Answer requests by outcome",
		},
		[]string{"outcome"},
	)
	modelDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docqa_model_duration_seconds",
			Help:    "QA model invocation duration",
			Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 30, 60, 120},
		},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docqa_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(uploadsTotal)
	prometheus.MustRegister(extractionDuration)
	prometheus.MustRegister(answersTotal)
	prometheus.MustRegister(modelDuration)
	prometheus.MustRegister(httpRequestsTotal)
}

// ObserveUpload counts one upload attempt.
func ObserveUpload(format, outcome string) {
	if format == "" {
		format = "unknown"
	}
	uploadsTotal.WithLabelValues(format, outcome).Inc()
}

// ObserveExtraction records how long extracting one document took.
func ObserveExtraction(format string, d time.Duration) {
	extractionDuration.WithLabelValues(format).Observe(d.Seconds())
}

// ObserveAnswer counts one answer request.
func ObserveAnswer(outcome string) {
	answersTotal.WithLabelValues(outcome).Inc()
}

// ObserveModel records one QA model invocation.
func ObserveModel(d time.Duration) {
	modelDuration.Observe(d.Seconds())
}

// ObserveRequest counts a completed HTTP request. route is the matched gin route template.
func ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
