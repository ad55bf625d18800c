package monitoring

import (
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuestionsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_questions_served_total",
			Help: "Number of localized questions handed out for quiz taking",
		},
		[]string{"lang"},
	)

	ResultsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_results_recorded_total",
			Help: "Number of quiz attempts recorded",
		},
		[]string{"perfect"},
	)

	GateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_gate_decisions_total",
			Help: "Completion status checks by key and outcome",
		},
		[]string{"key", "can_take"},
	)
)

// OtherLabel 不在允许列表中的标签值统一归到这里，标签基数因此有上限
const OtherLabel = "other"

// BoundedLabel 来自请求的标签值只有在 allowed 中才原样使用
func BoundedLabel(value string, allowed ...string) string {
	if slices.Contains(allowed, value) {
		return value
	}
	return OtherLabel
}

var registerOnce sync.Once

// Init 可重复调用，指标只注册一次
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(QuestionsServed)
		prometheus.MustRegister(ResultsRecorded)
		prometheus.MustRegister(GateDecisions)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
