package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/penglongli/gin-metrics/ginmetrics"
	"go.uber.org/zap"
)

const (
	UpstreamRequests = "weather_upstream_requests_total"
	UpstreamDuration = "weather_upstream_request_duration_seconds"
	UpstreamRetries  = "weather_upstream_retries_total"
)

var registerOnce sync.Once

// GetMonitor configures the process-wide gin-metrics monitor and registers
// the upstream metrics once.
func GetMonitor(path string, slowTime int32) *ginmetrics.Monitor {
	m := ginmetrics.GetMonitor()
	m.SetMetricPath(path)
	if slowTime > 0 {
		m.SetSlowTime(slowTime)
	}

	// request duration buckets, used for p95, p99
	m.SetDuration([]float64{0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5})

	registerOnce.Do(func() {
		for _, metric := range []*ginmetrics.Metric{
			{
				Type:        ginmetrics.Counter,
				Name:        UpstreamRequests,
				Description: "upstream weather API attempts by outcome",
				Labels:      []string{"outcome"},
			},
			{
				Type:        ginmetrics.Histogram,
				Name:        UpstreamDuration,
				Description: "upstream weather API attempt latency",
				Labels:      []string{"outcome"},
				Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			{
				Type:        ginmetrics.Counter,
				Name:        UpstreamRetries,
				Description: "upstream weather API retries by attempt number",
				Labels:      []string{"attempt"},
			},
		} {
			if err := m.AddMetric(metric); err != nil {
				zap.L().Warn("Failed to register metric", zap.String("name", metric.Name), zap.Error(err))
			}
		}
	})

	return m
}

// UpstreamRecorder feeds the upstream metrics. It is wired into the HTTP
// client's attempt and retry hooks.
type UpstreamRecorder struct {
	monitor *ginmetrics.Monitor
}

func NewUpstreamRecorder(m *ginmetrics.Monitor) *UpstreamRecorder {
	return &UpstreamRecorder{monitor: m}
}

func (r *UpstreamRecorder) ObserveAttempt(outcome string, duration time.Duration) {
	if r == nil || r.monitor == nil {
		return
	}
	labels := []string{outcome}
	if metric := r.monitor.GetMetric(UpstreamRequests); metric != nil {
		_ = metric.Inc(labels)
	}
	if metric := r.monitor.GetMetric(UpstreamDuration); metric != nil {
		_ = metric.Observe(labels, duration.Seconds())
	}
}

func (r *UpstreamRecorder) ObserveRetry(attempt int, _ time.Duration) {
	if r == nil || r.monitor == nil {
		return
	}
	if metric := r.monitor.GetMetric(UpstreamRetries); metric != nil {
		_ = metric.Inc([]string{strconv.Itoa(attempt)})
	}
}
