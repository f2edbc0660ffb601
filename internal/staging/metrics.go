package staging

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts staging outcomes. A nil *Metrics records nothing.
type Metrics struct {
	bucketsCreated prometheus.Counter
	createFailures *prometheus.CounterVec
	uploadFailures *prometheus.CounterVec
	cleanups       *prometheus.CounterVec
	uploadDuration prometheus.Histogram
	attempts       *prometheus.CounterVec
}

// NewMetrics creates the staging collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bucketsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clusterstage",
			Subsystem: "staging",
			Name:      "buckets_created_total",
			Help:      "Total number of staging buckets created",
		}),
		createFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clusterstage",
			Subsystem: "staging",
			Name:      "bucket_create_failures_total",
			Help:      "Total number of failed bucket creations by provider error code",
		}, []string{"code"}),
		uploadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clusterstage",
			Subsystem: "staging",
			Name:      "upload_failures_total",
			Help:      "Total number of failed uploads by step",
		}, []string{"step"}),
		cleanups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clusterstage",
			Subsystem: "staging",
			Name:      "cleanups_total",
			Help:      "Total number of bucket deletions after upload failures by result",
		}, []string{"result"}),
		uploadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clusterstage",
			Subsystem: "staging",
			Name:      "upload_duration_seconds",
			Help:      "Duration of artifact uploads in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clusterstage",
			Subsystem: "staging",
			Name:      "attempts_total",
			Help:      "Total number of staging attempts by scheduler and result",
		}, []string{"scheduler", "result"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.bucketsCreated,
			m.createFailures,
			m.uploadFailures,
			m.cleanups,
			m.uploadDuration,
			m.attempts,
		)
	}
	return m
}

func (m *Metrics) recordBucketCreated() {
	if m != nil {
		m.bucketsCreated.Inc()
	}
}

func (m *Metrics) recordCreateFailure(code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.createFailures.WithLabelValues(code).Inc()
}

func (m *Metrics) recordUploadFailure(step string) {
	if m != nil {
		m.uploadFailures.WithLabelValues(step).Inc()
	}
}

func (m *Metrics) recordCleanup(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.cleanups.WithLabelValues(result).Inc()
}

func (m *Metrics) observeUpload(d time.Duration) {
	if m != nil {
		m.uploadDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) recordAttempt(scheduler string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.attempts.WithLabelValues(scheduler, result).Inc()
}
