package metrics

import (
	"net/http"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/bnema/euserv-renew/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Prometheus struct {
	registry *prometheus.Registry

	LoginTotal    *prometheus.CounterVec // result=success|fail
	LoginAttempts prometheus.Histogram
	ResourceTotal *prometheus.CounterVec // outcome
	RunTotal      *prometheus.CounterVec // status=renewed|idle|error
	RunDuration   prometheus.Histogram
	LastRunTime   *prometheus.GaugeVec // status
}

var _ ports.Metrics = (*Prometheus)(nil)

// NewPrometheus registers the collectors on a private registry so several
// instances can coexist in tests.
func NewPrometheus() *Prometheus {
	m := &Prometheus{
		registry: prometheus.NewRegistry(),
		LoginTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eurenew_login_total",
				Help: "Account logins by result",
			},
			[]string{"result"},
		),
		LoginAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "eurenew_login_attempts",
			Help:    "Attempts needed per account login, captcha retries included",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		ResourceTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eurenew_server_total",
				Help: "Servers processed by outcome",
			},
			[]string{"outcome"},
		),
		RunTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eurenew_run_total",
				Help: "Renewal runs by final status",
			},
			[]string{"status"},
		),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "eurenew_run_duration_seconds",
			Help:    "Wall time of a renewal run",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10), // 5s .. ~43m
		}),
		LastRunTime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "eurenew_last_run_timestamp_seconds",
				Help: "Unix time the last run with this status finished",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.LoginTotal,
		m.LoginAttempts,
		m.ResourceTotal,
		m.RunTotal,
		m.RunDuration,
		m.LastRunTime,
	)

	return m
}

func (m *Prometheus) LoginFinished(success bool, attempts int) {
	m.LoginTotal.WithLabelValues(result(success)).Inc()
	m.LoginAttempts.Observe(float64(attempts))
}

func (m *Prometheus) ResourceFinished(outcome domain.ResourceOutcome) {
	m.ResourceTotal.WithLabelValues(string(outcome)).Inc()
}

func (m *Prometheus) RunFinished(status domain.RunStatus, duration time.Duration) {
	m.RunTotal.WithLabelValues(string(status)).Inc()
	m.RunDuration.Observe(duration.Seconds())
	m.LastRunTime.WithLabelValues(string(status)).Set(float64(time.Now().Unix()))
}

func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "fail"
}
