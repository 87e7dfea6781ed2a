package accounting

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes per-session counters for Prometheus scrape, composed the
// way a metrics collector in this codebase's lineage does it: one factory,
// one counter/gauge per concern, all registered up front.
type Metrics struct {
	sessionsTotal   *prometheus.CounterVec
	candidatesTotal *prometheus.CounterVec
	bytesFreed      prometheus.Counter
	bytesSkipped    prometheus.Counter
	rebootPending   prometheus.Gauge
}

// NewMetrics registers the session metrics against reg. If reg is nil,
// prometheus.DefaultRegisterer is used.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		sessionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lightc",
			Subsystem: "session",
			Name:      "total",
			Help:      "Total cleanup sessions run, by outcome bucket",
		}, []string{"bucket"}),

		candidatesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lightc",
			Subsystem: "candidates",
			Name:      "total",
			Help:      "Total candidates processed, by outcome bucket",
		}, []string{"bucket"}),

		bytesFreed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lightc",
			Subsystem: "bytes",
			Name:      "freed_total",
			Help:      "Cluster-aligned physical bytes freed across all sessions",
		}),

		bytesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lightc",
			Subsystem: "bytes",
			Name:      "skipped_total",
			Help:      "Logical bytes skipped due to hard delete failures",
		}),

		rebootPending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "lightc",
			Subsystem: "candidates",
			Name:      "reboot_pending",
			Help:      "Candidates currently marked for removal on next reboot",
		}),
	}
}

// Observe folds a finished session's totals into the registered metrics.
func (m *Metrics) Observe(s *Session) {
	success, failed, rebootPending, manualReview := s.Counts()
	_, freedPhysical, skipped := s.Bytes()

	m.sessionsTotal.WithLabelValues("completed").Inc()
	m.candidatesTotal.WithLabelValues("success").Add(float64(success))
	m.candidatesTotal.WithLabelValues("failed").Add(float64(failed))
	m.candidatesTotal.WithLabelValues("reboot_pending").Add(float64(rebootPending))
	m.candidatesTotal.WithLabelValues("manual_review").Add(float64(manualReview))
	m.bytesFreed.Add(float64(freedPhysical))
	m.bytesSkipped.Add(float64(skipped))
	m.rebootPending.Set(float64(rebootPending))
}
