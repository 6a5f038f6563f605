package metrics

import (
	"time"

	"alpha-digest/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exports upstream, signal and entrypoint counters to Prometheus.
type Recorder struct {
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	signalsEmitted   *prometheus.CounterVec
	invocations      *prometheus.CounterVec
}

// New registers the collectors with reg. A nil reg means the default
// registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alphadigest_upstream_requests_total",
				Help: "Outbound data source calls by outcome",
			},
			[]string{"source", "outcome"},
		),
		upstreamLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "alphadigest_upstream_duration_seconds",
				Help:    "Duration of outbound data source calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		signalsEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alphadigest_signals_emitted_total",
				Help: "Alpha signals emitted by digests",
			},
			[]string{"type"},
		),
		invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alphadigest_entrypoint_invocations_total",
				Help: "Entrypoint invocations by run status",
			},
			[]string{"entrypoint", "status"},
		),
	}
}

// ObserveUpstream records one outbound call.
func (r *Recorder) ObserveUpstream(source, outcome string, elapsed time.Duration) {
	r.upstreamRequests.WithLabelValues(source, outcome).Inc()
	r.upstreamLatency.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (r *Recorder) RecordSignals(signals []domain.AlphaSignal) {
	for _, s := range signals {
		r.signalsEmitted.WithLabelValues(string(s.Type)).Inc()
	}
}

func (r *Recorder) RecordInvocation(entrypoint, status string) {
	r.invocations.WithLabelValues(entrypoint, status).Inc()
}
