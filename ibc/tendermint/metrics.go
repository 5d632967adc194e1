package tendermint

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

// MetricsSubsystem is a subsystem shared by all metrics exposed by this
// package.
const MetricsSubsystem = "misbehaviour"

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Number of misbehaviour evidence values that passed validation.
	EvidenceAccepted metrics.Counter
	// Number of rejected evidence candidates, by reason.
	EvidenceRejected metrics.Counter
	// Size of the validator set behind the last accepted evidence.
	ValidatorSetSize metrics.Gauge
}

// PrometheusMetrics returns Metrics build using Prometheus client library
// and registered with its default registry. Optionally, labels can be
// provided along with their values ("foo", "fooValue").
func PrometheusMetrics(namespace string, labelsAndValues ...string) *Metrics {
	return PrometheusMetricsWith(stdprometheus.DefaultRegisterer, namespace, labelsAndValues...)
}

// PrometheusMetricsWith is PrometheusMetrics registering with reg. It panics
// if the collectors are already registered there.
func PrometheusMetricsWith(reg stdprometheus.Registerer, namespace string, labelsAndValues ...string) *Metrics {
	labels := []string{}
	for i := 0; i < len(labelsAndValues); i += 2 {
		labels = append(labels, labelsAndValues[i])
	}

	accepted := stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: MetricsSubsystem,
		Name:      "evidence_accepted",
		Help:      "Number of misbehaviour evidence values that passed validation.",
	}, labels)
	rejected := stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: MetricsSubsystem,
		Name:      "evidence_rejected",
		Help:      "Number of rejected misbehaviour evidence candidates.",
	}, append(labels, "reason"))
	size := stdprometheus.NewGaugeVec(stdprometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: MetricsSubsystem,
		Name:      "validator_set_size",
		Help:      "Size of the validator set behind the last accepted evidence.",
	}, labels)
	reg.MustRegister(accepted, rejected, size)

	return &Metrics{
		EvidenceAccepted: prometheus.NewCounter(accepted).With(labelsAndValues...),
		EvidenceRejected: prometheus.NewCounter(rejected).With(labelsAndValues...),
		ValidatorSetSize: prometheus.NewGauge(size).With(labelsAndValues...),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		EvidenceAccepted: discard.NewCounter(),
		EvidenceRejected: discard.NewCounter(),
		ValidatorSetSize: discard.NewGauge(),
	}
}
