// Package metrics counts reconstructions and theorems in Prometheus
// collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/operator-framework/geogen/pkg/geogen"
)

const namespace = "geogen"

// Metrics holds the collectors. It implements geogen.Tracer.
type Metrics struct {
	ContainerReconstructionsTotal prometheus.Counter
	ReconstructionsTotal          prometheus.Counter
	ReconstructionsExhaustedTotal prometheus.Counter
	TheoremsFoundTotal            *prometheus.CounterVec
	TheoremsRejectedTotal         *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

var _ geogen.Tracer = &Metrics{}

// New registers the collectors with a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		ContainerReconstructionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "container_reconstructions_total",
			Help:      "Total number of single container reconstructions",
		}),
		ReconstructionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconstructions_total",
			Help:      "Total number of reconstructions of all containers",
		}),
		ReconstructionsExhaustedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconstructions_exhausted_total",
			Help:      "Total number of operations abandoned after the maximal number of reconstructions",
		}),
		TheoremsFoundTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theorems_found_total",
			Help:      "Total number of accepted theorems",
		}, []string{"type"}),
		TheoremsRejectedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theorems_rejected_total",
			Help:      "Total number of candidate theorems that missed the quorum",
		}, []string{"type"}),
		gatherer: registry,
	}
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// TheoremsFound counts accepted theorems by type.
func (m *Metrics) TheoremsFound(theorems []geogen.Theorem) {
	for _, t := range theorems {
		m.TheoremsFoundTotal.WithLabelValues(t.Type.String()).Inc()
	}
}

// Push sends the collected metrics to a Prometheus Pushgateway.
func (m *Metrics) Push(url, job string) error {
	return push.New(url, job).Gatherer(m.gatherer).Push()
}

func (m *Metrics) ContainerReconstructed(_, _ int, _ error) {
	m.ContainerReconstructionsTotal.Inc()
}

func (m *Metrics) ContainersReconstructed(_ int, _ error) {
	m.ReconstructionsTotal.Inc()
}

func (m *Metrics) ReconstructionExhausted(_ error) {
	m.ReconstructionsExhaustedTotal.Inc()
}

func (m *Metrics) TheoremRejected(theorem geogen.Theorem, _, _ int) {
	m.TheoremsRejectedTotal.WithLabelValues(theorem.Type.String()).Inc()
}
