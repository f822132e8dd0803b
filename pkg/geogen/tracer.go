package geogen

import (
	"fmt"
	"io"
)

// Tracer is notified about the recovery decisions taken while realizations
// of a configuration are maintained and while theorems are analyzed.
type Tracer interface {
	// ContainerReconstructed is called when a single container had to be
	// resampled while it was being built.
	ContainerReconstructed(index, attempt int, cause error)
	// ContainersReconstructed is called when all containers were
	// resampled because an operation found them inconsistent.
	ContainersReconstructed(attempt int, cause error)
	// ReconstructionExhausted is called once the retry bound is hit; the
	// configuration is abandoned.
	ReconstructionExhausted(cause error)
	// TheoremRejected is called for candidates that did not hold in
	// enough containers.
	TheoremRejected(theorem Theorem, trueContainers, totalContainers int)
}

type DefaultTracer struct{}

var _ Tracer = DefaultTracer{}

func (DefaultTracer) ContainerReconstructed(_, _ int, _ error) {
}

func (DefaultTracer) ContainersReconstructed(_ int, _ error) {
}

func (DefaultTracer) ReconstructionExhausted(_ error) {
}

func (DefaultTracer) TheoremRejected(_ Theorem, _, _ int) {
}

type LoggingTracer struct {
	Writer io.Writer
}

var _ Tracer = LoggingTracer{}

func (t LoggingTracer) ContainerReconstructed(index, attempt int, cause error) {
	fmt.Fprintf(t.Writer, "container %d reconstructed (attempt %d): %s\n", index, attempt, cause)
}

func (t LoggingTracer) ContainersReconstructed(attempt int, cause error) {
	fmt.Fprintf(t.Writer, "all containers reconstructed (attempt %d): %s\n", attempt, cause)
}

func (t LoggingTracer) ReconstructionExhausted(cause error) {
	fmt.Fprintf(t.Writer, "reconstruction exhausted: %s\n", cause)
}

func (t LoggingTracer) TheoremRejected(theorem Theorem, trueContainers, totalContainers int) {
	fmt.Fprintf(t.Writer, "rejected %s (true in %d of %d containers)\n", theorem, trueContainers, totalContainers)
}

// MultiTracer forwards every event to each of its tracers in order.
type MultiTracer []Tracer

var _ Tracer = MultiTracer{}

func (m MultiTracer) ContainerReconstructed(index, attempt int, cause error) {
	for _, t := range m {
		t.ContainerReconstructed(index, attempt, cause)
	}
}

func (m MultiTracer) ContainersReconstructed(attempt int, cause error) {
	for _, t := range m {
		t.ContainersReconstructed(attempt, cause)
	}
}

func (m MultiTracer) ReconstructionExhausted(cause error) {
	for _, t := range m {
		t.ReconstructionExhausted(cause)
	}
}

func (m MultiTracer) TheoremRejected(theorem Theorem, trueContainers, totalContainers int) {
	for _, t := range m {
		t.TheoremRejected(theorem, trueContainers, totalContainers)
	}
}
