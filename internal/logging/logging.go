// Package logging provides the zap logger used by the command line tools
// and a Tracer that reports container reconstructions through it.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/operator-framework/geogen/pkg/geogen"
)

// Config holds logging configuration
type Config struct {
	Level  string
	Format string // "json" or "console"
	Output string // "stdout", "stderr" or a file path
}

// NewLogger builds a production zap logger.
func NewLogger(config Config) (*zap.Logger, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = level
	if config.Format != "" {
		zapConfig.Encoding = config.Format
	}
	if config.Output != "" {
		zapConfig.OutputPaths = []string{config.Output}
		zapConfig.ErrorOutputPaths = []string{config.Output}
	}
	zapConfig.DisableStacktrace = true
	return zapConfig.Build()
}

// ParseLevel parses "debug", "info", "warn" or "error". An empty level
// means info.
func ParseLevel(level string) (zap.AtomicLevel, error) {
	if level == "" {
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	}
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return parsed, nil
}

// Tracer logs reconstructions and rejected theorems.
type Tracer struct {
	logger *zap.Logger
}

var _ geogen.Tracer = Tracer{}

func NewTracer(logger *zap.Logger) Tracer {
	return Tracer{logger: logger}
}

func (t Tracer) ContainerReconstructed(index, attempt int, cause error) {
	t.logger.Debug("container reconstructed",
		zap.Int("container", index),
		zap.Int("attempt", attempt),
		zap.Error(cause))
}

func (t Tracer) ContainersReconstructed(attempt int, cause error) {
	t.logger.Info("all containers reconstructed",
		zap.Int("attempt", attempt),
		zap.Error(cause))
}

func (t Tracer) ReconstructionExhausted(cause error) {
	t.logger.Warn("giving up on inconsistent containers", zap.Error(cause))
}

func (t Tracer) TheoremRejected(theorem geogen.Theorem, trueContainers, totalContainers int) {
	t.logger.Debug("theorem rejected",
		zap.Stringer("theorem", theorem),
		zap.Int("trueContainers", trueContainers),
		zap.Int("totalContainers", totalContainers))
}
