// Package settings holds the tunables of the theorem search.
package settings

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/operator-framework/geogen/pkg/geogen/analytic"
)

// Settings are the tunables shared by the container manager, the finders
// and the analyzer.
type Settings struct {
	// NumberOfContainers is the number of independent numeric
	// realizations kept for every configuration.
	NumberOfContainers int `yaml:"numberOfContainers"`
	// MaximalAttemptsToReconstructOneContainer bounds how often a single
	// container is resampled while it is being built.
	MaximalAttemptsToReconstructOneContainer int `yaml:"maximalAttemptsToReconstructOneContainer"`
	// MaximalAttemptsToReconstructAllContainers bounds how often all
	// containers are resampled before the configuration is abandoned.
	MaximalAttemptsToReconstructAllContainers int `yaml:"maximalAttemptsToReconstructAllContainers"`
	// Precision is the number of decimal digits used for comparisons.
	Precision int `yaml:"precision"`
	// MinimalNumberOfTrueContainers is the quorum a theorem needs. Zero
	// means every container.
	MinimalNumberOfTrueContainers int `yaml:"minimalNumberOfTrueContainers"`
	// Seed for the random layout sampler; zero picks a time based seed.
	Seed int64 `yaml:"seed"`
	LogLevel string `yaml:"logLevel"`
}

func Default() Settings {
	return Settings{
		NumberOfContainers:                        5,
		MaximalAttemptsToReconstructOneContainer:  3,
		MaximalAttemptsToReconstructAllContainers: 10,
		Precision:                                 int(analytic.DefaultPrecision),
		LogLevel:                                  "info",
	}
}

// Parse reads YAML settings. Fields missing from data keep their default
// values.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads settings from a YAML file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return Parse(data)
}

// Validate returns a single error describing every invalid field, or nil.
func (s Settings) Validate() error {
	var errs []string
	if s.NumberOfContainers < 1 {
		errs = append(errs, fmt.Sprintf("numberOfContainers must be positive, got %d", s.NumberOfContainers))
	}
	if s.MaximalAttemptsToReconstructOneContainer < 0 {
		errs = append(errs, fmt.Sprintf("maximalAttemptsToReconstructOneContainer must not be negative, got %d", s.MaximalAttemptsToReconstructOneContainer))
	}
	if s.MaximalAttemptsToReconstructAllContainers < 0 {
		errs = append(errs, fmt.Sprintf("maximalAttemptsToReconstructAllContainers must not be negative, got %d", s.MaximalAttemptsToReconstructAllContainers))
	}
	if s.Precision < 1 || s.Precision > 12 {
		errs = append(errs, fmt.Sprintf("precision must be between 1 and 12, got %d", s.Precision))
	}
	if s.MinimalNumberOfTrueContainers < 0 || s.MinimalNumberOfTrueContainers > s.NumberOfContainers {
		errs = append(errs, fmt.Sprintf("minimalNumberOfTrueContainers must be between 0 and %d, got %d", s.NumberOfContainers, s.MinimalNumberOfTrueContainers))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%d errors encountered: %s", len(errs), strings.Join(errs, ", "))
}

// Quorum returns the number of containers a theorem must hold in.
func (s Settings) Quorum() int {
	if s.MinimalNumberOfTrueContainers == 0 {
		return s.NumberOfContainers
	}
	return s.MinimalNumberOfTrueContainers
}

func (s Settings) AnalyticPrecision() analytic.Precision {
	return analytic.Precision(s.Precision)
}
