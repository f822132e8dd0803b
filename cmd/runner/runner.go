// Package runner holds the flags and the output shared by the commands
// that run problems.
package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/operator-framework/geogen/internal/logging"
	"github.com/operator-framework/geogen/internal/metrics"
	"github.com/operator-framework/geogen/internal/problem"
	"github.com/operator-framework/geogen/pkg/geogen"
	"github.com/operator-framework/geogen/pkg/geogen/search"
	"github.com/operator-framework/geogen/pkg/geogen/settings"
)

type Options struct {
	SettingsPath string
	Seed         int64
	LogLevel     string
	Pushgateway  string
	Parallelism  int
}

func (o *Options) AddFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.SettingsPath, "settings", "", "path to a YAML settings file")
	flags.Int64Var(&o.Seed, "seed", 0, "seed of the random layouts (overrides the settings file)")
	flags.StringVar(&o.LogLevel, "log-level", "", "log level (overrides the settings file)")
	flags.StringVar(&o.Pushgateway, "pushgateway", "", "Prometheus Pushgateway URL to push run metrics to")
	flags.IntVar(&o.Parallelism, "parallelism", 0, "number of problems run at the same time, 0 for no limit")
}

func (o *Options) settings(cmd *cobra.Command) (settings.Settings, error) {
	s := settings.Default()
	if o.SettingsPath != "" {
		var err error
		if s, err = settings.Load(o.SettingsPath); err != nil {
			return settings.Settings{}, err
		}
	}
	if cmd.Flags().Changed("seed") {
		s.Seed = o.Seed
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
	return s, nil
}

// Run runs problems and prints their reports to the command output.
func (o *Options) Run(cmd *cobra.Command, problems []*problem.Problem) error {
	s, err := o.settings(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(logging.Config{Level: s.LogLevel, Output: "stderr"})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	m := metrics.New()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	reports, err := problem.RunAll(ctx, problems, o.Parallelism, func(p *problem.Problem) []search.Option {
		tracer := geogen.MultiTracer{logging.NewTracer(logger.With(zap.String("problem", p.Name))), m}
		return []search.Option{search.WithSettings(s), search.WithTracer(tracer)}
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, report := range reports {
		if i > 0 {
			fmt.Fprintln(out)
		}
		Print(out, report)
		m.TheoremsFound(report.Theorems())
		if report.Abandoned != nil {
			logger.Warn("problem abandoned",
				zap.String("problem", report.Problem.Name),
				zap.Int("theorems", len(report.Theorems())),
				zap.Error(report.Abandoned))
			continue
		}
		logger.Info("problem finished",
			zap.String("problem", report.Problem.Name),
			zap.Int("theorems", len(report.Theorems())))
	}

	if o.Pushgateway != "" {
		if err := m.Push(o.Pushgateway, "geogen"); err != nil {
			return fmt.Errorf("pushing metrics to %s: %w", o.Pushgateway, err)
		}
	}
	return nil
}

// Print writes a report: the starting configuration and its theorems,
// then every extension followed by the theorems it brought, and why the
// run stopped if it was abandoned.
func Print(w io.Writer, report *problem.Report) {
	fmt.Fprintf(w, "# %s", report.Problem.Name)
	if report.Problem.Description != "" {
		fmt.Fprintf(w, ": %s", report.Problem.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, report.Start)
	printTheorems(w, report.Initial)
	for _, step := range report.Steps {
		switch {
		case step.Inconstructible:
			fmt.Fprintf(w, "+ %s: cannot be constructed\n", step.Object.Describe())
		case step.Duplicate != nil:
			fmt.Fprintf(w, "+ %s: same as %s\n", step.Object.Describe(), step.Duplicate)
		default:
			fmt.Fprintf(w, "+ %s\n", step.Object.Describe())
			printTheorems(w, step.Theorems)
		}
	}
	if report.Abandoned != nil {
		if report.AbandonedAt != nil {
			fmt.Fprintf(w, "+ %s: abandoned: %v\n", report.AbandonedAt.Describe(), report.Abandoned)
			return
		}
		fmt.Fprintf(w, "abandoned: %v\n", report.Abandoned)
	}
}

func printTheorems(w io.Writer, theorems []geogen.Theorem) {
	for _, t := range theorems {
		fmt.Fprintf(w, "  %s\n", t)
	}
}
