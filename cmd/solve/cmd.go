package solve

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/operator-framework/geogen/cmd/runner"
	"github.com/operator-framework/geogen/internal/problem"
)

func NewSolveCommand() *cobra.Command {
	var options runner.Options
	cmd := &cobra.Command{
		Use:   "solve <path>...",
		Short: "Finds the theorems of problems given in YAML files",
		Long: `Finds the theorems of problems given in YAML files. For instance:

name: centroid
layout: Triangle
loose: [A, B, C]
objects:
  - {name: Ma, construction: Midpoint, args: [B, C]}
  - {name: Mb, construction: Midpoint, args: [A, C]}
extensions:
  - {name: Mc, construction: Midpoint, args: [A, B]}
`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("file (%s) not found", path)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			problems := make([]*problem.Problem, len(args))
			for i, path := range args {
				p, err := problem.Load(path)
				if err != nil {
					return err
				}
				problems[i] = p
			}
			return options.Run(cmd, problems)
		},
	}
	options.AddFlags(cmd)
	return cmd
}
