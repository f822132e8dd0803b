package examples

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/operator-framework/geogen/cmd/runner"
	"github.com/operator-framework/geogen/internal/problem"
)

func NewExamplesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Lists and runs the built-in problems",
	}
	cmd.AddCommand(newListCommand(), newRunCommand())
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the built-in problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			problems, err := problem.Examples()
			if err != nil {
				return err
			}
			for _, p := range problems {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", p.Name, p.Description)
			}
			return nil
		},
	}
}

func newRunCommand() *cobra.Command {
	var options runner.Options
	cmd := &cobra.Command{
		Use:   "run [name]...",
		Short: "Runs the named built-in problems, or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				problems []*problem.Problem
				err      error
			)
			if len(args) == 0 {
				problems, err = problem.Examples()
			} else {
				problems, err = problem.Example(args...)
			}
			if err != nil {
				return err
			}
			return options.Run(cmd, problems)
		},
	}
	options.AddFlags(cmd)
	return cmd
}
