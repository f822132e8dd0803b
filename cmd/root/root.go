package root

import (
	"github.com/spf13/cobra"

	"github.com/operator-framework/geogen/cmd/examples"

	"github.com/operator-framework/geogen/cmd/solve"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "geogen",
		Short: "Geogen discovers theorems of geometric configurations",
		Long: `Geogen constructs a configuration of points, lines and circles in several
random numeric realizations and reports the statements that hold in them:
collinear and concyclic points, concurrent, parallel and perpendicular
lines, tangencies, equal segments and equal angles.`,
		SilenceUsage: true,
	}

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand())
	rootCmd.AddCommand(examples.NewExamplesCommand())

	return rootCmd
}
