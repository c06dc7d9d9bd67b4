package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mutant/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run the named analysis tasks",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.app.Run(cmd.Context(), args, runOptions(cmd))
		},
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("trace", false, "Log the timing of every task")
	cmd.Flags().Bool("no-record", false, "Do not record the outcome of the run")
}

func runOptions(cmd *cobra.Command) app.RunOptions {
	trace, _ := cmd.Flags().GetBool("trace")
	noRecord, _ := cmd.Flags().GetBool("no-record")
	return app.RunOptions{
		Trace:    trace,
		NoRecord: noRecord,
	}
}
