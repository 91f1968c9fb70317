package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [roots...]",
		Short: "Load, build, and run tasks once to completion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptionsFromFlags(cmd, args)
			return c.app.Run(cmd.Context(), opts)
		},
	}
	addRunFlags(cmd)
	return cmd
}
