package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [roots...]",
		Short: "Keep tasks running, re-running on file changes, until interrupted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptionsFromFlags(cmd, args)
			opts.Watch = true
			return c.app.Watch(cmd.Context(), opts)
		},
	}
	addRunFlags(cmd)
	return cmd
}
