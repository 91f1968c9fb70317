// Package commands implements the CLI commands for the dagrun task runner.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ridgewaylabs/dagrun/internal/app"
	"github.com/ridgewaylabs/dagrun/internal/build"
)

// Application is the subset of *app.App the CLI depends on.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Watch(ctx context.Context, opts app.RunOptions) error
}

// CLI represents the command line interface for dagrun.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "dagrun",
		Short:         "A dependency-aware task runner for developer workstations",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))

	c := &CLI{app: a, rootCmd: rootCmd}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func runOptionsFromFlags(cmd *cobra.Command, roots []string) app.RunOptions {
	jobs, _ := cmd.Flags().GetInt("jobs")
	envFile, _ := cmd.Flags().GetString("env-file")
	forceColors, _ := cmd.Flags().GetBool("force-colors")
	return app.RunOptions{
		Roots:       roots,
		Jobs:        jobs,
		EnvFile:     envFile,
		ForceColors: forceColors,
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("jobs", "j", 0, "Maximum concurrent task executions (0 means unlimited)")
	cmd.Flags().String("env-file", "", "Path to a KEY=VALUE env file injected into every task")
	cmd.Flags().Bool("force-colors", false, "Tell tasks to force colored output")
}
