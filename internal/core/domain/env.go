package domain

// Environment variable markers observed by a task's configuration
// script and by the helper subprocess ConfigLoader spawns to probe it.
const (
	// EnvDumpConfiguration, when set, tells a configuration to print its
	// declared options as a single line of structured text and exit
	// successfully instead of running.
	EnvDumpConfiguration = "DAGRUN_DUMP_CONFIGURATION"
	// EnvRunnerMode is set when the workspace spawns a task; its absence
	// tells a task it is being run standalone.
	EnvRunnerMode = "DAGRUN_RUNNER_MODE"
	// EnvWatchMode is set when the workspace is in watch mode.
	EnvWatchMode = "DAGRUN_WATCH_MODE"
	// EnvForceColor is set when force_colors is requested.
	EnvForceColor = "DAGRUN_FORCE_COLOR"
)

// IPCSentinel is the single text message a child process can write to
// its IPC pipe to declare readiness, marking the task successful even if
// the process keeps running.
const IPCSentinel = "task-done"
