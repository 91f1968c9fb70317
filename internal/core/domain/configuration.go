package domain

// Configuration is the result of loading one task's declaration, whether
// it succeeded or failed. ConfigLoader always returns a Configuration per
// discovered path, never an error that discards the identity of the path
// that failed.
type Configuration struct {
	// ConfigPath is the absolute path to the configuration file.
	ConfigPath string
	// Name is the human-readable name declared by the configuration, if any.
	Name string
	// Watch lists absolute paths the task wants watched for changes.
	Watch []string
	// Ignore lists absolute paths excluded from the watch set.
	Ignore []string
	// Deps lists absolute paths to other configurations this task depends on.
	Deps []string
	// Err is set when the configuration could not be loaded or parsed.
	// When Err is set, Name/Watch/Ignore/Deps are meaningless.
	Err error
}

// Loaded reports whether the configuration was loaded successfully.
func (c *Configuration) Loaded() bool {
	return c.Err == nil
}
