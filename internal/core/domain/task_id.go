package domain

// TaskID is the stable identifier of a task. In practice it is the
// absolute path of the task's configuration file. It is interned so that
// the graph, the workspace, and events can compare and store ids cheaply.
type TaskID = InternedString

// NewTaskID interns a configuration path as a TaskID.
func NewTaskID(configPath string) TaskID {
	return NewInternedString(configPath)
}
