package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrConfigNotFound is returned when a root configuration path does not exist.
	ErrConfigNotFound = zerr.New("configuration path not found")
	// ErrProbeFailed is returned when a configuration probe exits non-zero.
	ErrProbeFailed = zerr.New("configuration probe exited with a non-zero status")
	// ErrProbeUnparseable is returned when a configuration probe's stdout is not valid structured output.
	ErrProbeUnparseable = zerr.New("configuration probe output could not be parsed")
	// ErrWorkspaceStopped is returned by operations attempted after Workspace.Stop.
	ErrWorkspaceStopped = zerr.New("workspace has been stopped")
)

// CycleError is returned by set_tasks when the proposed adjacency contains a
// cycle. Cycle is a rotation of the cycle's ids in the order they were
// discovered by the iterative DFS.
type CycleError struct {
	Cycle []TaskID
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	names := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		names[i] = id.String()
	}
	return fmt.Sprintf("cycle detected: %s", strings.Join(names, " -> "))
}

// Message implements the messager interface the logging adapter uses to
// walk error chains without re-printing wrapped causes.
func (e *CycleError) Message() string {
	return e.Error()
}
