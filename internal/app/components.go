package app

import (
	"github.com/ridgewaylabs/dagrun/internal/adapters/config"
	"github.com/ridgewaylabs/dagrun/internal/core/ports"
)

// Components is the root object resolved by graft.ExecuteFor at program
// start: every adapter the CLI needs, plus the App that wires them into
// Workspace runs.
type Components struct {
	App           *App
	Logger        ports.Logger
	ConfigLoader  *config.Loader
	ProcessRunner ports.ProcessRunner
}
