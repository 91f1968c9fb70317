// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/ridgewaylabs/dagrun/internal/adapters/config"
	_ "github.com/ridgewaylabs/dagrun/internal/adapters/logger"
	_ "github.com/ridgewaylabs/dagrun/internal/adapters/process"
	_ "github.com/ridgewaylabs/dagrun/internal/adapters/watcher"
	// Register the application root node.
	_ "github.com/ridgewaylabs/dagrun/internal/app"
)
