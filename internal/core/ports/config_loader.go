package ports

import "github.com/ridgewaylabs/dagrun/internal/core/domain"

// ConfigLoader discovers the transitive configuration graph starting from a
// set of root configuration paths.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers every configuration reachable from roots via their deps
	// field, recursively. It returns a map from absolute configuration path
	// to the loaded (or failed) Configuration, and never omits a path it
	// attempted to load.
	Load(roots []string) (map[string]*domain.Configuration, error)
}
