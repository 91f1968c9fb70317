// Package config discovers the transitive task graph by spawning each
// configuration in a helper probe mode and parsing its declared options.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
	"github.com/ridgewaylabs/dagrun/internal/core/ports"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// maxConcurrentProbes bounds how many configuration probes run at once
// during recursive dependency discovery.
const maxConcurrentProbes = 8

// Loader implements ports.ConfigLoader by spawning each configuration
// with the dump-configuration marker set and parsing its stdout.
type Loader struct {
	prober    ports.Prober
	watchMode bool
}

// NewLoader creates a Loader. watchMode is forwarded to probes via the
// watch-mode marker so a configuration can tailor its declared deps.
func NewLoader(prober ports.Prober, watchMode bool) *Loader {
	return &Loader{prober: prober, watchMode: watchMode}
}

// SetWatchMode updates whether future probes carry the watch-mode
// marker, letting a single graft-wired Loader be reused by both
// "dagrun run" and "dagrun watch" instead of requiring a second node.
func (l *Loader) SetWatchMode(enable bool) {
	l.watchMode = enable
}

// Load discovers every configuration reachable from roots via their deps
// field, recursively, issuing probes in parallel.
func (l *Loader) Load(roots []string) (map[string]*domain.Configuration, error) {
	results := newResultSet()

	group, ctx := errgroup.WithContext(context.Background())
	group.SetLimit(maxConcurrentProbes)

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to resolve root configuration path")
		}
		l.enqueue(ctx, group, results, abs)
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results.snapshot(), nil
}

// enqueue schedules a probe for configPath unless it has already been
// claimed, recursively enqueuing its declared deps once loaded.
func (l *Loader) enqueue(ctx context.Context, group *errgroup.Group, results *resultSet, configPath string) {
	if !results.claim(configPath) {
		return
	}

	group.Go(func() error {
		cfg := l.loadOne(ctx, configPath)
		results.set(configPath, cfg)

		if cfg.Err != nil {
			return nil
		}
		for _, dep := range cfg.Deps {
			l.enqueue(ctx, group, results, dep)
		}
		return nil
	})
}

// loadOne probes a single configuration and resolves its watch/ignore/deps
// paths relative to its own directory.
func (l *Loader) loadOne(ctx context.Context, configPath string) *domain.Configuration {
	if _, err := os.Stat(configPath); err != nil {
		return &domain.Configuration{
			ConfigPath: configPath,
			Err:        zerr.Wrap(domain.ErrConfigNotFound, configPath),
		}
	}

	dir := filepath.Dir(configPath)
	env := append(os.Environ(), domain.EnvDumpConfiguration+"=1")
	if l.watchMode {
		env = append(env, domain.EnvWatchMode+"=1")
	}

	result, err := l.prober.Probe(ctx, dir, configPath, nil, env)
	if err != nil {
		return &domain.Configuration{
			ConfigPath: configPath,
			Err:        zerr.Wrap(err, "failed to spawn configuration probe"),
		}
	}
	if result.ExitCode != 0 {
		return &domain.Configuration{
			ConfigPath: configPath,
			Err: zerr.With(zerr.Wrap(domain.ErrProbeFailed, configPath),
				"output", result.Combined),
		}
	}

	var decl declaration
	if err := json.Unmarshal([]byte(result.Stdout), &decl); err != nil {
		return &domain.Configuration{
			ConfigPath: configPath,
			Err:        zerr.Wrap(domain.ErrProbeUnparseable, fmt.Sprintf("%s: %v", configPath, err)),
		}
	}

	return &domain.Configuration{
		ConfigPath: configPath,
		Name:       decl.Name,
		Watch:      resolveAll(dir, decl.Watch),
		Ignore:     resolveAll(dir, decl.Ignore),
		Deps:       resolveAll(dir, decl.Deps),
	}
}

func resolveAll(dir string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
		} else {
			out[i] = filepath.Join(dir, p)
		}
	}
	return out
}

// resultSet is a concurrency-safe map from configuration path to its
// loaded-or-failed result, with claim-before-load semantics so a
// dependency discovered by two different probes is only ever loaded once.
type resultSet struct {
	mu      sync.Mutex
	claimed map[string]bool
	m       map[string]*domain.Configuration
}

func newResultSet() *resultSet {
	return &resultSet{
		claimed: make(map[string]bool),
		m:       make(map[string]*domain.Configuration),
	}
}

func (r *resultSet) claim(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claimed[path] {
		return false
	}
	r.claimed[path] = true
	return true
}

func (r *resultSet) set(path string, cfg *domain.Configuration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[path] = cfg
}

func (r *resultSet) snapshot() map[string]*domain.Configuration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.Configuration, len(r.m))
	for k, v := range r.m {
		out[k] = v
	}
	return out
}
