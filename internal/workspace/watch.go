package workspace

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ridgewaylabs/dagrun/internal/core/domain"
	"github.com/ridgewaylabs/dagrun/internal/core/ports"
)

// conventionalSiblings are files watched alongside a configuration even
// when it does not declare them, on the assumption that a project's
// package manifest or lockfile affects its build as much as its own
// script.
var conventionalSiblings = []string{"package.json", "package-lock.json", "go.mod"}

// armWatcher (re)starts p's filesystem watcher against the union of its
// declared watch list, its own configuration path, and its conventional
// siblings, rooted at the configuration's directory. A project with no
// configuration (a load error) is left unwatched.
func (w *Workspace) armWatcher(p *Project) {
	cfg := p.configuration()
	if cfg == nil || !cfg.Loaded() {
		return
	}

	if old := p.detachWatcher(); old != nil {
		_ = old.Stop()
	}

	watched, ignore := watchTargets(cfg)

	watcher, err := w.watcherFactory()
	if err != nil {
		w.logger.Error(err)
		return
	}

	root := filepath.Dir(cfg.ConfigPath)
	if err := watcher.Start(context.Background(), root); err != nil {
		w.logger.Error(err)
		return
	}

	p.attachWatcher(watcher)
	go w.watchEvents(p, watcher, watched, ignore)
}

// watchTargets returns the absolute paths a configuration's changes
// should be judged against, and the ignore glob patterns that exclude a
// changed path from triggering an update regardless of being watched.
func watchTargets(cfg *domain.Configuration) (watched map[string]struct{}, ignore []string) {
	watched = make(map[string]struct{}, len(cfg.Watch)+len(conventionalSiblings)+1)
	watched[cfg.ConfigPath] = struct{}{}
	for _, path := range cfg.Watch {
		watched[path] = struct{}{}
	}
	dir := filepath.Dir(cfg.ConfigPath)
	for _, sibling := range conventionalSiblings {
		watched[filepath.Join(dir, sibling)] = struct{}{}
	}
	return watched, cfg.Ignore
}

// watchEvents drains watcher's events for as long as the project still
// owns it, scheduling an update for changes within the watched set that
// no ignore pattern excludes.
func (w *Workspace) watchEvents(p *Project, watcher ports.Watcher, watched map[string]struct{}, ignore []string) {
	for ev := range watcher.Events() {
		if !matchesWatchedSet(ev.Path, watched) {
			continue
		}
		if matchesIgnore(ev.Path, ignore) {
			continue
		}

		select {
		case <-w.stopped:
			return
		default:
		}

		cfg := p.configuration()
		needsReread := cfg != nil && cfg.Loaded() && ev.Path == cfg.ConfigPath
		w.scheduleUpdate(p.TaskID(), needsReread)
	}
}

// matchesWatchedSet reports whether path is itself a declared/conventional
// watch target, or lives underneath one that is a directory.
func matchesWatchedSet(path string, watched map[string]struct{}) bool {
	if _, ok := watched[path]; ok {
		return true
	}
	for target := range watched {
		if strings.HasPrefix(path, target+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// matchesIgnore reports whether path matches any doublestar glob pattern
// in ignore.
func matchesIgnore(path string, ignore []string) bool {
	for _, pattern := range ignore {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
		if base := filepath.Base(path); base != path {
			if ok, err := doublestar.Match(pattern, base); err == nil && ok {
				return true
			}
		}
	}
	return false
}
