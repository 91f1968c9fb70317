//go:build linux || darwin

package process

import (
	"strconv"
	"syscall"
)

// killProcessGroup sends sig to the negation of pid's process group,
// which signals every process in that group. Descendants running under a
// different group (a child that called setpgid itself) are found by
// descendantProcessGroups and their groups are signalled too.
func killProcessGroup(pid int, sig syscall.Signal) error {
	groups := map[int]struct{}{}
	for _, g := range descendantProcessGroups(pid) {
		groups[g] = struct{}{}
	}
	groups[processGroupOf(pid)] = struct{}{}

	var firstErr error
	for g := range groups {
		if err := syscall.Kill(-g, sig); err != nil && !isAlreadyGone(err) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func isAlreadyGone(err error) bool {
	return err == syscall.ESRCH
}

func processGroupOf(pid int) int {
	pgid, err := syscall.Getpgid(pid)
	if err != nil || pgid == 0 {
		return pid
	}
	return pgid
}

// processInfo is one row of the system process table, enough to rebuild
// the descendant tree and resolve each descendant's process group.
type processInfo struct {
	pid, ppid, pgrp int
}

// descendantProcessGroups walks the process table (platform-specific
// enumeration: /proc on Linux, ps on Darwin) and returns the process-group
// ids of every descendant of pid reachable via ppid links, falling back to
// a descendant's own pid when its pgrp is zero. pid's own group is not
// included, and an id can appear more than once.
func descendantProcessGroups(pid int) []int {
	table, err := readProcessTable()
	if err != nil {
		return nil
	}

	childrenOf := make(map[int][]processInfo)
	for _, p := range table {
		childrenOf[p.ppid] = append(childrenOf[p.ppid], p)
	}

	var groups []int
	seen := map[int]bool{}
	var walk func(pid int)
	walk = func(pid int) {
		if seen[pid] {
			return
		}
		seen[pid] = true
		for _, child := range childrenOf[pid] {
			group := child.pgrp
			if group == 0 {
				group = child.pid
			}
			groups = append(groups, group)
			walk(child.pid)
		}
	}
	walk(pid)
	return groups
}

func formatPid(pid int) string {
	return strconv.Itoa(pid)
}
