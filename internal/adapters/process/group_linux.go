//go:build linux

package process

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// readProcessTable enumerates /proc/<pid>/stat for every numeric entry in
// /proc, extracting pid, ppid and pgrp.
func readProcessTable() ([]processInfo, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, err
	}

	table := make([]processInfo, 0, len(entries))
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		info, ok := readStat(pid)
		if ok {
			table = append(table, info)
		}
	}
	return table, nil
}

// readStat parses the fields of /proc/<pid>/stat needed to rebuild the
// process tree. The comm field (2nd field) may contain spaces or
// parentheses, so fields are read starting after its closing paren.
func readStat(pid int) (processInfo, bool) {
	data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "stat"))
	if err != nil {
		return processInfo{}, false
	}

	closeParen := strings.LastIndexByte(string(data), ')')
	if closeParen < 0 {
		return processInfo{}, false
	}
	fields := strings.Fields(string(data)[closeParen+1:])
	// fields[0] = state, fields[1] = ppid, fields[2] = pgrp (0-indexed after comm).
	if len(fields) < 3 {
		return processInfo{}, false
	}
	ppid, err1 := strconv.Atoi(fields[1])
	pgrp, err2 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil {
		return processInfo{}, false
	}
	return processInfo{pid: pid, ppid: ppid, pgrp: pgrp}, true
}
