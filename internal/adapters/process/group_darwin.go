//go:build darwin

package process

import (
	"os/exec"
	"strconv"
	"strings"
)

// readProcessTable enumerates the system process table via ps, since
// Darwin has no /proc filesystem to scan directly.
func readProcessTable() ([]processInfo, error) {
	out, err := exec.Command("ps", "-axo", "pid=,ppid=,pgid=").Output() //nolint:gosec // fixed args, no user input
	if err != nil {
		return nil, err
	}

	var table []processInfo
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		pid, err1 := strconv.Atoi(fields[0])
		ppid, err2 := strconv.Atoi(fields[1])
		pgrp, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		table = append(table, processInfo{pid: pid, ppid: ppid, pgrp: pgrp})
	}
	return table, nil
}
