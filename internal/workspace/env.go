package workspace

import (
	"bufio"
	"os"
	"strings"
)

// baseEnv returns the parent environment the workspace was started with,
// exactly the inherited half of "environment inherits parent env, plus
// runner-mode and ... markers" from the child-spawn step.
func (o Options) baseEnv() []string {
	return os.Environ()
}

// readEnvFile parses a simple KEY=VALUE-per-line env file, the
// node-options equivalent of dotenv injection. Malformed or blank lines
// and comments (#) are skipped; a missing file yields no entries.
func readEnvFile(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, "=") {
			continue
		}
		out = append(out, line)
	}
	return out
}
