package utils

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// CommandExists checks if a command is available in the system PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// GetToolVersion gets the version of a tool
func GetToolVersion(tool string, versionFlag string) (string, error) {
	output, err := exec.Command(tool, versionFlag).Output()
	if err != nil {
		return "", err
	}

	// Extract version from output (simplified)
	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		return strings.TrimSpace(lines[0]), nil
	}
	return "", nil
}

// RunCommand runs a command under the given context and returns its
// stdout. On failure the captured stdout is still returned, since
// tools like smartctl exit non-zero for a failing drive while
// emitting usable JSON. Stderr is folded into the error so probe
// failures stay diagnosable from the run log.
func RunCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return output, errors.Wrapf(ctx.Err(), "%s timed out", name)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return output, errors.Wrapf(err, "%s: %s", name, msg)
		}
		return output, errors.Wrapf(err, "running %s", name)
	}
	return output, nil
}
