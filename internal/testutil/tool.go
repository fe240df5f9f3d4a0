// Package testutil provides helpers shared across tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const scriptPermissions = 0o755

// FakeToolExitEnv selects the exit status of a recording tool
const FakeToolExitEnv = "CDV_FAKE_EXIT"

// FakeTool writes an executable shell script named cordova into a temporary
// directory and returns its path. body is the script after the shebang.
func FakeTool(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "cordova")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), scriptPermissions); err != nil {
		t.Fatalf("failed to write fake tool: %v", err)
	}
	return path
}

// RecordingTool returns a fake tool that appends one line per invocation to
// the returned log: the working directory followed by each argument, separated
// by tabs. It prints "ok: <args>" and exits with $CDV_FAKE_EXIT (default 0),
// printing "failed: <args>" to stderr when non-zero.
func RecordingTool(t *testing.T) (toolPath, logPath string) {
	t.Helper()

	logPath = filepath.Join(t.TempDir(), "invocations.log")
	body := `line="$(pwd)"
for a in "$@"; do line="$line	$a"; done
printf '%s\n' "$line" >> '` + logPath + `'
code="${` + FakeToolExitEnv + `:-0}"
if [ "$code" != "0" ]; then
  echo "failed: $*" 1>&2
  exit "$code"
fi
echo "ok: $*"`
	return FakeTool(t, body), logPath
}

// Invocations reads the log written by RecordingTool
func Invocations(t *testing.T, logPath string) [][]string {
	t.Helper()

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read invocation log: %v", err)
	}

	var calls [][]string
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "" {
			continue
		}
		calls = append(calls, strings.Split(line, "\t"))
	}
	return calls
}
