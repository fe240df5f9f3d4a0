package cordova

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/satococoa/cdv/internal/command"
)

// DefaultToolName is looked up on PATH when no bundled tool is installed
const DefaultToolName = "cordova"

// Variables to allow mocking in tests
var (
	osExecutable = os.Executable
	lookPath     = exec.LookPath
)

// BundledToolPath is where a bundled cordova lives relative to the installation directory
func BundledToolPath(installDir string) string {
	return filepath.Join(installDir, "node_modules", "cordova", "bin", "cordova")
}

// LocateTool finds the cordova executable: the copy bundled next to this
// program's executable if there is one, otherwise cordova from PATH.
func LocateTool() command.Tool {
	if exe, err := osExecutable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		bundled := BundledToolPath(filepath.Dir(exe))
		if info, err := os.Stat(bundled); err == nil && !info.IsDir() {
			return command.Tool{Path: bundled}
		}
	}

	if found, err := lookPath(DefaultToolName); err == nil {
		return command.Tool{Path: found}
	}
	return command.Tool{Path: DefaultToolName}
}
