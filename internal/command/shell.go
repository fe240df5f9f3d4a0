package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"
)

// waitDelay bounds how long output pipes are drained after the process is
// killed, since grandchildren may still hold them open.
const waitDelay = 2 * time.Second

// realShellExecutor implements ShellExecutor using os/exec.
// Arguments go straight to the process as argv; no shell is involved.
type realShellExecutor struct{}

// NewRealShellExecutor creates a new shell executor that executes real commands
func NewRealShellExecutor() ShellExecutor {
	return &realShellExecutor{}
}

// Execute runs the command in cmd.WorkDir and returns its combined output as written.
// A non-zero exit and a failure to spawn both come back as *ExitError.
func (s *realShellExecutor) Execute(ctx context.Context, cmd Command) (string, error) {
	// #nosec G204 - the executable is the configured build tool
	c := exec.CommandContext(ctx, cmd.Name, cmd.Argv()...)
	c.Dir = cmd.WorkDir
	c.WaitDelay = waitDelay

	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var buf bytes.Buffer
	c.Stdout = &buf
	c.Stderr = &buf

	err := c.Run()
	output := buf.String()
	if err == nil {
		return output, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return output, &ExitError{Code: exitErr.ExitCode(), Cause: err}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = errors.Join(err, ctxErr)
	}
	return output, &ExitError{Code: -1, Cause: err}
}
