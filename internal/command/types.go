package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Command represents a build tool invocation to be executed
type Command struct {
	Name     string   // Executable path (e.g., "/usr/local/bin/cordova")
	ToolArgs []string // Arguments that always precede the verb (e.g., "cordova" for "npx cordova")
	Verb     []string // Lifecycle keyword tokens (e.g., "platform", "add")
	Args     []string // Caller-supplied arguments
	WorkDir  string   // Working directory for this invocation
	Env      []string // Extra KEY=VALUE pairs appended to the inherited environment
}

// Argv returns the argument vector handed to the spawn primitive, without the executable.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.ToolArgs)+len(c.Verb)+len(c.Args))
	argv = append(argv, c.ToolArgs...)
	argv = append(argv, c.Verb...)
	argv = append(argv, c.Args...)
	return argv
}

// String renders the command as a single shell-invokable line:
// <executable-path> <verb> '<arg-1>' ... '<arg-n>'
func (c Command) String() string {
	parts := make([]string, 0, 1+len(c.ToolArgs)+len(c.Verb)+len(c.Args))
	parts = append(parts, quoteIfNeeded(c.Name))
	for _, a := range c.ToolArgs {
		parts = append(parts, quoteIfNeeded(a))
	}
	parts = append(parts, c.Verb...)
	for _, a := range c.Args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}

// Result represents the outcome of a single command execution.
// Err == nil means the command succeeded; otherwise it failed and Output
// holds whatever combined output was captured.
type Result struct {
	Command Command
	Output  string
	Err     error
}

// OK reports whether the command exited with status zero
func (r Result) OK() bool {
	return r.Err == nil
}

// ExitCode returns the exit status, -1 when the process never ran to completion
func (r Result) ExitCode() int {
	if r.Err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(r.Err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

// ExecutionResult represents the result of executing multiple commands
type ExecutionResult struct {
	Results []Result
}

// Failed returns the first failed result, if any
func (e *ExecutionResult) Failed() (Result, bool) {
	for _, r := range e.Results {
		if !r.OK() {
			return r, true
		}
	}
	return Result{}, false
}

// ExitError is the failure carried by a Result. Code is -1 when the
// executable could not be spawned or was killed.
type ExitError struct {
	Code  int
	Cause error
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("command did not run to completion: %v", e.Cause)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// Handler receives the result of an asynchronous execution. It is invoked exactly once.
type Handler func(Result)

// ShellExecutor abstracts the actual process spawning
type ShellExecutor interface {
	Execute(ctx context.Context, cmd Command) (string, error)
}

// Executor defines how commands are executed
type Executor interface {
	// Run blocks until the command exits and returns its result.
	Run(ctx context.Context, cmd Command) Result
	// Start spawns the command and returns immediately.
	Start(ctx context.Context, cmd Command, handler Handler) *Pending
	// Execute runs commands in order, stopping after the first failure.
	Execute(ctx context.Context, commands []Command) (*ExecutionResult, error)
}

// Failed builds the failure result of a command that could not be spawned
func Failed(cmd Command, cause error) Result {
	return Result{Command: cmd, Err: &ExitError{Code: -1, Cause: cause}}
}
