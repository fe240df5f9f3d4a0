package command

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// executor implements Executor on top of a ShellExecutor
type executor struct {
	shell  ShellExecutor
	logger *logrus.Logger
}

// Option configures an executor
type Option func(*executor)

// WithLogger sets the logger used for execution tracing
func WithLogger(logger *logrus.Logger) Option {
	return func(e *executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor creates a new executor with the given shell executor
func NewExecutor(shell ShellExecutor, opts ...Option) Executor {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	e := &executor{
		shell:  shell,
		logger: silent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewRealExecutor creates an executor that spawns real processes
func NewRealExecutor(opts ...Option) Executor {
	return NewExecutor(NewRealShellExecutor(), opts...)
}

// Run executes cmd and blocks the calling goroutine until the process exits.
func (e *executor) Run(ctx context.Context, cmd Command) Result {
	log := e.logger.WithFields(logrus.Fields{
		"run_id":   uuid.New().String(),
		"command":  cmd.String(),
		"work_dir": cmd.WorkDir,
	})
	log.Debug("running command")

	started := time.Now()
	output, err := e.shell.Execute(ctx, cmd)
	if err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			err = &ExitError{Code: -1, Cause: err}
		}
	}

	result := Result{
		Command: cmd,
		Output:  output,
		Err:     err,
	}

	log = log.WithField("duration", time.Since(started))
	if result.OK() {
		log.Debug("command succeeded")
	} else {
		log.WithField("exit_code", result.ExitCode()).WithError(err).Warn("command failed")
	}
	return result
}

// Start spawns cmd without blocking. When the process exits, handler (if any)
// is called once with the result and then the returned Pending completes.
func (e *executor) Start(ctx context.Context, cmd Command, handler Handler) *Pending {
	p := newPending()
	go func() {
		result := e.Run(ctx, cmd)
		if handler != nil {
			handler(result)
		}
		p.complete(result)
	}()
	return p
}

// Execute executes the given commands in sequence and returns the results.
// Execution stops after the first failed command.
func (e *executor) Execute(ctx context.Context, commands []Command) (*ExecutionResult, error) {
	result := &ExecutionResult{
		Results: make([]Result, 0, len(commands)),
	}

	for _, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		r := e.Run(ctx, cmd)
		result.Results = append(result.Results, r)
		if !r.OK() {
			break
		}
	}

	return result, nil
}
