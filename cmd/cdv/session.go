package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/satococoa/cdv/internal/command"
	"github.com/satococoa/cdv/internal/config"
	"github.com/satococoa/cdv/internal/cordova"
	"github.com/satococoa/cdv/internal/errors"
)

const projectMarker = "config.xml"

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// Variables to allow mocking in tests
var (
	lookPath    = exec.LookPath
	newExecutor = func(logger *logrus.Logger) command.Executor {
		return command.NewRealExecutor(command.WithLogger(logger))
	}
)

// session is everything a command needs to drive one project
type session struct {
	root    string
	config  *config.Config
	project *cordova.Project
	timeout time.Duration
	logger  *logrus.Logger
	out     io.Writer
}

// openSession resolves the project directory, loads .cdv.yml and binds a
// cordova.Project. When requireProject is set the directory must already
// hold a Cordova project.
func openSession(cmd *cli.Command, requireProject bool) (*session, error) {
	root, err := filepath.Abs(cmd.String(flagProject))
	if err != nil {
		return nil, errors.DirectoryAccessFailed("resolve project", cmd.String(flagProject), err)
	}

	if requireProject {
		if _, err := os.Stat(filepath.Join(root, projectMarker)); err != nil {
			return nil, errors.NotACordovaProject(root)
		}
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return nil, errors.ConfigLoadFailed(filepath.Join(root, config.ConfigFileName), err)
	}

	env, err := cfg.Environ(root)
	if err != nil {
		return nil, errors.ConfigLoadFailed(filepath.Join(root, config.ConfigFileName), err)
	}

	tool, err := resolveTool(cmd, cfg)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd)
	timeout := cfg.Timeout()
	if cmd.IsSet(flagTimeout) {
		timeout = cmd.Duration(flagTimeout)
	}

	project := cordova.New(root,
		cordova.WithTool(tool),
		cordova.WithExecutor(newExecutor(logger)),
		cordova.WithEnv(env...),
	)

	logger.WithFields(logrus.Fields{
		"project": root,
		"tool":    tool.String(),
		"timeout": timeout,
	}).Debug("session opened")

	return &session{
		root:    root,
		config:  cfg,
		project: project,
		timeout: timeout,
		logger:  logger,
		out:     writer(cmd),
	}, nil
}

// resolveTool picks the cordova executable: --cordova, then cordova.bin, then
// the bundled or PATH copy. The executable must exist.
func resolveTool(cmd *cli.Command, cfg *config.Config) (command.Tool, error) {
	var tool command.Tool
	if bin := cmd.String(flagCordova); bin != "" {
		parsed, err := command.ParseTool(bin)
		if err != nil {
			return command.Tool{}, errors.ToolNotFound(bin)
		}
		tool = parsed
	} else if configured, ok, err := cfg.Tool(); err != nil {
		return command.Tool{}, errors.ToolNotFound(cfg.Cordova.Bin)
	} else if ok {
		tool = configured
	} else {
		tool = cordova.LocateTool()
	}

	if strings.ContainsRune(tool.Path, filepath.Separator) {
		abs, err := filepath.Abs(tool.Path)
		if err != nil {
			return command.Tool{}, errors.ToolNotFound(tool.Path)
		}
		if info, err := os.Stat(abs); err != nil || info.IsDir() {
			return command.Tool{}, errors.ToolNotFound(tool.Path)
		}
		tool.Path = abs
		return tool, nil
	}
	if _, err := lookPath(tool.Path); err != nil {
		return command.Tool{}, errors.ToolNotFound(tool.Path)
	}
	return tool, nil
}

// invocation bounds one cordova run by the configured timeout
func (s *session) invocation(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// run executes one façade operation under the session timeout and reports it
func (s *session) run(ctx context.Context, label string, op func(context.Context) command.Result) error {
	ctx, cancel := s.invocation(ctx)
	defer cancel()
	return s.report(label, op(ctx))
}

// report prints the tool output and a status line; a failure becomes a CLI error
func (s *session) report(label string, r command.Result) error {
	if !r.OK() {
		return resultError(r)
	}
	s.printOutput(r.Output)
	fmt.Fprintf(s.out, "%s %s\n", green("✓"), label)
	return nil
}

// printOutput echoes tool output without its surrounding blank lines
func (s *session) printOutput(output string) {
	if output = strings.TrimSpace(output); output != "" {
		fmt.Fprintln(s.out, output)
	}
}

// saveConfig writes the session configuration back to .cdv.yml
func (s *session) saveConfig() error {
	if err := config.SaveConfig(s.root, s.config); err != nil {
		return errors.ConfigSaveFailed(filepath.Join(s.root, config.ConfigFileName), err)
	}
	return nil
}

func resultError(r command.Result) error {
	return errors.CommandFailed(r.Command.String(), r.Output, r.ExitCode())
}

func newLogger(cmd *cli.Command) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(errWriter(cmd))
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level := logrus.WarnLevel
	if parsed, err := logrus.ParseLevel(os.Getenv(envLogLevel)); err == nil {
		level = parsed
	}
	if cmd.Bool(flagVerbose) {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
