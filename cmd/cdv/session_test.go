package main

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/satococoa/cdv/internal/command"
	"github.com/satococoa/cdv/internal/config"
	"github.com/satococoa/cdv/internal/testutil"
)

// withParsedRoot runs action inside a parsed root command so flags resolve
func withParsedRoot(t *testing.T, args []string, action func(cmd *cli.Command)) {
	t.Helper()

	app := newApp()
	app.Commands = nil
	app.Action = func(_ context.Context, cmd *cli.Command) error {
		action(cmd)
		return nil
	}
	require.NoError(t, app.Run(context.Background(), append([]string{"cdv"}, args...)))
}

func stubLookPath(t *testing.T, fn func(string) (string, error)) {
	t.Helper()
	prev := lookPath
	lookPath = fn
	t.Cleanup(func() { lookPath = prev })
}

func TestResolveTool(t *testing.T) {
	t.Run("should look up bare names on PATH", func(t *testing.T) {
		stubLookPath(t, func(name string) (string, error) { return "/usr/local/bin/" + name, nil })
		cfg := &config.Config{Cordova: config.Cordova{Bin: "npx cordova"}}

		withParsedRoot(t, nil, func(cmd *cli.Command) {
			tool, err := resolveTool(cmd, cfg)

			require.NoError(t, err)
			assert.Equal(t, command.Tool{Path: "npx", Args: []string{"cordova"}}, tool)
		})
	})

	t.Run("should fail when a bare name is not on PATH", func(t *testing.T) {
		stubLookPath(t, func(string) (string, error) { return "", exec.ErrNotFound })

		withParsedRoot(t, []string{"--cordova", "cordova-nightly"}, func(cmd *cli.Command) {
			_, err := resolveTool(cmd, &config.Config{})

			assert.ErrorContains(t, err, "cordova executable not found: cordova-nightly")
		})
	})

	t.Run("should make relative paths absolute", func(t *testing.T) {
		tool := testutil.FakeTool(t, "true")
		dir := filepath.Dir(tool)
		t.Chdir(dir)

		withParsedRoot(t, []string{"--cordova", "./cordova"}, func(cmd *cli.Command) {
			resolved, err := resolveTool(cmd, &config.Config{})

			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(resolved.Path))
			assert.Equal(t, "cordova", filepath.Base(resolved.Path))
		})
	})

	t.Run("should reject a directory", func(t *testing.T) {
		dir := t.TempDir()

		withParsedRoot(t, []string{"--cordova", dir}, func(cmd *cli.Command) {
			_, err := resolveTool(cmd, &config.Config{})

			assert.ErrorContains(t, err, "cordova executable not found")
		})
	})
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		args     []string
		expected logrus.Level
	}{
		{"default", "", nil, logrus.WarnLevel},
		{"from environment", "info", nil, logrus.InfoLevel},
		{"invalid environment", "chatty", nil, logrus.WarnLevel},
		{"verbose wins", "error", []string{"--verbose"}, logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envLogLevel, tt.logLevel)

			withParsedRoot(t, tt.args, func(cmd *cli.Command) {
				assert.Equal(t, tt.expected, newLogger(cmd).GetLevel())
			})
		})
	}
}

func TestOpenSession(t *testing.T) {
	t.Run("should take the timeout from configuration", func(t *testing.T) {
		dir := newProjectDir(t)
		tool, _ := testutil.RecordingTool(t)
		writeConfig(t, dir, "cordova:\n  timeout: 90s\n")

		withParsedRoot(t, []string{"--project", dir, "--cordova", tool}, func(cmd *cli.Command) {
			s, err := openSession(cmd, true)

			require.NoError(t, err)
			assert.Equal(t, dir, s.root)
			assert.Equal(t, dir, s.project.Path())
			assert.Equal(t, tool, s.project.Tool().Path)
			assert.Equal(t, "1m30s", s.timeout.String())
		})
	})

	t.Run("should let the flag override the configured timeout", func(t *testing.T) {
		dir := newProjectDir(t)
		tool, _ := testutil.RecordingTool(t)
		writeConfig(t, dir, "cordova:\n  timeout: 90s\n")

		withParsedRoot(t, []string{"--project", dir, "--cordova", tool, "--timeout", "0s"}, func(cmd *cli.Command) {
			s, err := openSession(cmd, true)

			require.NoError(t, err)
			assert.Zero(t, s.timeout)

			ctx, cancel := s.invocation(context.Background())
			defer cancel()
			_, hasDeadline := ctx.Deadline()
			assert.False(t, hasDeadline)
		})
	})

	t.Run("should report a missing env file", func(t *testing.T) {
		dir := newProjectDir(t)
		tool, _ := testutil.RecordingTool(t)
		writeConfig(t, dir, "cordova:\n  env_file: missing.env\n")

		withParsedRoot(t, []string{"--project", dir, "--cordova", tool}, func(cmd *cli.Command) {
			_, err := openSession(cmd, true)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "env file")
		})
	})
}
