package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/satococoa/cdv/internal/config"
)

const (
	directoryPermissions = 0o755

	EnvProjectPath = "CDV_PROJECT_PATH"
	EnvPlatform    = "CDV_PLATFORM"
)

// Executor runs post-build hooks for one project
type Executor struct {
	config      *config.Config
	projectRoot string
}

// NewExecutor creates a new hook executor
func NewExecutor(cfg *config.Config, projectRoot string) *Executor {
	return &Executor{
		config:      cfg,
		projectRoot: projectRoot,
	}
}

// ExecutePostBuildHooks runs every post-build hook in order for platform,
// streaming progress and command output to w. It stops at the first failure.
func (e *Executor) ExecutePostBuildHooks(ctx context.Context, w io.Writer, platform string) error {
	if !e.config.HasHooks() {
		return nil
	}

	for i, hook := range e.config.Hooks.PostBuild {
		if err := e.executeHook(ctx, w, &hook, platform); err != nil {
			return fmt.Errorf("failed to execute hook %d: %w", i+1, err)
		}
	}

	return nil
}

func (e *Executor) executeHook(ctx context.Context, w io.Writer, hook *config.Hook, platform string) error {
	switch hook.Type {
	case config.HookTypeCopy:
		return e.executeCopyHook(w, hook)
	case config.HookTypeCommand:
		return e.executeCommandHook(ctx, w, hook, platform)
	default:
		return fmt.Errorf("unknown hook type: %s", hook.Type)
	}
}

func (e *Executor) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.projectRoot, path)
}

// executeCopyHook copies a build artifact; both ends are relative to the project root
func (e *Executor) executeCopyHook(w io.Writer, hook *config.Hook) error {
	srcPath := e.resolve(hook.From)
	dstPath := e.resolve(hook.To)

	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("source path does not exist: %s", srcPath)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), directoryPermissions); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	fmt.Fprintf(w, "  Copying: %s → %s\n", hook.From, hook.To)

	if srcInfo.IsDir() {
		return copyDir(srcPath, dstPath)
	}
	return copyFile(srcPath, dstPath)
}

func (e *Executor) executeCommandHook(ctx context.Context, w io.Writer, hook *config.Hook, platform string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		// #nosec G204 - Commands come from project configuration file controlled by developer
		cmd = exec.CommandContext(ctx, "cmd", "/c", hook.Command)
	} else {
		// #nosec G204 - Commands come from project configuration file controlled by developer
		cmd = exec.CommandContext(ctx, "sh", "-c", hook.Command)
	}

	workDir := e.projectRoot
	if hook.WorkDir != "" {
		workDir = e.resolve(hook.WorkDir)
	}
	cmd.Dir = workDir

	cmd.Env = os.Environ()
	for key, value := range hook.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("%s=%s", EnvProjectPath, e.projectRoot),
		fmt.Sprintf("%s=%s", EnvPlatform, platform))

	fmt.Fprintf(w, "  Running: %s\n", hook.Command)

	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	srcInfo, err := sourceFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to get source file info: %w", err)
	}

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}

	return destFile.Close()
}

func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			err = copyDir(srcPath, dstPath)
		} else {
			err = copyFile(srcPath, dstPath)
		}
		if err != nil {
			return err
		}
	}

	return nil
}
