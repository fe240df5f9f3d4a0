// Package cordova binds a Cordova application directory to the lifecycle
// operations of the cordova command-line tool.
//
// Every operation comes in two forms. The plain form blocks the calling
// goroutine until the tool exits and returns its command.Result. The Async
// form returns a *command.Pending immediately and, when the tool exits,
// invokes the optional handler exactly once before the Pending completes.
//
// Every invocation runs with the project path as its working directory,
// passed per process; the process-wide working directory is never touched.
package cordova

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/satococoa/cdv/internal/command"
)

const directoryPermissions = 0o755

// Project is a Cordova application rooted at a filesystem path
type Project struct {
	path     string
	tool     command.Tool
	executor command.Executor
	env      []string
}

// Option configures a Project
type Option func(*Project)

// WithTool sets the cordova executable used for every operation
func WithTool(tool command.Tool) Option {
	return func(p *Project) {
		p.tool = tool
	}
}

// WithExecutor sets the executor that spawns the tool
func WithExecutor(executor command.Executor) Option {
	return func(p *Project) {
		p.executor = executor
	}
}

// WithEnv adds KEY=VALUE pairs to the tool's environment
func WithEnv(env ...string) Option {
	return func(p *Project) {
		p.env = append(p.env, env...)
	}
}

// New creates a Project bound to path. The path may be relative and need not exist yet.
func New(path string, opts ...Option) *Project {
	p := &Project{path: path}
	for _, opt := range opts {
		opt(p)
	}
	if p.tool.Path == "" {
		p.tool = LocateTool()
	}
	if p.executor == nil {
		p.executor = command.NewRealExecutor()
	}
	return p
}

// Path returns the project root path as given to New
func (p *Project) Path() string {
	return p.path
}

// Tool returns the cordova executable in use
func (p *Project) Tool() command.Tool {
	return p.tool
}

// Executor returns the executor the project dispatches through
func (p *Project) Executor() command.Executor {
	return p.executor
}

// Bind scopes cmd to this project: its working directory and environment.
func (p *Project) Bind(cmd command.Command) command.Command {
	return cmd.In(p.path).WithEnv(p.env...)
}

func (p *Project) run(ctx context.Context, cmd command.Command) command.Result {
	return p.executor.Run(ctx, p.Bind(cmd))
}

func (p *Project) start(ctx context.Context, cmd command.Command, handler command.Handler) *command.Pending {
	return p.executor.Start(ctx, p.Bind(cmd), handler)
}

// Create initializes a new Cordova project at the project path.
func (p *Project) Create(ctx context.Context, packageID, name string) command.Result {
	cmd, err := p.createCommand(packageID, name)
	if err != nil {
		return command.Failed(cmd, err)
	}
	return p.executor.Run(ctx, cmd)
}

// CreateAsync is the non-blocking form of Create.
func (p *Project) CreateAsync(ctx context.Context, packageID, name string, handler command.Handler) *command.Pending {
	cmd, err := p.createCommand(packageID, name)
	if err != nil {
		return command.Resolve(command.Failed(cmd, err), handler)
	}
	return p.executor.Start(ctx, cmd, handler)
}

// createCommand makes sure the project directory exists so the tool can run
// inside it, and passes the absolute path so the project lands there rather
// than in a nested directory of the same name.
func (p *Project) createCommand(packageID, name string) (command.Command, error) {
	target := p.path
	if abs, err := filepath.Abs(p.path); err == nil {
		target = abs
	}
	cmd := p.Bind(command.Create(p.tool, target, packageID, name))

	if err := os.MkdirAll(p.path, directoryPermissions); err != nil {
		return cmd, fmt.Errorf("failed to create project directory: %w", err)
	}
	return cmd, nil
}

// AddPlatform adds platform to the project.
func (p *Project) AddPlatform(ctx context.Context, platform string) command.Result {
	return p.run(ctx, command.PlatformAdd(p.tool, platform))
}

// AddPlatformAsync is the non-blocking form of AddPlatform.
func (p *Project) AddPlatformAsync(ctx context.Context, platform string, handler command.Handler) *command.Pending {
	return p.start(ctx, command.PlatformAdd(p.tool, platform), handler)
}

// RemovePlatform removes platform from the project.
func (p *Project) RemovePlatform(ctx context.Context, platform string) command.Result {
	return p.run(ctx, command.PlatformRemove(p.tool, platform))
}

// RemovePlatformAsync is the non-blocking form of RemovePlatform.
func (p *Project) RemovePlatformAsync(ctx context.Context, platform string, handler command.Handler) *command.Pending {
	return p.start(ctx, command.PlatformRemove(p.tool, platform), handler)
}

// AddPlugin adds the plugin identified by plugin (an id, git URL or path).
func (p *Project) AddPlugin(ctx context.Context, plugin string) command.Result {
	return p.run(ctx, command.PluginAdd(p.tool, plugin))
}

// AddPluginAsync is the non-blocking form of AddPlugin.
func (p *Project) AddPluginAsync(ctx context.Context, plugin string, handler command.Handler) *command.Pending {
	return p.start(ctx, command.PluginAdd(p.tool, plugin), handler)
}

// RemovePlugin removes plugin from the project.
func (p *Project) RemovePlugin(ctx context.Context, plugin string) command.Result {
	return p.run(ctx, command.PluginRemove(p.tool, plugin))
}

// RemovePluginAsync is the non-blocking form of RemovePlugin.
func (p *Project) RemovePluginAsync(ctx context.Context, plugin string, handler command.Handler) *command.Pending {
	return p.start(ctx, command.PluginRemove(p.tool, plugin), handler)
}

// Prepare copies web assets and config into the platform so it can be compiled.
func (p *Project) Prepare(ctx context.Context, platform string) command.Result {
	return p.run(ctx, command.Prepare(p.tool, platform))
}

// PrepareAsync is the non-blocking form of Prepare.
func (p *Project) PrepareAsync(ctx context.Context, platform string, handler command.Handler) *command.Pending {
	return p.start(ctx, command.Prepare(p.tool, platform), handler)
}

// Compile compiles the prepared platform.
func (p *Project) Compile(ctx context.Context, platform string) command.Result {
	return p.run(ctx, command.Compile(p.tool, platform))
}

// CompileAsync is the non-blocking form of Compile.
func (p *Project) CompileAsync(ctx context.Context, platform string, handler command.Handler) *command.Pending {
	return p.start(ctx, command.Compile(p.tool, platform), handler)
}

// Build prepares and compiles platform.
func (p *Project) Build(ctx context.Context, platform string) command.Result {
	return p.run(ctx, command.BuildPlatform(p.tool, platform))
}

// BuildAsync is the non-blocking form of Build.
func (p *Project) BuildAsync(ctx context.Context, platform string, handler command.Handler) *command.Pending {
	return p.start(ctx, command.BuildPlatform(p.tool, platform), handler)
}
