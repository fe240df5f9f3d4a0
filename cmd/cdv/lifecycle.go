package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/cdv/internal/command"
	"github.com/satococoa/cdv/internal/errors"
	"github.com/satococoa/cdv/internal/hooks"
	cdvio "github.com/satococoa/cdv/internal/io"
)

const flagParallel = "parallel"

// NewPrepareCommand creates the prepare command definition
func NewPrepareCommand() *cli.Command {
	return &cli.Command{
		Name:      "prepare",
		Usage:     "Copy web assets and config into a platform",
		UsageText: "cdv prepare <platform>",
		ArgsUsage: "<platform>",
		Action:    prepareCommand,
	}
}

// NewCompileCommand creates the compile command definition
func NewCompileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "Compile a prepared platform",
		UsageText: "cdv compile <platform>",
		ArgsUsage: "<platform>",
		Action:    compileCommand,
	}
}

// NewBuildCommand creates the build command definition
func NewBuildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Prepare and compile platforms",
		UsageText: "cdv build [--parallel] <platform>...",
		Description: "Builds each platform in turn, or all at once with --parallel. " +
			"The post_build hooks in .cdv.yml run after every successful build.",
		ArgsUsage: "<platform>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagParallel,
				Usage: "Build all platforms concurrently",
			},
		},
		Action: buildCommand,
	}
}

func prepareCommand(ctx context.Context, cmd *cli.Command) error {
	platform := cmd.Args().First()
	if platform == "" {
		return errors.PlatformRequired("cdv prepare <platform>")
	}

	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}

	return s.run(ctx, fmt.Sprintf("Prepared %s", platform), func(ctx context.Context) command.Result {
		return s.project.Prepare(ctx, platform)
	})
}

func compileCommand(ctx context.Context, cmd *cli.Command) error {
	platform := cmd.Args().First()
	if platform == "" {
		return errors.PlatformRequired("cdv compile <platform>")
	}

	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}

	return s.run(ctx, fmt.Sprintf("Compiled %s", platform), func(ctx context.Context) command.Result {
		return s.project.Compile(ctx, platform)
	})
}

func buildCommand(ctx context.Context, cmd *cli.Command) error {
	platforms := cmd.Args().Slice()
	if len(platforms) == 0 {
		return errors.PlatformRequired("cdv build <platform>...")
	}

	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}

	if cmd.Bool(flagParallel) && len(platforms) > 1 {
		return buildParallel(ctx, s, platforms)
	}

	for _, platform := range platforms {
		err := s.run(ctx, fmt.Sprintf("Built %s", platform), func(ctx context.Context) command.Result {
			return s.project.Build(ctx, platform)
		})
		if err != nil {
			return err
		}
		if err := runPostBuildHooks(ctx, s, cdvio.NewConsole(s.out), platform); err != nil {
			return err
		}
	}
	return nil
}

// buildParallel starts every build at once. Handlers report as builds
// finish; hooks run afterwards in platform order for the builds that succeeded.
func buildParallel(ctx context.Context, s *session, platforms []string) error {
	console := cdvio.NewConsole(s.out)
	_ = console.Println(fmt.Sprintf("Building %s in parallel", strings.Join(platforms, ", ")))

	pending := make([]*command.Pending, 0, len(platforms))
	for _, platform := range platforms {
		buildCtx, cancel := s.invocation(ctx)
		pending = append(pending, s.project.BuildAsync(buildCtx, platform, func(r command.Result) {
			cancel()
			prefix := fmt.Sprintf("[%s] ", platform)
			if r.OK() {
				_ = console.Block(prefix, strings.TrimSpace(r.Output))
				_ = console.Println(green("✓"), "Built", platform)
				return
			}
			_ = console.Println(red("✗"), "Build failed for", platform)
		}))
	}

	var failures []error
	for i, r := range command.WaitAll(pending...) {
		if !r.OK() {
			failures = append(failures, resultError(r))
			continue
		}
		if err := runPostBuildHooks(ctx, s, console, platforms[i]); err != nil {
			failures = append(failures, err)
		}
	}
	return stderrors.Join(failures...)
}

func runPostBuildHooks(ctx context.Context, s *session, console *cdvio.Console, platform string) error {
	if !s.config.HasHooks() {
		return nil
	}

	_ = console.Println(fmt.Sprintf("Running post-build hooks for %s...", platform))
	executor := hooks.NewExecutor(s.config, s.root)
	if err := executor.ExecutePostBuildHooks(ctx, console, platform); err != nil {
		return errors.HookExecutionFailed(platform, err)
	}
	_ = console.Println(green("✓"), "Hooks completed for", platform)
	return nil
}
