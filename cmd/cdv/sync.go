package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/cdv/internal/command"
	"github.com/satococoa/cdv/internal/config"
	"github.com/satococoa/cdv/internal/errors"
)

// NewSyncCommand creates the sync command definition
func NewSyncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Add the platforms and plugins listed in .cdv.yml",
		Description: "Adds every configured platform, then every configured plugin, " +
			"stopping at the first failure.",
		Action: syncCommand,
	}
}

func syncCommand(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}

	commands := syncCommands(s.project.Tool(), s.config)
	if len(commands) == 0 {
		return errors.NothingToSync(filepath.Join(s.root, config.ConfigFileName))
	}
	for i := range commands {
		commands[i] = s.project.Bind(commands[i])
	}

	ctx, cancel := s.invocation(ctx)
	defer cancel()

	result, err := s.project.Executor().Execute(ctx, commands)
	for _, r := range result.Results {
		if r.OK() {
			s.printOutput(r.Output)
			fmt.Fprintf(s.out, "%s %s\n", green("✓"), r.Command.String())
		}
	}
	if failed, ok := result.Failed(); ok {
		return resultError(failed)
	}
	if err != nil {
		return fmt.Errorf("sync interrupted: %w", err)
	}

	fmt.Fprintf(s.out, "Synced %d platform(s) and %d plugin(s)\n", len(s.config.Platforms), len(s.config.Plugins))
	return nil
}

func syncCommands(tool command.Tool, cfg *config.Config) []command.Command {
	commands := make([]command.Command, 0, len(cfg.Platforms)+len(cfg.Plugins))
	for _, platform := range cfg.Platforms {
		commands = append(commands, command.PlatformAdd(tool, platform))
	}
	for _, plugin := range cfg.Plugins {
		commands = append(commands, command.PluginAdd(tool, plugin))
	}
	return commands
}
