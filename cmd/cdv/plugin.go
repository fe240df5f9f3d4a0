package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/cdv/internal/command"
	"github.com/satococoa/cdv/internal/errors"
)

// NewPluginCommand creates the plugin command definition
func NewPluginCommand() *cli.Command {
	return &cli.Command{
		Name:  "plugin",
		Usage: "Add or remove plugins",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add plugins to the project",
				UsageText: "cdv plugin add [--save] <plugin>...",
				ArgsUsage: "<plugin>...",
				Flags:     []cli.Flag{saveFlag()},
				Action:    pluginAddCommand,
			},
			{
				Name:      "rm",
				Aliases:   []string{"remove"},
				Usage:     "Remove plugins from the project",
				UsageText: "cdv plugin rm [--save] <plugin>...",
				ArgsUsage: "<plugin>...",
				Flags:     []cli.Flag{saveFlag()},
				Action:    pluginRemoveCommand,
			},
		},
	}
}

func pluginAddCommand(ctx context.Context, cmd *cli.Command) error {
	plugins := cmd.Args().Slice()
	if len(plugins) == 0 {
		return errors.PluginRequired("cdv plugin add <plugin>...")
	}

	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}

	for _, plugin := range plugins {
		err := s.run(ctx, fmt.Sprintf("Added plugin %s", plugin), func(ctx context.Context) command.Result {
			return s.project.AddPlugin(ctx, plugin)
		})
		if err != nil {
			return err
		}
		if cmd.Bool(flagSave) {
			s.config.AddPlugin(plugin)
			if err := s.saveConfig(); err != nil {
				return err
			}
		}
	}
	return nil
}

func pluginRemoveCommand(ctx context.Context, cmd *cli.Command) error {
	plugins := cmd.Args().Slice()
	if len(plugins) == 0 {
		return errors.PluginRequired("cdv plugin rm <plugin>...")
	}

	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}

	for _, plugin := range plugins {
		err := s.run(ctx, fmt.Sprintf("Removed plugin %s", plugin), func(ctx context.Context) command.Result {
			return s.project.RemovePlugin(ctx, plugin)
		})
		if err != nil {
			return err
		}
		if cmd.Bool(flagSave) {
			s.config.RemovePlugin(plugin)
			if err := s.saveConfig(); err != nil {
				return err
			}
		}
	}
	return nil
}
