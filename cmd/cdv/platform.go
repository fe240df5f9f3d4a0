package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/cdv/internal/command"
	"github.com/satococoa/cdv/internal/errors"
)

const flagSave = "save"

func saveFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  flagSave,
		Usage: "Record the change in .cdv.yml so 'cdv sync' can replay it",
	}
}

// NewPlatformCommand creates the platform command definition
func NewPlatformCommand() *cli.Command {
	return &cli.Command{
		Name:  "platform",
		Usage: "Add or remove target platforms",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add platforms to the project",
				UsageText: "cdv platform add [--save] <platform>...",
				ArgsUsage: "<platform>...",
				Flags:     []cli.Flag{saveFlag()},
				Action:    platformAddCommand,
			},
			{
				Name:      "rm",
				Aliases:   []string{"remove"},
				Usage:     "Remove platforms from the project",
				UsageText: "cdv platform rm [--save] <platform>...",
				ArgsUsage: "<platform>...",
				Flags:     []cli.Flag{saveFlag()},
				Action:    platformRemoveCommand,
			},
		},
	}
}

func platformAddCommand(ctx context.Context, cmd *cli.Command) error {
	platforms := cmd.Args().Slice()
	if len(platforms) == 0 {
		return errors.PlatformRequired("cdv platform add <platform>...")
	}

	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}

	for _, platform := range platforms {
		err := s.run(ctx, fmt.Sprintf("Added platform %s", platform), func(ctx context.Context) command.Result {
			return s.project.AddPlatform(ctx, platform)
		})
		if err != nil {
			return err
		}
		if cmd.Bool(flagSave) {
			s.config.AddPlatform(platform)
			if err := s.saveConfig(); err != nil {
				return err
			}
		}
	}
	return nil
}

func platformRemoveCommand(ctx context.Context, cmd *cli.Command) error {
	platforms := cmd.Args().Slice()
	if len(platforms) == 0 {
		return errors.PlatformRequired("cdv platform rm <platform>...")
	}

	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}

	for _, platform := range platforms {
		err := s.run(ctx, fmt.Sprintf("Removed platform %s", platform), func(ctx context.Context) command.Result {
			return s.project.RemovePlatform(ctx, platform)
		})
		if err != nil {
			return err
		}
		if cmd.Bool(flagSave) {
			s.config.RemovePlatform(platform)
			if err := s.saveConfig(); err != nil {
				return err
			}
		}
	}
	return nil
}
