package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/cdv/internal/command"
	"github.com/satococoa/cdv/internal/errors"
)

// NewCreateCommand creates the create command definition
func NewCreateCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new Cordova project",
		UsageText: "cdv [--project <dir>] create <id> <name>",
		Description: "Creates a Cordova project in the project directory, creating the directory " +
			"if needed. The id and name default to app.id and app.name in .cdv.yml.",
		ArgsUsage: "<id> <name>",
		Action:    createCommand,
	}
}

func createCommand(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}

	packageID, name, err := createArgs(cmd.Args().Slice(), s.config.App.ID, s.config.App.Name)
	if err != nil {
		return err
	}

	label := fmt.Sprintf("Created %s (%s) in %s", name, packageID, s.root)
	return s.run(ctx, label, func(ctx context.Context) command.Result {
		return s.project.Create(ctx, packageID, name)
	})
}

func createArgs(args []string, defaultID, defaultName string) (string, string, error) {
	packageID, name := defaultID, defaultName
	if len(args) > 0 {
		packageID = args[0]
	}
	if len(args) > 1 {
		name = args[1]
	}
	if packageID == "" || name == "" {
		return "", "", errors.CreateArgsRequired()
	}
	return packageID, name, nil
}
