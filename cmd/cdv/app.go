package main

import "github.com/urfave/cli/v3"

const (
	flagProject = "project"
	flagCordova = "cordova"
	flagTimeout = "timeout"
	flagVerbose = "verbose"

	envProject  = "CDV_PROJECT"
	envCordova  = "CDV_CORDOVA"
	envLogLevel = "LOG_LEVEL"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "cdv",
		Usage: "Drive the Cordova build tool for one project",
		Description: "cdv (Cordova driver) runs cordova create, platform, plugin, prepare, compile " +
			"and build against a project directory, with project settings, post-build hooks " +
			"and a source watcher kept in .cdv.yml.",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagProject,
				Aliases: []string{"C"},
				Usage:   "Cordova project directory",
				Value:   ".",
				Sources: cli.EnvVars(envProject),
			},
			&cli.StringFlag{
				Name:    flagCordova,
				Usage:   "cordova executable, optionally with leading arguments (e.g. \"npx cordova\")",
				Sources: cli.EnvVars(envCordova),
			},
			&cli.DurationFlag{
				Name:  flagTimeout,
				Usage: "Deadline for each cordova invocation (0 for none)",
			},
			&cli.BoolFlag{
				Name:  flagVerbose,
				Usage: "Log every cordova invocation",
			},
		},
		Commands: []*cli.Command{
			NewCreateCommand(),
			NewPlatformCommand(),
			NewPluginCommand(),
			NewPrepareCommand(),
			NewCompileCommand(),
			NewBuildCommand(),
			NewInitCommand(),
			NewSyncCommand(),
			NewWatchCommand(),
		},
	}
}
