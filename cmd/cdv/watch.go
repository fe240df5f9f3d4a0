package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/cdv/internal/errors"
	"github.com/satococoa/cdv/internal/watch"
)

const (
	flagDebounce = "debounce"
	wwwDir       = "www"
)

// NewWatchCommand creates the watch command definition
func NewWatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Prepare a platform whenever web assets change",
		UsageText: "cdv watch [--debounce <duration>] <platform>",
		Description: "Watches www/ and config.xml and runs 'cordova prepare <platform>' " +
			"once the files have been quiet for the debounce period. Stop with Ctrl+C.",
		ArgsUsage: "<platform>",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  flagDebounce,
				Usage: "Quiet period before preparing",
				Value: watch.DefaultDebounce,
			},
		},
		Action: watchCommand,
	}
}

func watchCommand(ctx context.Context, cmd *cli.Command) error {
	platform := cmd.Args().First()
	if platform == "" {
		return errors.PlatformRequired("cdv watch <platform>")
	}

	s, err := openSession(cmd, true)
	if err != nil {
		return err
	}

	targets := []string{filepath.Join(s.root, wwwDir), filepath.Join(s.root, projectMarker)}
	w, err := watch.New(targets, func(changed []string) {
		prepareOnChange(ctx, s, platform, changed)
	}, watch.WithDebounce(cmd.Duration(flagDebounce)), watch.WithLogger(s.logger))
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Watching %s for %s. Press Ctrl+C to stop.\n", s.root, platform)
	return w.Run(ctx)
}

// prepareOnChange runs one prepare. A failed prepare is reported and watching continues.
func prepareOnChange(ctx context.Context, s *session, platform string, changed []string) {
	if ctx.Err() != nil {
		return
	}

	fmt.Fprintf(s.out, "%s %d file(s) changed, preparing %s\n", yellow("↻"), len(changed), platform)
	for _, path := range changed {
		if rel, err := filepath.Rel(s.root, path); err == nil {
			path = rel
		}
		s.logger.WithField("path", path).Debug("changed")
	}

	prepareCtx, cancel := s.invocation(ctx)
	defer cancel()

	start := time.Now()
	r := s.project.Prepare(prepareCtx, platform)
	label := fmt.Sprintf("Prepared %s in %s", platform, time.Since(start).Round(time.Millisecond))
	if err := s.report(label, r); err != nil {
		fmt.Fprintf(s.out, "%s %v\n", red("✗"), err)
	}
}
