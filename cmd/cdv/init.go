package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/satococoa/cdv/internal/config"
	"github.com/satococoa/cdv/internal/errors"
)

const configFileMode = 0o600

const configTemplate = `# Cordova driver configuration
version: "1.0"

# Defaults for 'cdv create' when no id or name is given
app:
  id: com.example.hello
  name: HelloCordova

cordova:
  # Executable, optionally with leading arguments. Defaults to the bundled
  # node_modules/cordova copy, then cordova on PATH.
  # bin: npx cordova

  # KEY=VALUE file loaded into the tool environment (ANDROID_HOME, JAVA_HOME...)
  # env_file: .env

  # Deadline for each cordova invocation
  # timeout: 30m

# Applied in order by 'cdv sync'
platforms:
  - android
plugins: []

# Hooks that run after each successful build
hooks:
  post_build:
    # Example: Keep the built artifacts outside platforms/
    # - type: copy
    #   from: platforms/android/app/build/outputs/apk
    #   to: dist/android

    # Example: Run a script with CDV_PLATFORM and CDV_PROJECT_PATH set
    # - type: command
    #   command: ./scripts/publish.sh
    #   env:
    #     CHANNEL: beta
`

// NewInitCommand creates the init command definition
func NewInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize configuration file",
		Description: "Creates a .cdv.yml configuration file in the project directory " +
			"with example platforms, plugins and hooks.",
		Action: initCommand,
	}
}

func initCommand(_ context.Context, cmd *cli.Command) error {
	root, err := filepath.Abs(cmd.String(flagProject))
	if err != nil {
		return errors.DirectoryAccessFailed("resolve project", cmd.String(flagProject), err)
	}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", root)
		}
		return errors.DirectoryAccessFailed("access project", root, err)
	}

	configPath := filepath.Join(root, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return errors.ConfigAlreadyExists(configPath)
	}

	if err := os.WriteFile(configPath, []byte(configTemplate), configFileMode); err != nil {
		return errors.DirectoryAccessFailed("create configuration file", configPath, err)
	}

	w := writer(cmd)
	fmt.Fprintf(w, "Configuration file created: %s\n", configPath)
	fmt.Fprintln(w, "Edit this file to customize your project.")
	return nil
}
