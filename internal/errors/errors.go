package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common error messages with helpful context and suggestions

// Build Tool Errors
func CommandFailed(commandLine, output string, exitCode int) error {
	cleanOutput := strings.TrimSpace(output)
	if cleanOutput == "" {
		cleanOutput = "no additional details available"
	}

	msg := fmt.Sprintf("cordova command failed: %s", commandLine)
	if exitCode >= 0 {
		msg += fmt.Sprintf(" (exit status %d)", exitCode)
	} else {
		msg += " (did not run to completion)"
	}
	msg += fmt.Sprintf("\n\nDetails: %s", cleanOutput)

	lower := strings.ToLower(output)
	switch {
	case strings.Contains(lower, "not a cordova-based project"):
		msg += `

Cause: The project directory does not contain a Cordova project
Solutions:
  • Run 'cdv create <id> <name>' to create one
  • Point --project at an existing Cordova project`
	case strings.Contains(lower, "already added"), strings.Contains(lower, "already installed"):
		msg += `

Cause: The platform or plugin is already part of the project
Tip: Remove it first if you want to reinstall it`
	case strings.Contains(lower, "path already exists and is not empty"):
		msg += `

Cause: The target directory is not empty
Solutions:
  • Choose an empty or new directory with --project
  • Remove the existing files first`
	case strings.Contains(lower, "android_home"), strings.Contains(lower, "android_sdk_root"),
		strings.Contains(lower, "requirements check failed"):
		msg += `

Cause: Native build requirements are missing
Solutions:
  • Install the platform SDK and build tools
  • Set cordova.env_file in .cdv.yml to provide ANDROID_HOME, JAVA_HOME, etc.`
	case exitCode < 0:
		msg += `

Cause: The cordova executable could not be started
Solutions:
  • Install cordova with 'npm install -g cordova'
  • Set the executable with --cordova or cordova.bin in .cdv.yml`
	default:
		msg += "\n\nTip: Re-run with --verbose to see the exact command and working directory"
	}

	return errors.New(msg)
}

func ToolNotFound(tool string) error {
	msg := fmt.Sprintf(`cordova executable not found: %s

Solutions:
  • Install cordova with 'npm install -g cordova'
  • Install it next to cdv under node_modules/cordova
  • Set the executable with --cordova or cordova.bin in .cdv.yml`, tool)
	return errors.New(msg)
}

// Validation Errors
func CreateArgsRequired() error {
	msg := `package id and application name are required

Usage: cdv create <id> <name>

Examples:
  • cdv create com.example.hello HelloCordova
  • cdv --project ./hello create com.example.hello "Hello Cordova"

Tip: Set app.id and app.name in .cdv.yml to omit them`
	return errors.New(msg)
}

func PlatformRequired(commandExample string) error {
	msg := fmt.Sprintf(`platform name is required

Usage: %s

Examples:
  • android
  • ios
  • browser`, commandExample)
	return errors.New(msg)
}

func PluginRequired(commandExample string) error {
	msg := fmt.Sprintf(`plugin identifier is required

Usage: %s

Examples:
  • cordova-plugin-camera
  • cordova-plugin-camera@7.0.0
  • https://github.com/apache/cordova-plugin-device.git`, commandExample)
	return errors.New(msg)
}

func NotACordovaProject(path string) error {
	msg := fmt.Sprintf(`not a cordova project: %s

Solutions:
  • Run 'cdv create <id> <name>' to create one
  • Use --project to point at an existing project
  • Check that config.xml exists in the project root`, path)
	return errors.New(msg)
}

// Configuration Errors
func ConfigLoadFailed(configPath string, parseError error) error {
	msg := fmt.Sprintf("failed to load configuration from '%s'", configPath)

	parseErrorStr := parseError.Error()
	if strings.Contains(parseErrorStr, "yaml") || strings.Contains(parseErrorStr, "unmarshal") ||
		strings.Contains(parseErrorStr, "parse config") {
		msg += `

Cause: YAML syntax error in configuration file
Solutions:
  • Check YAML syntax and indentation
  • Run 'cdv init' in an empty directory to see a valid example`
	} else if strings.Contains(parseErrorStr, "env file") {
		msg += `

Cause: The env file named by cordova.env_file could not be read
Solution: Create the file or remove cordova.env_file from .cdv.yml`
	} else if strings.Contains(parseErrorStr, "permission denied") {
		msg += `

Cause: Permission denied reading configuration file
Solution: Check file permissions with 'ls -la .cdv.yml'`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", parseError)
	return errors.New(msg)
}

func ConfigAlreadyExists(configPath string) error {
	msg := fmt.Sprintf(`configuration file already exists: %s

Options:
  • Edit the existing file manually
  • Delete it and run 'cdv init' again`, configPath)
	return errors.New(msg)
}

func ConfigSaveFailed(configPath string, originalError error) error {
	msg := fmt.Sprintf("failed to save configuration to '%s'", configPath)

	if strings.Contains(originalError.Error(), "permission denied") {
		msg += `

Cause: Permission denied writing configuration file
Solution: Check file permissions with 'ls -la .cdv.yml'`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}

func NothingToSync(configPath string) error {
	msg := fmt.Sprintf(`no platforms or plugins configured in %s

Example:
  platforms: [android, ios]
  plugins:
    - cordova-plugin-camera`, configPath)
	return errors.New(msg)
}

// File System Errors
func DirectoryAccessFailed(operation, path string, originalError error) error {
	msg := fmt.Sprintf("failed to %s directory: %s", operation, path)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check directory permissions
  • Ensure you own the directory`
	} else if strings.Contains(errorStr, "no such file or directory") {
		msg += `

Cause: Directory does not exist
Solutions:
  • Create the parent directory first
  • Check the path spelling`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}

// Hook Errors
func HookExecutionFailed(platform string, originalError error) error {
	msg := fmt.Sprintf("post-build hooks failed for platform '%s'", platform)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "source path does not exist") {
		msg += `

Cause: A copy hook points at a missing build artifact
Solutions:
  • Check the 'from' path in .cdv.yml
  • Make sure the build produces the artifact you copy`
	} else if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check file permissions
  • Ensure the command is executable`
	} else if strings.Contains(errorStr, "command failed") {
		msg += `

Cause: A command hook exited with an error
Tip: Run the hook command manually from the project root`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}
