package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"

	"github.com/satococoa/cdv/internal/command"
)

// Config represents the cdv project configuration
type Config struct {
	Version   string   `yaml:"version"`
	App       App      `yaml:"app,omitempty"`
	Cordova   Cordova  `yaml:"cordova,omitempty"`
	Platforms []string `yaml:"platforms,omitempty"`
	Plugins   []string `yaml:"plugins,omitempty"`
	Hooks     Hooks    `yaml:"hooks,omitempty"`
}

// App identifies the application for project creation
type App struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name,omitempty"`
}

// Cordova configures how the cordova tool is invoked
type Cordova struct {
	Bin     string `yaml:"bin,omitempty"`      // e.g. "npx cordova"; empty = auto-detect
	EnvFile string `yaml:"env_file,omitempty"` // dotenv file relative to the project root
	Timeout string `yaml:"timeout,omitempty"`  // Go duration; empty = no deadline
}

// Hooks represents the post-build hooks configuration
type Hooks struct {
	PostBuild []Hook `yaml:"post_build,omitempty"`
}

// Hook represents a single hook configuration
type Hook struct {
	Type    string            `yaml:"type"` // "copy" or "command"
	From    string            `yaml:"from,omitempty"`
	To      string            `yaml:"to,omitempty"`
	Command string            `yaml:"command,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	WorkDir string            `yaml:"work_dir,omitempty"`
}

const (
	ConfigFileName        = ".cdv.yml"
	CurrentVersion        = "1.0"
	HookTypeCopy          = "copy"
	HookTypeCommand       = "command"
	configFilePermissions = 0o600
)

// LoadConfig loads configuration from .cdv.yml in the project root.
// A missing file yields the default configuration.
func LoadConfig(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, ConfigFileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{Version: CurrentVersion}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to .cdv.yml in the project root
func SaveConfig(projectRoot string, config *Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configPath := filepath.Join(projectRoot, ConfigFileName)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, configFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = CurrentVersion
	}

	if c.Cordova.Bin != "" {
		if _, err := command.ParseTool(c.Cordova.Bin); err != nil {
			return fmt.Errorf("invalid cordova.bin: %w", err)
		}
	}

	if c.Cordova.Timeout != "" {
		d, err := time.ParseDuration(c.Cordova.Timeout)
		if err != nil {
			return fmt.Errorf("invalid cordova.timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("cordova.timeout must not be negative")
		}
	}

	for i, p := range c.Platforms {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("platform %d is empty", i+1)
		}
	}
	for i, p := range c.Plugins {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("plugin %d is empty", i+1)
		}
	}

	for i, hook := range c.Hooks.PostBuild {
		if err := hook.Validate(); err != nil {
			return fmt.Errorf("invalid hook %d: %w", i+1, err)
		}
	}

	return nil
}

// Validate validates a single hook configuration
func (h *Hook) Validate() error {
	switch h.Type {
	case HookTypeCopy:
		if h.From == "" || h.To == "" {
			return fmt.Errorf("copy hook requires both 'from' and 'to' fields")
		}
		if h.Command != "" {
			return fmt.Errorf("copy hook should not have 'command' field")
		}
	case HookTypeCommand:
		if h.Command == "" {
			return fmt.Errorf("command hook requires 'command' field")
		}
		if h.From != "" || h.To != "" {
			return fmt.Errorf("command hook should not have 'from' or 'to' fields")
		}
	default:
		return fmt.Errorf("invalid hook type '%s', must be 'copy' or 'command'", h.Type)
	}

	return nil
}

// HasHooks returns true if the configuration has any post-build hooks
func (c *Config) HasHooks() bool {
	return len(c.Hooks.PostBuild) > 0
}

// AddPlatform records a platform spec, replacing any entry for the same platform
func (c *Config) AddPlatform(spec string) {
	c.Platforms = upsertSpec(c.Platforms, spec)
}

// RemovePlatform drops every entry for the platform named by spec
func (c *Config) RemovePlatform(spec string) {
	c.Platforms = removeSpec(c.Platforms, spec)
}

// AddPlugin records a plugin spec, replacing any entry for the same plugin
func (c *Config) AddPlugin(spec string) {
	c.Plugins = upsertSpec(c.Plugins, spec)
}

// RemovePlugin drops every entry for the plugin named by spec
func (c *Config) RemovePlugin(spec string) {
	c.Plugins = removeSpec(c.Plugins, spec)
}

// specName strips a trailing @version. A leading @ belongs to an npm scope.
func specName(spec string) string {
	if i := strings.LastIndex(spec, "@"); i > 0 {
		return spec[:i]
	}
	return spec
}

func upsertSpec(specs []string, spec string) []string {
	name := specName(spec)
	for i, existing := range specs {
		if specName(existing) == name {
			specs[i] = spec
			return specs
		}
	}
	return append(specs, spec)
}

func removeSpec(specs []string, spec string) []string {
	name := specName(spec)
	return slices.DeleteFunc(specs, func(existing string) bool {
		return specName(existing) == name
	})
}

// Tool returns the configured cordova tool, or false when detection is left to the caller
func (c *Config) Tool() (command.Tool, bool, error) {
	if c.Cordova.Bin == "" {
		return command.Tool{}, false, nil
	}
	tool, err := command.ParseTool(c.Cordova.Bin)
	if err != nil {
		return command.Tool{}, false, err
	}
	return tool, true, nil
}

// Timeout returns the per-invocation deadline, zero for none
func (c *Config) Timeout() time.Duration {
	if c.Cordova.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Cordova.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Environ loads the configured env file and returns its entries as sorted
// KEY=VALUE pairs. No env file means no extra environment.
func (c *Config) Environ(projectRoot string) ([]string, error) {
	if c.Cordova.EnvFile == "" {
		return nil, nil
	}

	envPath := c.Cordova.EnvFile
	if !filepath.IsAbs(envPath) {
		envPath = filepath.Join(projectRoot, envPath)
	}

	values, err := godotenv.Read(envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", envPath, err)
	}

	env := make([]string, 0, len(values))
	for key, value := range values {
		env = append(env, key+"="+value)
	}
	slices.Sort(env)
	return env, nil
}
