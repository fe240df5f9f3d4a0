package command

import (
	"testing"

	"github.com/google/shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTool = Tool{Path: "/opt/cdv/node_modules/cordova/bin/cordova"}

func TestBuild(t *testing.T) {
	t.Run("should start with the executable path followed by the verb", func(t *testing.T) {
		// When: building a command with a multi-word verb
		cmd := Build(testTool, "platform add", "android")

		// Then: executable, verb tokens and quoted argument appear in order
		assert.Equal(t, "/opt/cdv/node_modules/cordova/bin/cordova platform add 'android'", cmd.String())
		assert.Equal(t, []string{"platform", "add", "android"}, cmd.Argv())
	})

	t.Run("should keep argument order", func(t *testing.T) {
		cmd := Build(testTool, "create", "/tmp/app", "com.example.app", "Example App")

		words, err := shlex.Split(cmd.String())
		require.NoError(t, err)
		assert.Equal(t,
			[]string{testTool.Path, "create", "/tmp/app", "com.example.app", "Example App"},
			words)
	})

	t.Run("should pass an empty verb through", func(t *testing.T) {
		cmd := Build(testTool, "", "android")

		assert.Empty(t, cmd.Verb)
		assert.Equal(t, testTool.Path+" 'android'", cmd.String())
	})

	t.Run("should place tool arguments before the verb", func(t *testing.T) {
		tool := Tool{Path: "npx", Args: []string{"cordova"}}
		cmd := Build(tool, "prepare", "ios")

		assert.Equal(t, "npx", cmd.Name)
		assert.Equal(t, []string{"cordova", "prepare", "ios"}, cmd.Argv())
		assert.Equal(t, "npx cordova prepare 'ios'", cmd.String())
	})

	t.Run("should not alias caller slices", func(t *testing.T) {
		tool := Tool{Path: "npx", Args: []string{"cordova"}}
		cmd := Build(tool, "build", "android")
		cmd.ToolArgs[0] = "changed"

		assert.Equal(t, "cordova", tool.Args[0])
	})
}

func TestLifecycleBuilders(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		expected []string
	}{
		{"create", Create(testTool, "/tmp/app", "com.example.app", "App"), []string{"create", "/tmp/app", "com.example.app", "App"}},
		{"platform add", PlatformAdd(testTool, "android"), []string{"platform", "add", "android"}},
		{"platform rm", PlatformRemove(testTool, "ios"), []string{"platform", "rm", "ios"}},
		{"plugin add", PluginAdd(testTool, "cordova-plugin-camera"), []string{"plugin", "add", "cordova-plugin-camera"}},
		{"plugin rm", PluginRemove(testTool, "cordova-plugin-camera"), []string{"plugin", "rm", "cordova-plugin-camera"}},
		{"prepare", Prepare(testTool, "android"), []string{"prepare", "android"}},
		{"compile", Compile(testTool, "android"), []string{"compile", "android"}},
		{"build", BuildPlatform(testTool, "browser"), []string{"build", "browser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, testTool.Path, tt.cmd.Name)
			assert.Equal(t, tt.expected, tt.cmd.Argv())
			assert.Empty(t, tt.cmd.WorkDir)
		})
	}
}

func TestPluginRemoveWithQuote(t *testing.T) {
	// Given: a plugin identifier containing a single quote
	plugin := "cordova-plugin-o'reilly"

	// When: rendering the remove command line
	line := PluginRemove(testTool, plugin).String()

	// Then: the shell sees the identifier as one argument
	words, err := shlex.Split(line)
	require.NoError(t, err)
	assert.Equal(t, []string{testTool.Path, "plugin", "rm", plugin}, words)
}

func TestCommandModifiers(t *testing.T) {
	t.Run("In should bind working directory on a copy", func(t *testing.T) {
		base := PlatformAdd(testTool, "android")
		bound := base.In("/tmp/app")

		assert.Equal(t, "/tmp/app", bound.WorkDir)
		assert.Empty(t, base.WorkDir)
	})

	t.Run("WithEnv should append without touching the original", func(t *testing.T) {
		base := Prepare(testTool, "android").WithEnv("A=1")
		extended := base.WithEnv("B=2")

		assert.Equal(t, []string{"A=1"}, base.Env)
		assert.Equal(t, []string{"A=1", "B=2"}, extended.Env)
	})

	t.Run("WithEnv with nothing should be a no-op", func(t *testing.T) {
		base := Prepare(testTool, "android")
		assert.Nil(t, base.WithEnv().Env)
	})
}
