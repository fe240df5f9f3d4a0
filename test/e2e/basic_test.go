package e2e

import (
	"strings"
	"testing"

	"github.com/satococoa/cdv/test/e2e/framework"
)

func TestBasicCommands(t *testing.T) {
	env := framework.NewTestEnvironment(t)

	t.Run("Version", func(t *testing.T) {
		output, err := env.RunCDV("--version")
		framework.AssertNoError(t, err, output)
		framework.AssertOutputContains(t, output, "cdv version")
	})

	t.Run("Help", func(t *testing.T) {
		output, err := env.RunCDV("--help")
		framework.AssertNoError(t, err, output)

		expectedCommands := []string{"create", "platform", "plugin", "prepare", "compile", "build", "init", "sync", "watch"}
		framework.AssertMultipleStringsInOutput(t, output, expectedCommands)
		framework.AssertOutputContains(t, output, "GLOBAL OPTIONS:")
	})

	t.Run("HelpForCommand", func(t *testing.T) {
		for _, cmd := range []string{"create", "build", "sync", "watch"} {
			output, err := env.RunCDV(cmd, "--help")
			framework.AssertNoError(t, err, output)
			framework.AssertOutputContains(t, output, "USAGE:")
			framework.AssertOutputContains(t, output, cmd)
		}
	})
}

func TestProjectLifecycle(t *testing.T) {
	env := framework.NewTestEnvironment(t)

	t.Run("Create", func(t *testing.T) {
		env.ResetInvocations()
		target := env.TmpDir() + "/hello"

		output, err := env.RunCDV("--project", target, "create", "com.example.hello", "Hello")
		framework.AssertNoError(t, err, output)
		framework.AssertOutputContains(t, output, "Created Hello (com.example.hello)")
		framework.AssertInvoked(t, env, []string{target, "create", target, "com.example.hello", "Hello"})
	})

	t.Run("PlatformsPluginsAndBuild", func(t *testing.T) {
		env.ResetInvocations()
		project := env.CreateProject("lifecycle")

		steps := [][]string{
			{"platform", "add", "android"},
			{"plugin", "add", "cordova-plugin-o'reilly"},
			{"prepare", "android"},
			{"compile", "android"},
			{"build", "android"},
			{"plugin", "rm", "cordova-plugin-o'reilly"},
			{"platform", "rm", "android"},
		}
		for _, step := range steps {
			output, err := project.RunCDV(step...)
			framework.AssertNoError(t, err, output)
			framework.AssertOutputContains(t, output, "✓")
		}

		expected := make([][]string, 0, len(steps))
		for _, step := range steps {
			expected = append(expected, append([]string{project.Path()}, step...))
		}
		framework.AssertInvoked(t, env, expected...)
	})

	t.Run("InitThenSync", func(t *testing.T) {
		env.ResetInvocations()
		project := env.CreateProject("synced")

		output, err := project.RunCDV("init")
		framework.AssertNoError(t, err, output)
		framework.AssertFileExists(t, project, ".cdv.yml")
		if !strings.Contains(project.ReadFile(".cdv.yml"), "post_build:") {
			t.Errorf("template should describe post_build hooks")
		}

		output, err = project.RunCDV("sync")
		framework.AssertNoError(t, err, output)
		framework.AssertOutputContains(t, output, "Synced 1 platform(s) and 0 plugin(s)")
		framework.AssertInvoked(t, env, []string{project.Path(), "platform", "add", "android"})
	})
}

func TestBuildHooks(t *testing.T) {
	env := framework.NewTestEnvironment(t)
	project := env.CreateProject("hooks")
	project.WriteConfig(`version: "1.0"
hooks:
  post_build:
    - type: copy
      from: www
      to: dist/www
    - type: command
      command: echo "built $CDV_PLATFORM"
`)

	output, err := project.RunCDV("build", "--parallel", "android", "ios")
	framework.AssertNoError(t, err, output)
	framework.AssertMultipleStringsInOutput(t, output, []string{
		"Building android, ios in parallel",
		"✓ Built android",
		"✓ Built ios",
		"Running post-build hooks for android...",
		"built android",
		"built ios",
		"✓ Hooks completed for ios",
	})
	framework.AssertFileExists(t, project, "dist/www/index.html")
}
