package command

import "strings"

// Lifecycle verbs understood by the build tool
const (
	VerbCreate         = "create"
	VerbPlatformAdd    = "platform add"
	VerbPlatformRemove = "platform rm"
	VerbPluginAdd      = "plugin add"
	VerbPluginRemove   = "plugin rm"
	VerbPrepare        = "prepare"
	VerbCompile        = "compile"
	VerbBuild          = "build"
)

// Build composes a command for tool from a verb and its arguments.
// Nothing is validated; an empty verb yields no verb tokens and the tool decides.
func Build(tool Tool, verb string, args ...string) Command {
	return Command{
		Name:     tool.Path,
		ToolArgs: append([]string(nil), tool.Args...),
		Verb:     strings.Fields(verb),
		Args:     append([]string(nil), args...),
	}
}

// Create builds a create command for a new project at path
func Create(tool Tool, path, packageID, name string) Command {
	return Build(tool, VerbCreate, path, packageID, name)
}

// PlatformAdd builds a platform add command
func PlatformAdd(tool Tool, platform string) Command {
	return Build(tool, VerbPlatformAdd, platform)
}

// PlatformRemove builds a platform rm command
func PlatformRemove(tool Tool, platform string) Command {
	return Build(tool, VerbPlatformRemove, platform)
}

// PluginAdd builds a plugin add command
func PluginAdd(tool Tool, plugin string) Command {
	return Build(tool, VerbPluginAdd, plugin)
}

// PluginRemove builds a plugin rm command
func PluginRemove(tool Tool, plugin string) Command {
	return Build(tool, VerbPluginRemove, plugin)
}

// Prepare builds a prepare command
func Prepare(tool Tool, platform string) Command {
	return Build(tool, VerbPrepare, platform)
}

// Compile builds a compile command
func Compile(tool Tool, platform string) Command {
	return Build(tool, VerbCompile, platform)
}

// BuildPlatform builds a build command (prepare followed by compile)
func BuildPlatform(tool Tool, platform string) Command {
	return Build(tool, VerbBuild, platform)
}

// In returns a copy of c bound to the working directory dir
func (c Command) In(dir string) Command {
	c.WorkDir = dir
	return c
}

// WithEnv returns a copy of c with env appended to its environment
func (c Command) WithEnv(env ...string) Command {
	if len(env) == 0 {
		return c
	}
	merged := make([]string, 0, len(c.Env)+len(env))
	merged = append(merged, c.Env...)
	c.Env = append(merged, env...)
	return c
}
