package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewApp(t *testing.T) {
	app := newApp()

	assert.Equal(t, "cdv", app.Name)
	assert.NotEmpty(t, app.Usage)
	assert.NotEmpty(t, app.Description)
	assert.True(t, app.EnableShellCompletion)

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}
	for _, expected := range []string{"create", "platform", "plugin", "prepare", "compile", "build", "init", "sync", "watch"} {
		assert.True(t, commandNames[expected], "Command %s should exist", expected)
	}

	flagNames := make(map[string]bool)
	for _, flag := range app.Flags {
		for _, name := range flag.Names() {
			flagNames[name] = true
		}
	}
	for _, expected := range []string{flagProject, "C", flagCordova, flagTimeout, flagVerbose} {
		assert.True(t, flagNames[expected], "Flag %s should exist", expected)
	}
}

func TestAppRun_Help(t *testing.T) {
	run := runApp(context.Background(), "--help")

	assert.NoError(t, run.err)
	assert.Contains(t, run.out, "cdv")
	assert.Contains(t, run.out, "platform")
}
