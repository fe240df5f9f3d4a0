package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type appRun struct {
	out    string
	errOut string
	err    error
}

func runApp(ctx context.Context, args ...string) appRun {
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	err := app.Run(ctx, append([]string{"cdv"}, args...))
	return appRun{out: out.String(), errOut: errOut.String(), err: err}
}

// newProjectDir creates a directory that looks like a Cordova project
func newProjectDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, projectMarker), []byte("<widget/>"), 0o644))
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cdv.yml"), []byte(content), 0o600))
}
