package main

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubBuildInfo(t *testing.T, preset, moduleVersion string) {
	t.Helper()

	prevVersion := version
	prevReader := readBuildInfo
	t.Cleanup(func() {
		version = prevVersion
		readBuildInfo = prevReader
	})

	version = preset
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{
				Path:    "github.com/satococoa/cdv",
				Version: moduleVersion,
			},
		}, true
	}
}

func TestInitVersionUsesBuildInfoWhenDev(t *testing.T) {
	stubBuildInfo(t, defaultVersion, "v0.4.1")

	initVersion()

	assert.Equal(t, "v0.4.1", version)
}

func TestInitVersionIgnoresDevelVersion(t *testing.T) {
	stubBuildInfo(t, defaultVersion, "(devel)")

	initVersion()

	assert.Equal(t, defaultVersion, version)
}

func TestInitVersionRespectsPresetVersion(t *testing.T) {
	stubBuildInfo(t, "custom", "v0.4.1")

	initVersion()

	assert.Equal(t, "custom", version)
}

func TestInitVersionWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, defaultVersion, "")
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

	initVersion()

	assert.Equal(t, defaultVersion, version)
}
