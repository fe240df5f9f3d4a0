package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertOutputContains(t *testing.T, output, expected string) {
	t.Helper()
	assert.Contains(t, output, expected, "Expected output containing '%s', got: %s", expected, output)
}

func AssertHelpfulError(t *testing.T, output string) {
	t.Helper()

	helpfulElements := []string{
		"Solutions:",
		"Solution:",
		"Cause:",
		"Tip:",
		"Examples:",
		"Usage:",
	}

	for _, element := range helpfulElements {
		if strings.Contains(output, element) {
			return
		}
	}
	t.Errorf("Error message does not appear to be helpful. Got: %s", output)
}

func AssertMultipleStringsInOutput(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		assert.Contains(t, output, exp, "Expected output to contain '%s', got: %s", exp, output)
	}
}

func AssertNoError(t *testing.T, err error, output string) {
	t.Helper()
	assert.NoError(t, err, "Output: %s", output)
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
}

func AssertFileExists(t *testing.T, project *TestProject, path string) {
	t.Helper()
	assert.True(t, project.HasFile(path), "Expected file '%s' to exist", path)
}

func AssertFileNotExists(t *testing.T, project *TestProject, path string) {
	t.Helper()
	assert.False(t, project.HasFile(path), "Expected file '%s' not to exist", path)
}

// AssertInvoked checks that the fake cordova saw exactly these calls, in order
func AssertInvoked(t *testing.T, env *TestEnvironment, expected ...[]string) {
	t.Helper()
	assert.Equal(t, expected, env.Invocations())
}
