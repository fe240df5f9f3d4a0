package framework

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/satococoa/cdv/internal/testutil"
)

const (
	dirPerm  = 0755
	filePerm = 0600
)

type TestEnvironment struct {
	t         *testing.T
	tmpDir    string
	cdvBinary string
	toolPath  string
	toolLog   string
}

func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	env := &TestEnvironment{
		t:      t,
		tmpDir: tmpDir,
	}

	env.buildCDV()
	env.toolPath, env.toolLog = testutil.RecordingTool(t)

	return env
}

func (e *TestEnvironment) buildCDV() {
	e.t.Helper()

	cdvBinary := filepath.Join(e.tmpDir, "cdv")
	if prebuilt := os.Getenv("CDV_E2E_BINARY"); prebuilt != "" {
		cdvBinary = prebuilt
		if _, err := os.Stat(cdvBinary); err != nil {
			e.t.Fatalf("Specified CDV binary not found: %s", cdvBinary)
		}
	} else {
		projectRoot := e.findProjectRoot()
		cmd := exec.Command("go", "build", "-o", cdvBinary, "./cmd/cdv")
		cmd.Dir = projectRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			e.t.Fatalf("Failed to build cdv binary: %v\nOutput: %s", err, output)
		}
	}

	absPath, err := filepath.Abs(filepath.Clean(cdvBinary))
	if err != nil {
		e.t.Fatalf("Failed to get absolute path for binary: %v", err)
	}
	e.cdvBinary = absPath
}

func (e *TestEnvironment) findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		e.t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			e.t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}

// CreateProject makes a directory that looks like a Cordova project
func (e *TestEnvironment) CreateProject(name string) *TestProject {
	e.t.Helper()

	dir := filepath.Join(e.tmpDir, name)
	e.writeFile(filepath.Join(dir, "config.xml"), `<?xml version="1.0"?><widget id="com.example.`+name+`"/>`)
	e.writeFile(filepath.Join(dir, "www", "index.html"), "<html></html>")

	return &TestProject{env: e, path: dir}
}

// CreateEmptyDir makes a directory that is not a Cordova project
func (e *TestEnvironment) CreateEmptyDir(name string) *TestProject {
	e.t.Helper()

	dir := filepath.Join(e.tmpDir, name)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory: %v", err)
	}

	return &TestProject{env: e, path: dir}
}

func (e *TestEnvironment) writeFile(path, content string) {
	e.t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// RunCDV runs cdv outside any project
func (e *TestEnvironment) RunCDV(args ...string) (string, error) {
	return e.runCDV(e.tmpDir, nil, args...)
}

func (e *TestEnvironment) runCDV(dir string, extraEnv []string, args ...string) (string, error) {
	for _, arg := range args {
		if err := validateArg(arg); err != nil {
			return "", fmt.Errorf("invalid argument: %w", err)
		}
	}

	cmd := exec.Command(e.cdvBinary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.tmpDir,
		"CDV_CORDOVA="+e.toolPath,
		"NO_COLOR=1",
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (e *TestEnvironment) TmpDir() string {
	return e.tmpDir
}

// Invocations returns every call the fake cordova received, as working
// directory followed by arguments
func (e *TestEnvironment) Invocations() [][]string {
	return testutil.Invocations(e.t, e.toolLog)
}

// ResetInvocations forgets the calls recorded so far
func (e *TestEnvironment) ResetInvocations() {
	if err := os.Remove(e.toolLog); err != nil && !os.IsNotExist(err) {
		e.t.Fatalf("Failed to reset invocation log: %v", err)
	}
}

type TestProject struct {
	env  *TestEnvironment
	path string
}

// RunCDV runs cdv from inside the project directory
func (p *TestProject) RunCDV(args ...string) (string, error) {
	return p.env.runCDV(p.path, nil, args...)
}

// RunCDVFailing runs cdv with the fake cordova exiting with code
func (p *TestProject) RunCDVFailing(code int, args ...string) (string, error) {
	return p.env.runCDV(p.path, []string{fmt.Sprintf("%s=%d", testutil.FakeToolExitEnv, code)}, args...)
}

func (p *TestProject) Path() string {
	return p.path
}

func (p *TestProject) WriteConfig(content string) {
	p.env.writeFile(filepath.Join(p.path, ".cdv.yml"), content)
}

func (p *TestProject) WriteFile(path, content string) {
	p.env.writeFile(filepath.Join(p.path, path), content)
}

func (p *TestProject) HasFile(path string) bool {
	_, err := os.Stat(filepath.Join(p.path, path))
	return err == nil
}

func (p *TestProject) ReadFile(path string) string {
	content, err := os.ReadFile(filepath.Join(p.path, path))
	if err != nil {
		p.env.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// validateArg checks if an argument is safe to pass to exec.Command
func validateArg(arg string) error {
	if arg == "" {
		return nil
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\n", "\r"}
	for _, char := range dangerousChars {
		if strings.Contains(arg, char) {
			return fmt.Errorf("argument contains potentially dangerous character: %s", char)
		}
	}

	return nil
}
