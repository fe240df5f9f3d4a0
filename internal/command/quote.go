package command

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Quote wraps arg in single quotes so a POSIX shell reads it back as one word.
// Each embedded single quote is replaced by the sequence
//
//	'\''
//
// Nothing else is escaped: this is not a complete injection defense, and
// Command.Argv should be preferred wherever no shell is involved.
func Quote(arg string) string {
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// quoteIfNeeded leaves shell-safe tokens untouched
func quoteIfNeeded(s string) string {
	if s == "" {
		return "''"
	}
	for _, r := range s {
		if !isShellSafe(r) {
			return Quote(s)
		}
	}
	return s
}

func isShellSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("/._-+:,=@%", r)
}

// Tool locates the build tool executable
type Tool struct {
	Path string
	Args []string
}

// ParseTool splits a configured tool string such as "npx cordova" into a Tool
func ParseTool(s string) (Tool, error) {
	parts, err := shlex.Split(s)
	if err != nil {
		return Tool{}, fmt.Errorf("failed to parse tool %q: %w", s, err)
	}
	if len(parts) == 0 {
		return Tool{}, fmt.Errorf("tool is empty")
	}
	return Tool{Path: parts[0], Args: parts[1:]}, nil
}

func (t Tool) String() string {
	return Command{Name: t.Path, ToolArgs: t.Args}.String()
}
