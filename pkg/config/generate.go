package config

import (
	"strings"
)

// GenerateConfigContent returns a starter config file: the embedded defaults
// with every assignment commented out, so the file changes nothing until
// the user edits it
func GenerateConfigContent() string {
	return commentOutAssignments(DefaultConfigContent())
}

// commentOutAssignments prefixes "# " to lines that assign a value.
// Blank lines, comments and table headers are left alone.
func commentOutAssignments(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			out = append(out, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			out = append(out, line)
		default:
			out = append(out, "# "+line)
		}
	}

	return strings.Join(out, "\n")
}
