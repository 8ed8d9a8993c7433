// Package display renders command results for people and machines.
// It supports terminal (rich), text (plain), and JSON output formats.
package display

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/dotbrew/pkg/dispatcher"
	"github.com/arthur-debert/dotbrew/pkg/errors"
)

// DirectiveInfo describes a directive and its built-in options
type DirectiveInfo struct {
	Name    string          `json:"name"`
	Options map[string]bool `json:"options"`
}

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders the outcome of a task run
	RenderResult(result *dispatcher.Result) error

	// RenderDirectives renders the directive listing
	RenderDirectives(directives []DirectiveInfo) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format, detecting terminal
// capabilities when format is FormatAuto
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return NewTerminalRenderer(output), nil
	case FormatText:
		return NewTextRenderer(output), nil
	case FormatJSON:
		return NewJSONRenderer(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

// taskStatus is the one-word state of a task
func taskStatus(t dispatcher.TaskResult) string {
	switch {
	case t.Skipped:
		return "skipped"
	case !t.Handled:
		return "unhandled"
	case t.Success:
		return "ok"
	default:
		return "failed"
	}
}

func joinItems(items []string) string {
	return strings.Join(items, ", ")
}

// summary counts tasks per state, skipping the defaults bookkeeping entries
func summary(result *dispatcher.Result) (ran, failed, skipped int) {
	for _, t := range result.Tasks {
		if t.Directive == dispatcher.DirectiveDefaults {
			continue
		}
		switch taskStatus(t) {
		case "skipped":
			skipped++
		case "ok":
			ran++
		default:
			ran++
			failed++
		}
	}
	return ran, failed, skipped
}
