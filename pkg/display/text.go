package display

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/dotbrew/pkg/dispatcher"
)

// TextRenderer writes plain text without colors or styling
type TextRenderer struct {
	output io.Writer
}

// NewTextRenderer creates a new text renderer
func NewTextRenderer(output io.Writer) *TextRenderer {
	return &TextRenderer{output: output}
}

// RenderResult writes one line per task followed by a summary line
func (r *TextRenderer) RenderResult(result *dispatcher.Result) error {
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	for _, t := range result.Tasks {
		if t.Directive == dispatcher.DirectiveDefaults {
			continue
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", taskStatus(t), t.Directive, joinItems(t.Items)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	ran, failed, skipped := summary(result)
	line := fmt.Sprintf("%d tasks run, %d failed, %d skipped", ran, failed, skipped)
	if result.Stopped {
		line += " (stopped on failure)"
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

// RenderDirectives writes each directive with its default options
func (r *TextRenderer) RenderDirectives(directives []DirectiveInfo) error {
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	for _, d := range directives {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", d.Name, formatOptions(d.Options)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// RenderError renders an error as plain text
func (r *TextRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %s\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *TextRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// formatOptions renders options as "name=value" sorted by name
func formatOptions(opts map[string]bool) string {
	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%t", name, opts[name]))
	}
	return strings.Join(parts, " ")
}
