package display

import (
	"fmt"
	"io"
	"time"

	"github.com/arthur-debert/dotbrew/pkg/dispatcher"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

var (
	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	headingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}

	titleStyle   = lipgloss.NewStyle().Foreground(headingColor).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
)

// statusSymbols pairs each task state with its marker
var statusSymbols = map[string]string{
	"ok":        successStyle.Render("✓"),
	"failed":    errorStyle.Render("✗"),
	"unhandled": warningStyle.Render("?"),
	"skipped":   mutedStyle.Render("-"),
}

// TerminalRenderer provides rich terminal output
type TerminalRenderer struct {
	output io.Writer
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer(output io.Writer) *TerminalRenderer {
	return &TerminalRenderer{output: output}
}

// RenderResult renders the tasks as a table with a colored summary
func (r *TerminalRenderer) RenderResult(result *dispatcher.Result) error {
	data := pterm.TableData{{"", "Directive", "Items", "Time"}}
	for _, t := range result.Tasks {
		if t.Directive == dispatcher.DirectiveDefaults {
			continue
		}
		status := taskStatus(t)
		items := joinItems(t.Items)
		if status == "skipped" {
			items = mutedStyle.Render(items)
		}
		data = append(data, []string{
			statusSymbols[status],
			pterm.Bold.Sprint(t.Directive),
			items,
			mutedStyle.Render(t.Duration.Round(time.Millisecond).String()),
		})
	}

	if len(data) > 1 {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(r.output, table); err != nil {
			return err
		}
	}

	ran, failed, skipped := summary(result)
	line := fmt.Sprintf("%d tasks run, %d failed, %d skipped", ran, failed, skipped)
	switch {
	case failed > 0 && result.Stopped:
		line = errorStyle.Render(line + " (stopped on failure)")
	case failed > 0:
		line = errorStyle.Render(line)
	default:
		line = successStyle.Render(line)
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

// RenderDirectives renders the directive listing as a table
func (r *TerminalRenderer) RenderDirectives(directives []DirectiveInfo) error {
	data := pterm.TableData{{"Directive", "Default options"}}
	for _, d := range directives {
		data = append(data, []string{pterm.Bold.Sprint(d.Name), formatOptions(d.Options)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, titleStyle.Render("Directives")+"\n\n"+table)
	return err
}

// RenderError renders an error in the error style
func (r *TerminalRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, errorStyle.Render("Error: ")+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *TerminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
