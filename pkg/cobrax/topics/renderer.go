package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for display
type Renderer interface {
	// Render formats content; ext is the topic file's extension
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour. Other formats pass
// through unchanged.
type GlamourRenderer struct {
	// Style is a glamour standard style ("dark", "light", "notty", ...);
	// empty or "auto" detects from the terminal
	Style string

	// Width wraps output at this column; 0 keeps glamour's default
	Width int
}

// NewGlamourRenderer creates a markdown renderer with auto-detected style
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts markdown to styled terminal output, falling back to the
// raw content when glamour fails
func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style == "" || r.Style == "auto" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
