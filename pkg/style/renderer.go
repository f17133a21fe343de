package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering command output
type Renderer interface {
	RenderFiles(title string, files []FileLine) string
	RenderError(err error) string
}

// NewRenderer picks the terminal renderer for terminals and the plain one
// otherwise.
func NewRenderer(w io.Writer) Renderer {
	if IsTerminal(w) {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderFiles renders a titled file listing with a summary line
func (r *TerminalRenderer) RenderFiles(title string, files []FileLine) string {
	if len(files) == 0 {
		return MutedStyle.Render("No files")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render(title) + "\n")
	for _, f := range files {
		result.WriteString(RenderFileLine(f) + "\n")
	}
	result.WriteString("\n" + pterm.Info.Prefix.Text + " " + Summarize(files))
	return result.String()
}

// RenderError renders an error message. Coded errors already carry their
// code in Error().
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderFiles renders one "status path" row per file
func (r *PlainRenderer) RenderFiles(title string, files []FileLine) string {
	if len(files) == 0 {
		return "No files"
	}

	var result strings.Builder
	result.WriteString(title + ":\n")
	for _, f := range files {
		result.WriteString(fmt.Sprintf("  %s %s\n", f.Status, f.Path))
	}
	result.WriteString(Summarize(files))
	return result.String()
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}
