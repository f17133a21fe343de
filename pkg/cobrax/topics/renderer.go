package topics

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Renderer formats topic content. format is the topic file extension,
// such as ".md".
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics exactly as written.
type PlainRenderer struct{}

// Render returns content unchanged.
func (PlainRenderer) Render(content string, _ string) string {
	return content
}

// RendererFor picks the renderer for help written to w. Terminals get
// glamour's auto style and pipes get its notty style. NO_COLOR selects
// plain text.
func RendererFor(w io.Writer) Renderer {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return PlainRenderer{}
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return NewGlamourRenderer()
	}
	return &GlamourRenderer{Style: "notty"}
}
