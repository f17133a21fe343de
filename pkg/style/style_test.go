package style

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.False(t, ColorEnabled(&bytes.Buffer{}))
}

func TestNewRendererForPipes(t *testing.T) {
	_, ok := NewRenderer(&bytes.Buffer{}).(*PlainRenderer)
	assert.True(t, ok)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		files []FileLine
		want  string
	}{
		{"empty", nil, "nothing to do"},
		{"mixed", []FileLine{
			{Path: "a", Status: StatusSkipped},
			{Path: "b", Status: StatusWritten},
			{Path: "c", Status: StatusWritten},
		}, "2 written, 1 skipped"},
		{"planned", []FileLine{{Path: "a", Status: StatusPlanned}}, "1 planned"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.files))
		})
	}
}

func TestPlainRenderer(t *testing.T) {
	r := NewPlainRenderer()
	out := r.RenderFiles("Generated", []FileLine{
		{Path: "package.json", Status: StatusWritten},
		{Path: ".gitignore", Status: StatusSkipped},
	})
	assert.Equal(t, "Generated:\n  written package.json\n  skipped .gitignore\n1 written, 1 skipped", out)
	assert.Equal(t, "No files", r.RenderFiles("Generated", nil))
	assert.Equal(t, "Error: [INTERNAL] boom", r.RenderError(errors.New(errors.ErrInternal, "boom")))
	assert.Empty(t, r.RenderError(nil))
}

func TestTerminalRenderer(t *testing.T) {
	r := NewTerminalRenderer()
	out := r.RenderFiles("Plan", []FileLine{{Path: "tsconfig.json", Format: "json", Status: StatusPlanned, Size: 12}})
	assert.Contains(t, out, "Plan")
	assert.Contains(t, out, "tsconfig.json")
	assert.Contains(t, out, "(json)")
	assert.Contains(t, out, "12B")
	assert.Contains(t, out, "1 planned")

	msg := r.RenderError(errors.New(errors.ErrFileWrite, "disk full"))
	assert.Equal(t, 1, strings.Count(msg, "FILE_WRITE"), msg)
	assert.Contains(t, msg, "[FILE_WRITE] disk full")
}

func TestRenderFileLinePadsStatus(t *testing.T) {
	line := RenderFileLine(FileLine{Path: "x", Status: StatusWritten})
	assert.True(t, strings.HasPrefix(line, "  wrote "), line)
}
