package codec

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/fragment"
)

// Format names an on-disk encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatJS    Format = "js"
	FormatLines Format = "lines"
)

// Options carries the format-specific knobs for Encode.
type Options struct {
	Indent string   // JSON indent; DefaultIndent when empty
	Module JSModule // FormatJS only
	Header []string // FormatLines only
}

// Encode renders n in the given format.
func Encode(format Format, n fragment.Node, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		indent := opts.Indent
		if indent == "" {
			indent = DefaultIndent
		}
		return StringifyJSONIndent(n, indent)
	case FormatYAML:
		return EncodeYAML(n)
	case FormatJS:
		return EncodeJSModule(n, opts.Module)
	case FormatLines:
		return EncodeLines(n, opts.Header)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q", format)
}

// FormatForPath guesses a format from a file name.
func FormatForPath(path string) Format {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json":
		return FormatJSON
	case ".yml", ".yaml":
		return FormatYAML
	case ".js", ".cjs", ".mjs", ".ts", ".mts", ".cts":
		return FormatJS
	}
	return FormatLines
}
