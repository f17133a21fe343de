package codec

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/fragment"
)

// ExportStyle selects how a JavaScript module exposes its value.
type ExportStyle int

const (
	// ExportDefault emits "export default <value>;"
	ExportDefault ExportStyle = iota
	// ExportCommonJS emits "module.exports = <value>;"
	ExportCommonJS
)

// JSModule describes the shell around a config value in a JS/TS module.
type JSModule struct {
	Header  []string // comment lines, written as "// line"
	Imports []string // complete import statements
	Wrapper string   // optional call wrapping the value, e.g. "defineConfig"
	Style   ExportStyle
}

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// EncodeJSModule renders n as JavaScript module source.
func EncodeJSModule(n fragment.Node, mod JSModule) ([]byte, error) {
	var buf bytes.Buffer

	for _, line := range mod.Header {
		buf.WriteString("// ")
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	for _, imp := range mod.Imports {
		buf.WriteString(strings.TrimSuffix(imp, ";"))
		buf.WriteString(";\n")
	}
	if len(mod.Header) > 0 || len(mod.Imports) > 0 {
		buf.WriteByte('\n')
	}

	switch mod.Style {
	case ExportCommonJS:
		buf.WriteString("module.exports = ")
	default:
		buf.WriteString("export default ")
	}
	if mod.Wrapper != "" {
		buf.WriteString(mod.Wrapper)
		buf.WriteByte('(')
	}
	if err := writeJS(&buf, n, 0); err != nil {
		return nil, errors.Wrap(err, errors.ErrEncode, "failed to encode JavaScript module")
	}
	if mod.Wrapper != "" {
		buf.WriteByte(')')
	}
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

func writeJS(buf *bytes.Buffer, n fragment.Node, depth int) error {
	pad := strings.Repeat("  ", depth+1)
	switch t := n.(type) {
	case *fragment.Mapping:
		if t.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for _, key := range t.Keys() {
			buf.WriteString(pad)
			buf.WriteString(jsKey(key))
			buf.WriteString(": ")
			v, _ := t.Get(key)
			if err := writeJS(buf, v, depth+1); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			buf.WriteString(",\n")
		}
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteByte('}')
		return nil
	case *fragment.Sequence:
		if t.Len() == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range t.Items() {
			buf.WriteString(pad)
			if err := writeJS(buf, item, depth+1); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
			buf.WriteString(",\n")
		}
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteByte(']')
		return nil
	case fragment.Scalar:
		s, err := jsScalar(t.Value())
		if err != nil {
			return err
		}
		buf.WriteString(s)
		return nil
	case nil:
		buf.WriteString("null")
		return nil
	}
	return fmt.Errorf("unsupported node %T", n)
}

func jsKey(key string) string {
	if jsIdentifier.MatchString(key) {
		return key
	}
	return jsString(key)
}

func jsScalar(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", fmt.Errorf("unsupported float value %v", t)
		}
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case string:
		return jsString(t), nil
	}
	return "", fmt.Errorf("unsupported scalar %T", v)
}

// jsString quotes s with single quotes, the house style of the generated
// prettier config.
func jsString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x2028 || r == 0x2029 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
