package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/fragment"
)

// DefaultIndent is the indent used for generated JSON files.
const DefaultIndent = "  "

// ParseJSON decodes a single JSON document, keeping object key order.
func ParseJSON(data []byte) (fragment.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := decodeJSONValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrJSONParse, "failed to parse JSON")
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected trailing token %v", tok)
		}
		return nil, errors.Wrap(err, errors.ErrJSONParse, "failed to parse JSON")
	}
	return n, nil
}

func decodeJSONValue(dec *json.Decoder) (fragment.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := fragment.NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			s := fragment.NewSequence()
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				s.Append(v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return s, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return fragment.Int64(i), nil
		}
		if !strings.ContainsAny(t.String(), ".eE") {
			return nil, fmt.Errorf("integer %s overflows int64", t)
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return fragment.Float(f), nil
	case string:
		return fragment.String(t), nil
	case bool:
		return fragment.Bool(t), nil
	case nil:
		return fragment.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// StringifyJSON encodes n with DefaultIndent and a trailing newline.
func StringifyJSON(n fragment.Node) ([]byte, error) {
	return StringifyJSONIndent(n, DefaultIndent)
}

// StringifyJSONIndent encodes n with the given indent unit. An empty indent
// produces compact output.
func StringifyJSONIndent(n fragment.Node, indent string) ([]byte, error) {
	var buf bytes.Buffer
	w := &jsonWriter{buf: &buf, indent: indent}
	if err := w.write(n, 0); err != nil {
		return nil, errors.Wrap(err, errors.ErrJSONStringify, "failed to stringify JSON")
	}
	if indent != "" {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

type jsonWriter struct {
	buf    *bytes.Buffer
	indent string
}

func (w *jsonWriter) newline(depth int) {
	if w.indent == "" {
		return
	}
	w.buf.WriteByte('\n')
	w.buf.WriteString(strings.Repeat(w.indent, depth))
}

func (w *jsonWriter) write(n fragment.Node, depth int) error {
	switch t := n.(type) {
	case *fragment.Mapping:
		if t.Len() == 0 {
			w.buf.WriteString("{}")
			return nil
		}
		w.buf.WriteByte('{')
		for i, key := range t.Keys() {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.newline(depth + 1)
			if err := w.scalar(key); err != nil {
				return err
			}
			w.buf.WriteByte(':')
			if w.indent != "" {
				w.buf.WriteByte(' ')
			}
			v, _ := t.Get(key)
			if err := w.write(v, depth+1); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		w.newline(depth)
		w.buf.WriteByte('}')
		return nil
	case *fragment.Sequence:
		if t.Len() == 0 {
			w.buf.WriteString("[]")
			return nil
		}
		w.buf.WriteByte('[')
		for i, item := range t.Items() {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.newline(depth + 1)
			if err := w.write(item, depth+1); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		w.newline(depth)
		w.buf.WriteByte(']')
		return nil
	case fragment.Scalar:
		return w.scalar(t.Value())
	case nil:
		w.buf.WriteString("null")
		return nil
	}
	return fmt.Errorf("unsupported node %T", n)
}

// scalar defers to encoding/json so escaping and float formatting match
// what every other JSON tool produces.
func (w *jsonWriter) scalar(v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	w.buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
