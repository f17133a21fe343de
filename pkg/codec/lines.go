package codec

import (
	"bytes"
	"fmt"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/fragment"
)

// EncodeLines renders a sequence of scalars one per line, for files such as
// .gitignore. Header lines are written first as "# line" comments. A mapping
// is rendered section by section: each key becomes a comment heading over
// its own sequence.
func EncodeLines(n fragment.Node, header []string) ([]byte, error) {
	var buf bytes.Buffer
	for _, h := range header {
		buf.WriteString("# ")
		buf.WriteString(h)
		buf.WriteByte('\n')
	}
	if len(header) > 0 {
		buf.WriteByte('\n')
	}

	switch t := n.(type) {
	case *fragment.Sequence:
		if err := writeLines(&buf, t); err != nil {
			return nil, err
		}
	case *fragment.Mapping:
		for i, key := range t.Keys() {
			if i > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString("# ")
			buf.WriteString(key)
			buf.WriteByte('\n')
			v, _ := t.Get(key)
			seq, ok := v.(*fragment.Sequence)
			if !ok {
				return nil, errors.Newf(errors.ErrEncode, "section %q is a %s, not a sequence", key, v.Kind())
			}
			if err := writeLines(&buf, seq); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errors.Newf(errors.ErrEncode, "line files need a sequence or mapping of sequences, got %T", n)
	}
	return buf.Bytes(), nil
}

func writeLines(buf *bytes.Buffer, seq *fragment.Sequence) error {
	for i, item := range seq.Items() {
		s, ok := item.(fragment.Scalar)
		if !ok || s.IsNull() {
			return errors.Newf(errors.ErrEncode, "line %d is not a value", i)
		}
		fmt.Fprintf(buf, "%v\n", s.Value())
	}
	return nil
}
