package codec

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/fragment"
	"gopkg.in/yaml.v3"
)

// ParseYAML decodes the first document in data. Mapping key order is kept.
// An empty document yields an empty mapping.
func ParseYAML(data []byte) (fragment.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrYAMLParse, "failed to parse YAML")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return fragment.NewMapping(), nil
	}
	n, err := fromYAMLNode(doc.Content[0])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrYAMLParse, "failed to parse YAML")
	}
	return n, nil
}

// MustParseYAML is ParseYAML for embedded template data.
func MustParseYAML(data []byte) fragment.Node {
	n, err := ParseYAML(data)
	if err != nil {
		panic(err)
	}
	return n
}

func fromYAMLNode(n *yaml.Node) (fragment.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return fragment.Null(), nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.MappingNode:
		m := fragment.NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
				if err := spliceMerge(m, v); err != nil {
					return nil, fmt.Errorf("line %d: %w", k.Line, err)
				}
				continue
			}
			val, err := fromYAMLNode(v)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k.Value, err)
			}
			m.Set(k.Value, val)
		}
		return m, nil
	case yaml.SequenceNode:
		s := fragment.NewSequence()
		for i, c := range n.Content {
			val, err := fromYAMLNode(c)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			s.Append(val)
		}
		return s, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

// spliceMerge applies "<<: *a" or "<<: [*a, *b]". Explicit keys of m win,
// and earlier mappings in a list win over later ones.
func spliceMerge(m *fragment.Mapping, v *yaml.Node) error {
	sources := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	}
	for _, src := range sources {
		merged, err := fromYAMLNode(src)
		if err != nil {
			return err
		}
		mm, ok := merged.(*fragment.Mapping)
		if !ok {
			return fmt.Errorf("merge key needs a mapping or a list of mappings")
		}
		for _, key := range mm.Keys() {
			if !m.Has(key) {
				val, _ := mm.Get(key)
				m.Set(key, val)
			}
		}
	}
	return nil
}

func yamlScalar(n *yaml.Node) (fragment.Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return fragment.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return fragment.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return fragment.Int64(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return fragment.Float(f), nil
	}
	return fragment.String(n.Value), nil
}

// EncodeYAML renders n as a YAML document with two-space indentation.
func EncodeYAML(n fragment.Node) ([]byte, error) {
	node, err := toYAMLNode(n)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrYAMLEncode, "failed to encode YAML")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, errors.Wrap(err, errors.ErrYAMLEncode, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrYAMLEncode, "failed to encode YAML")
	}
	return buf.Bytes(), nil
}

func toYAMLNode(n fragment.Node) (*yaml.Node, error) {
	switch t := n.(type) {
	case *fragment.Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range t.Keys() {
			v, _ := t.Get(key)
			child, err := toYAMLNode(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child,
			)
		}
		return out, nil
	case *fragment.Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, item := range t.Items() {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out.Content = append(out.Content, child)
		}
		return out, nil
	case fragment.Scalar:
		return yamlScalarNode(t.Value())
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("unsupported node %T", n)
}

func yamlScalarNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(t, 10)}, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("unsupported float value %v", t)
		}
		s := strconv.FormatFloat(t, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}, nil
	}
	return nil, fmt.Errorf("unsupported scalar %T", v)
}
