package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"text/template"

	"github.com/arthur-debert/repokit/pkg/codec"
	"github.com/arthur-debert/repokit/pkg/errors"
	"github.com/arthur-debert/repokit/pkg/fragment"
)

//go:embed embedded/*.yaml
var embeddedFS embed.FS

var funcs = template.FuncMap{
	"quote":    strconv.Quote,
	"unscoped": UnscopedName,
}

// layers is the parsed shape of an embedded template file.
type layers struct {
	base        fragment.Node
	environment map[Environment]fragment.Node
	visibility  map[Visibility]fragment.Node
}

// load renders embedded/<name>.yaml with p and splits it into layers.
func load(name string, p Params) (*layers, error) {
	raw, err := embeddedFS.ReadFile("embedded/" + name + ".yaml")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "no template named %q", name)
	}

	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "template %s does not parse", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "template %s does not render", name)
	}

	doc, err := codec.ParseYAML(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	root, ok := doc.(*fragment.Mapping)
	if !ok {
		return nil, errors.Newf(errors.ErrInternal, "template %s is not a mapping", name)
	}

	l := &layers{
		base:        fragment.NewMapping(),
		environment: map[Environment]fragment.Node{},
		visibility:  map[Visibility]fragment.Node{},
	}
	if base, ok := root.Get("base"); ok {
		l.base = base
	}
	if envs, ok := root.Get("environment"); ok {
		if m, ok := envs.(*fragment.Mapping); ok {
			for _, k := range m.Keys() {
				v, _ := m.Get(k)
				l.environment[Environment(k)] = v
			}
		}
	}
	if vis, ok := root.Get("visibility"); ok {
		if m, ok := vis.(*fragment.Mapping); ok {
			for _, k := range m.Keys() {
				v, _ := m.Get(k)
				l.visibility[Visibility(k)] = v
			}
		}
	}
	return l, nil
}

// stack returns base, then the environment overlay, then the visibility
// overlay, skipping overlays the file does not define.
func (l *layers) stack(p Params) []fragment.Node {
	out := []fragment.Node{l.base}
	if n, ok := l.environment[p.Environment]; ok {
		out = append(out, n)
	}
	if n, ok := l.visibility[p.Visibility]; ok {
		out = append(out, n)
	}
	return out
}

// Names lists the embedded template names.
func Names() []string {
	entries, err := embeddedFS.ReadDir("embedded")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name()[:len(e.Name())-len(".yaml")])
	}
	return names
}
