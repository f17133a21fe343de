package merge

import (
	"github.com/arthur-debert/repokit/pkg/fragment"
)

// Merge combines fragments in order. No fragments yield an empty mapping.
func Merge(fragments ...fragment.Node) fragment.Node {
	if len(fragments) == 0 {
		return fragment.NewMapping()
	}

	result := fragment.Clone(fragments[0])
	for _, src := range fragments[1:] {
		result = mergeInto(result, src)
	}
	return result
}

// Mappings is Merge for callers that only deal in mappings. Nil entries are
// skipped.
func Mappings(fragments ...*fragment.Mapping) *fragment.Mapping {
	nodes := make([]fragment.Node, 0, len(fragments))
	for _, f := range fragments {
		if f != nil {
			nodes = append(nodes, f)
		}
	}
	// Every input is a mapping, so the fold stays one.
	return Merge(nodes...).(*fragment.Mapping)
}

// mergeInto merges src into dst. dst is owned by the caller and may be
// modified; src is only read.
func mergeInto(dst, src fragment.Node) fragment.Node {
	switch s := src.(type) {
	case *fragment.Mapping:
		d, ok := dst.(*fragment.Mapping)
		if !ok {
			return fragment.Clone(s)
		}
		for _, key := range s.Keys() {
			sv, _ := s.Get(key)
			if dv, exists := d.Get(key); exists {
				d.Set(key, mergeInto(dv, sv))
			} else {
				d.Set(key, fragment.Clone(sv))
			}
		}
		return d

	case *fragment.Sequence:
		d, ok := dst.(*fragment.Sequence)
		if !ok {
			return fragment.Clone(s)
		}
		for _, item := range s.Items() {
			if !d.Contains(item) {
				d.Append(fragment.Clone(item))
			}
		}
		return d
	}

	return fragment.Clone(src)
}
