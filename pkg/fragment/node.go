package fragment

import "fmt"

// Kind identifies which variant a Node holds.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is one of *Mapping, *Sequence or Scalar. The set is closed.
type Node interface {
	Kind() Kind
	node()
}

// Mapping is a string-keyed map that remembers insertion order.
type Mapping struct {
	keys   []string
	values map[string]Node
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Node)}
}

func (m *Mapping) Kind() Kind { return KindMapping }
func (m *Mapping) node()      {}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. A new key is appended to the key order; an
// existing key keeps its position. A nil value is stored as Null.
func (m *Mapping) Set(key string, value Node) *Mapping {
	if m.values == nil {
		m.values = make(map[string]Node)
	}
	if value == nil {
		value = Null()
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Delete removes key. Missing keys are ignored.
func (m *Mapping) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Lookup walks nested mappings along path.
func (m *Mapping) Lookup(path ...string) (Node, bool) {
	var cur Node = m
	for _, key := range path {
		mm, ok := cur.(*Mapping)
		if !ok {
			return nil, false
		}
		cur, ok = mm.Get(key)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Sequence is an ordered list of nodes.
type Sequence struct {
	items []Node
}

// NewSequence returns a sequence holding items. Nil items become Null.
func NewSequence(items ...Node) *Sequence {
	s := &Sequence{items: make([]Node, 0, len(items))}
	for _, it := range items {
		s.Append(it)
	}
	return s
}

func (s *Sequence) Kind() Kind { return KindSequence }
func (s *Sequence) node()      {}

// Len returns the number of items.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the item at index i.
func (s *Sequence) At(i int) Node { return s.items[i] }

// Items returns a copy of the item slice.
func (s *Sequence) Items() []Node {
	if s == nil {
		return nil
	}
	out := make([]Node, len(s.items))
	copy(out, s.items)
	return out
}

// Append adds item at the end.
func (s *Sequence) Append(item Node) *Sequence {
	if item == nil {
		item = Null()
	}
	s.items = append(s.items, item)
	return s
}

// Contains reports whether a structurally equal item is present.
func (s *Sequence) Contains(item Node) bool {
	for _, it := range s.items {
		if Equal(it, item) {
			return true
		}
	}
	return false
}

// Scalar is a leaf value. Value is one of nil, bool, int64, float64, string.
type Scalar struct {
	value any
}

func (s Scalar) Kind() Kind { return KindScalar }
func (s Scalar) node()      {}

// Value returns the underlying Go value.
func (s Scalar) Value() any { return s.value }

// IsNull reports whether the scalar is null.
func (s Scalar) IsNull() bool { return s.value == nil }

func String(v string) Scalar { return Scalar{value: v} }
func Int(v int) Scalar       { return Scalar{value: int64(v)} }
func Int64(v int64) Scalar   { return Scalar{value: v} }
func Float(v float64) Scalar { return Scalar{value: v} }
func Bool(v bool) Scalar     { return Scalar{value: v} }
func Null() Scalar           { return Scalar{} }
