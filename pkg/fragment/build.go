package fragment

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/arthur-debert/repokit/pkg/errors"
)

// Pair is one key/value entry for Obj.
type Pair struct {
	Key   string
	Value Node
}

// P builds a Pair, lifting value with MustFromValue.
func P(key string, value any) Pair {
	return Pair{Key: key, Value: MustFromValue(value)}
}

// Obj builds a mapping from pairs, in the order given.
func Obj(pairs ...Pair) *Mapping {
	m := NewMapping()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Seq builds a sequence, lifting each value with MustFromValue.
func Seq(values ...any) *Sequence {
	s := &Sequence{items: make([]Node, 0, len(values))}
	for _, v := range values {
		s.Append(MustFromValue(v))
	}
	return s
}

// Strings builds a sequence of string scalars.
func Strings(values ...string) *Sequence {
	s := &Sequence{items: make([]Node, 0, len(values))}
	for _, v := range values {
		s.Append(String(v))
	}
	return s
}

// MustFromValue is FromValue for literal template data; it panics on
// values that cannot be represented.
func MustFromValue(v any) Node {
	n, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return n
}

// FromValue lifts a Go value into a tree. Nodes are deep-copied. Plain Go
// maps carry no order, so their keys are sorted.
func FromValue(v any) (Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Node:
		return Clone(t), nil
	case Pair:
		return Obj(t), nil
	case []Pair:
		return Obj(t...), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int64(int64(t)), nil
	case int8:
		return Int64(int64(t)), nil
	case int16:
		return Int64(int64(t)), nil
	case int32:
		return Int64(int64(t)), nil
	case int64:
		return Int64(t), nil
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return Int64(int64(t)), nil
	case uint16:
		return Int64(int64(t)), nil
	case uint32:
		return Int64(int64(t)), nil
	case uint64:
		return fromUint(t)
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case []any:
		s := &Sequence{items: make([]Node, 0, len(t))}
		for i, item := range t {
			n, err := FromValue(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			s.Append(n)
		}
		return s, nil
	case []string:
		return Strings(t...), nil
	case map[string]any:
		m := NewMapping()
		for _, k := range sortedKeys(t) {
			n, err := FromValue(t[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(k, n)
		}
		return m, nil
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) (Node, error) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		s := &Sequence{items: make([]Node, 0, rv.Len())}
		for i := 0; i < rv.Len(); i++ {
			n, err := FromValue(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			s.Append(n)
		}
		return s, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errors.Newf(errors.ErrInvalidInput, "map keys must be strings, got %s", rv.Type().Key())
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			n, err := FromValue(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(k, n)
		}
		return m, nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromValue(rv.Elem().Interface())
	case reflect.Invalid:
		return Null(), nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unsupported value of type %s", rv.Type())
}

// fromUint rejects values an int64 scalar cannot hold.
func fromUint(u uint64) (Node, error) {
	if u > math.MaxInt64 {
		return nil, errors.Newf(errors.ErrInvalidInput, "integer %d overflows int64", u)
	}
	return Int64(int64(u)), nil
}

// ToValue lowers a tree into map[string]any, []any and scalar values.
func ToValue(n Node) any {
	switch t := n.(type) {
	case *Mapping:
		out := make(map[string]any, t.Len())
		for _, k := range t.keys {
			out[k] = ToValue(t.values[k])
		}
		return out
	case *Sequence:
		out := make([]any, 0, t.Len())
		for _, it := range t.items {
			out = append(out, ToValue(it))
		}
		return out
	case Scalar:
		return t.value
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
