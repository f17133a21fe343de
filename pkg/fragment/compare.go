package fragment

// Equal reports whether a and b are structurally equal. Mapping key order
// is ignored; sequence order is not. Integers and floats compare by value.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return isNull(a) && isNull(b)
	}
	switch x := a.(type) {
	case *Mapping:
		y, ok := b.(*Mapping)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.keys {
			yv, ok := y.values[k]
			if !ok || !Equal(x.values[k], yv) {
				return false
			}
		}
		return true
	case *Sequence:
		y, ok := b.(*Sequence)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i := range x.items {
			if !Equal(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	case Scalar:
		y, ok := b.(Scalar)
		if !ok {
			return false
		}
		return scalarEqual(x.value, y.value)
	}
	return false
}

// OrderedEqual is Equal that also requires mapping keys in the same order.
func OrderedEqual(a, b Node) bool {
	if !Equal(a, b) {
		return false
	}
	switch x := a.(type) {
	case *Mapping:
		y := b.(*Mapping)
		for i, k := range x.keys {
			if y.keys[i] != k || !OrderedEqual(x.values[k], y.values[k]) {
				return false
			}
		}
	case *Sequence:
		y := b.(*Sequence)
		for i := range x.items {
			if !OrderedEqual(x.items[i], y.items[i]) {
				return false
			}
		}
	}
	return true
}

func scalarEqual(a, b any) bool {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false
	case float64:
		switch y := b.(type) {
		case int64:
			return x == float64(y)
		case float64:
			return x == y
		}
		return false
	}
	return a == b
}

func isNull(n Node) bool {
	if n == nil {
		return true
	}
	s, ok := n.(Scalar)
	return ok && s.value == nil
}

// Clone returns a deep copy of n. A nil node clones to Null.
func Clone(n Node) Node {
	switch t := n.(type) {
	case *Mapping:
		if t == nil {
			return NewMapping()
		}
		out := &Mapping{
			keys:   make([]string, len(t.keys)),
			values: make(map[string]Node, len(t.values)),
		}
		copy(out.keys, t.keys)
		for k, v := range t.values {
			out.values[k] = Clone(v)
		}
		return out
	case *Sequence:
		if t == nil {
			return NewSequence()
		}
		out := &Sequence{items: make([]Node, len(t.items))}
		for i, it := range t.items {
			out.items[i] = Clone(it)
		}
		return out
	case Scalar:
		return t
	}
	return Null()
}
