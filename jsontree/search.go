package jsontree

import "encoding/json"

// Search returns every object reachable from v whose own field key has a
// scalar value whose string form equals target, in document traversal order
// (array elements first to last, object members first to last). A matching
// object's descendants are still searched: X nests identically shaped
// entities inside each other (a quoted post inside a post), so nested
// matches are part of the contract, not an accident.
//
// Scalars and null contribute no matches; nil input returns nil.
func Search(v *Value, key, target string) []*Value {
	var out []*Value
	search(v, key, target, &out)
	return out
}

func search(v *Value, key, target string, out *[]*Value) {
	if v == nil {
		return
	}
	switch v.kind {
	case Array:
		for _, el := range v.arr {
			search(el, key, target, out)
		}
	case Object:
		if f, ok := v.idx[key]; ok {
			if s, scalar := f.Scalar(); scalar && s == target {
				*out = append(*out, v)
			}
		}
		for _, m := range v.obj {
			search(m.Value, key, target, out)
		}
	}
}

// First returns the first match Search would return, without collecting the
// rest. It returns nil when nothing matches.
func First(v *Value, key, target string) *Value {
	if v == nil {
		return nil
	}
	switch v.kind {
	case Array:
		for _, el := range v.arr {
			if m := First(el, key, target); m != nil {
				return m
			}
		}
	case Object:
		if f, ok := v.idx[key]; ok {
			if s, scalar := f.Scalar(); scalar && s == target {
				return v
			}
		}
		for _, m := range v.obj {
			if found := First(m.Value, key, target); found != nil {
				return found
			}
		}
	}
	return nil
}

// Decode re-serializes a fragment and unmarshals it into T. Object member
// order is preserved, so decoding is faithful to the original document.
func Decode[T any](v *Value) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
