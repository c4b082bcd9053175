// Package jsontree models an untyped JSON document as an ordered tree and
// provides discriminator-field search over it. X's GraphQL responses embed
// entities at arbitrary depths tagged by fields like __typename, so callers
// search the tree instead of binding to fixed struct paths.
package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	Invalid Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

// Member is a single object field. Objects keep their members in document
// order so traversal is deterministic regardless of map iteration.
type Member struct {
	Key   string
	Value *Value
}

// Value is one node of a parsed JSON document: a scalar, an array, or an
// object. Values are read-only after parsing.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	b    bool
	arr  []*Value
	obj  []Member
	idx  map[string]*Value
}

// Parse decodes a JSON document into a Value tree. Numbers are kept as
// json.Number so their exact text survives round-trips.
func Parse(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseNext(dec)
	if err != nil {
		return nil, fmt.Errorf("jsontree: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("jsontree: trailing data after document")
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

func parseNext(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			v := &Value{kind: Object, idx: make(map[string]*Value)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				child, err := parseNext(dec)
				if err != nil {
					return nil, err
				}
				v.obj = append(v.obj, Member{Key: key, Value: child})
				// First occurrence wins for duplicate keys.
				if _, dup := v.idx[key]; !dup {
					v.idx[key] = child
				}
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}
			return v, nil
		case '[':
			v := &Value{kind: Array}
			for dec.More() {
				child, err := parseNext(dec)
				if err != nil {
					return nil, err
				}
				v.arr = append(v.arr, child)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}
			return v, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return &Value{kind: String, str: t}, nil
	case json.Number:
		return &Value{kind: Number, num: t}, nil
	case bool:
		return &Value{kind: Bool, b: t}, nil
	case nil:
		return &Value{kind: Null}, nil
	}
	return nil, fmt.Errorf("unexpected token %T", tok)
}

// MarshalJSON re-serializes the tree, preserving object member order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) write(buf *bytes.Buffer) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.b))
	case Number:
		buf.WriteString(v.num.String())
	case String:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Array:
		buf.WriteByte('[')
		for i, el := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := el.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := m.Value.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("jsontree: invalid value")
	}
	return nil
}

// Kind reports the JSON type of the value. A nil Value is Invalid.
func (v *Value) Kind() Kind {
	if v == nil {
		return Invalid
	}
	return v.kind
}

// Field returns the value of an object member by key.
func (v *Value) Field(key string) (*Value, bool) {
	if v == nil || v.kind != Object {
		return nil, false
	}
	f, ok := v.idx[key]
	return f, ok
}

// Get walks nested object fields and returns the value at the end of the
// path, or nil if any step is missing or not an object.
func (v *Value) Get(path ...string) *Value {
	cur := v
	for _, key := range path {
		next, ok := cur.Field(key)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Members returns the object members in document order.
func (v *Value) Members() []Member {
	if v == nil {
		return nil
	}
	return v.obj
}

// Elements returns the array elements in document order.
func (v *Value) Elements() []*Value {
	if v == nil {
		return nil
	}
	return v.arr
}

// Len returns the element count for arrays and the member count for objects.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	}
	return 0
}

// Scalar returns the canonical string form of a scalar value: the string
// itself, a number's exact text, or "true"/"false". The second result is
// false for null, arrays, objects, and nil.
func (v *Value) Scalar() (string, bool) {
	if v == nil {
		return "", false
	}
	switch v.kind {
	case String:
		return v.str, true
	case Number:
		return v.num.String(), true
	case Bool:
		return strconv.FormatBool(v.b), true
	}
	return "", false
}

// StringField is a convenience for reading a string-valued object field,
// returning "" when absent or not a scalar.
func (v *Value) StringField(key string) string {
	f, ok := v.Field(key)
	if !ok {
		return ""
	}
	s, _ := f.Scalar()
	return s
}
