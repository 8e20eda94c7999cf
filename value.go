package ensurejson

import (
	"encoding/json"
	"strings"

	gojson "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind discriminates the variants of a parsed Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	default:
		return "object"
	}
}

// Value is the tagged union produced by the structural parser: null, bool,
// number, string, array or object. Numbers preserve their textual form as
// json.Number. Objects keep key insertion order; setting an existing key
// overwrites its value while keeping the first-seen position
// (last-write-wins for duplicate keys in the input).
//
// The zero Value is null. Values are cheap to copy; array and object
// variants share their backing storage.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  *orderedmap.OrderedMap[string, Value]
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a numeric literal. The literal is trusted to be a valid JSON
// number.
func Number(n json.Number) Value { return Value{kind: KindNumber, num: n} }

// Str wraps a string.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Array wraps a sequence of values.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Object returns an empty object value. Populate it with Set.
func Object() Value {
	return Value{kind: KindObject, obj: orderedmap.New[string, Value]()}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload, or "" for other kinds.
func (v Value) Number() json.Number { return v.num }

// Float64 converts a number value to float64.
func (v Value) Float64() (float64, error) { return v.num.Float64() }

// Int64 converts a number value to int64.
func (v Value) Int64() (int64, error) { return v.num.Int64() }

// Str returns the string payload, or "" for other kinds.
func (v Value) Str() string { return v.str }

// Len returns the element count of an array or object, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Index returns the i-th element of an array value.
func (v Value) Index(i int) Value { return v.arr[i] }

// Items returns the backing slice of an array value, nil for other kinds.
func (v Value) Items() []Value { return v.arr }

// Get looks up a key in an object value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// Keys returns the object keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, v.obj.Len())
	for p := v.obj.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Set stores key in an object value. An existing key keeps its original
// position and receives the new value. Set panics on non-object values.
func (v Value) Set(key string, val Value) {
	if v.kind != KindObject {
		panic("ensurejson: Set on non-object Value")
	}
	v.obj.Set(key, val)
}

// Interface converts v into untyped Go values: nil, bool, json.Number,
// string, []any, or map[string]any. Object key order is not preserved by the
// resulting map; use Keys for ordered traversal.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, it := range v.arr {
			out[i] = it.Interface()
		}
		return out
	default:
		out := make(map[string]any, v.obj.Len())
		for p := v.obj.Oldest(); p != nil; p = p.Next() {
			out[p.Key] = p.Value.Interface()
		}
		return out
	}
}

// Equal reports deep equality of two values. Numbers compare by their
// textual form; objects compare keys, values and insertion order.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == w.b
	case KindNumber:
		return v.num == w.num
	case KindString:
		return v.str == w.str
	case KindArray:
		if len(v.arr) != len(w.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(w.arr[i]) {
				return false
			}
		}
		return true
	default:
		if v.obj.Len() != w.obj.Len() {
			return false
		}
		p, q := v.obj.Oldest(), w.obj.Oldest()
		for p != nil {
			if p.Key != q.Key || !p.Value.Equal(q.Value) {
				return false
			}
			p, q = p.Next(), q.Next()
		}
		return true
	}
}

// MarshalJSON renders v as compact strict JSON, preserving object key order
// and numeric literals.
func (v Value) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	if err := v.encode(&b); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func (v Value) encode(b *strings.Builder) error {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(string(v.num))
	case KindString:
		enc, err := gojson.Marshal(v.str)
		if err != nil {
			return err
		}
		b.Write(enc)
	case KindArray:
		b.WriteByte('[')
		for i, it := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := it.encode(b); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	default:
		b.WriteByte('{')
		first := true
		for p := v.obj.Oldest(); p != nil; p = p.Next() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			key, err := gojson.Marshal(p.Key)
			if err != nil {
				return err
			}
			b.Write(key)
			b.WriteByte(':')
			if err := p.Value.encode(b); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	}
	return nil
}

// String renders v as compact JSON, for logging and debugging.
func (v Value) String() string {
	out, err := v.MarshalJSON()
	if err != nil {
		return "<invalid>"
	}
	return string(out)
}
