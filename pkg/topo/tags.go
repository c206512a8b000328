package topo

import (
	"encoding/json"
	"sort"
	"strconv"
)

// ValueKind discriminates tag payload types.
type ValueKind int

const (
	ValueNone ValueKind = iota // marker tag, present but carries no payload
	ValueString
	ValueNumber
)

func (k ValueKind) String() string {
	switch k {
	case ValueNone:
		return "none"
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a tag payload: a string, a number, or an explicit none. A tag
// set to none is still present; absence of the tag is a different state.
type Value struct {
	kind ValueKind
	str  string
	num  float64
}

// None returns the marker value.
func None() Value { return Value{} }

// String returns a string-valued tag payload.
func String(s string) Value { return Value{kind: ValueString, str: s} }

// Number returns a numeric tag payload.
func Number(n float64) Value { return Value{kind: ValueNumber, num: n} }

// Kind reports which payload variant this value holds.
func (v Value) Kind() ValueKind { return v.kind }

// AsString returns the string payload, if this is a string value.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == ValueString
}

// AsNumber returns the numeric payload, if this is a number value.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == ValueNumber
}

// Equal reports whether two values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return "none"
	}
}

// MarshalJSON renders a none value as JSON null, keeping marker tags
// distinguishable from absent ones in the exported report.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueString:
		return json.Marshal(v.str)
	case ValueNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// TagSet holds the named attribute tags of one topological entity.
type TagSet map[string]Value

// Has reports whether the named tag is present, regardless of its value.
func (t TagSet) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Get returns the named tag's value and whether it is present.
func (t TagSet) Get(name string) (Value, bool) {
	v, ok := t[name]
	return v, ok
}

// Set assigns the named tag.
func (t TagSet) Set(name string, v Value) {
	t[name] = v
}

// Names returns the present tag names in sorted order.
func (t TagSet) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
