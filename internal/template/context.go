package template

import (
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

// Value is a tagged variant over the types a context can hold. The zero
// value is the null value. Values are immutable once constructed; sharing
// them across concurrent renders is safe.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	list []Value
	m    *Map
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List returns a list value holding the given elements in order.
func List(elems ...Value) Value { return Value{kind: KindList, list: elems} }

// MapValue wraps an ordered map as a value.
func MapValue(m *Map) Value { return Value{kind: KindMap, m: m} }

// Kind reports the variant held by the value.
func (v Value) Kind() Kind { return v.kind }

// Map is a string-keyed map that preserves insertion order, so that
// {{#each}} over an object yields entries in a stable, author-chosen order.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set stores a key, appending it to the iteration order on first insert.
// It returns the map to allow chained construction.
func (m *Map) Set(key string, v Value) *Map {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

// Get returns the value stored under key and whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string { return m.keys }

// Entry is one step of an iteration over a list or map value.
type Entry struct {
	Index int    // position for list iterations
	Key   string // key for map iterations
	Value Value
	IsMap bool // true when the entry came from a map
}

// Items returns the entries of a list or map value in order. The second
// return is false when the value is not iterable (scalars, null).
func (v Value) Items() ([]Entry, bool) {
	switch v.kind {
	case KindList:
		entries := make([]Entry, len(v.list))
		for i, elem := range v.list {
			entries[i] = Entry{Index: i, Value: elem}
		}
		return entries, true
	case KindMap:
		entries := make([]Entry, 0, v.m.Len())
		for _, k := range v.m.Keys() {
			val, _ := v.m.Get(k)
			entries = append(entries, Entry{Key: k, Value: val, IsMap: true})
		}
		return entries, true
	default:
		return nil, false
	}
}

// String renders the value for interpolation. Lists and maps get a flat
// fallback form; structured consumption is expected to go through {{#each}}.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	case KindList:
		parts := make([]string, len(v.list))
		for i, elem := range v.list {
			parts[i] = elem.String()
		}
		return strings.Join(parts, ", ")
	case KindMap:
		parts := make([]string, 0, v.m.Len())
		for _, k := range v.m.Keys() {
			val, _ := v.m.Get(k)
			parts = append(parts, k+": "+val.String())
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// Truthy implements the emptiness rule used by conditionals: null, false,
// zero, the empty string, and empty collections are falsy; everything else
// is truthy.
func Truthy(v Value) bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return v.m.Len() > 0
	}
	return false
}

// Context is the read-only nested structure a render pass resolves
// variables against. It is never mutated by the engine and may be shared
// across concurrent render calls.
type Context struct {
	root *Map
}

// NewContext wraps an ordered map as a render context.
func NewContext(root *Map) *Context {
	if root == nil {
		root = NewMap()
	}
	return &Context{root: root}
}

// Lookup resolves a dotted path against the context. A missing segment or
// a non-map intermediate value yields (null, false); missing is a normal,
// silent outcome used pervasively for optional content.
func (c *Context) Lookup(path string) (Value, bool) {
	return lookupPath(MapValue(c.root), path)
}

// lookupPath walks a dotted path starting from an arbitrary value.
func lookupPath(v Value, path string) (Value, bool) {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		if cur.kind != KindMap {
			return Value{}, false
		}
		next, ok := cur.m.Get(seg)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// FromAny converts a decoded JSON value (as produced by encoding/json into
// interface{} containers) into a Value. Map keys are sorted so that
// contexts built from unordered Go maps render deterministically.
func FromAny(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case string:
		return String(x)
	case []interface{}:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = FromAny(e)
		}
		return List(elems...)
	case []string:
		elems := make([]Value, len(x))
		for i, s := range x {
			elems[i] = String(s)
		}
		return List(elems...)
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, FromAny(x[k]))
		}
		return MapValue(m)
	default:
		return Null()
	}
}
