package ast

import "featsync/internal/source"

// Value is one of *String, *Scalar, *Array, *InlineTable.
type Value interface {
	Span() source.Span
	value()
}

// StringKind records how a string was quoted.
type StringKind uint8

const (
	StringBasic StringKind = iota
	StringLiteral
	StringMLBasic
	StringMLLiteral
)

type String struct {
	Value string
	Raw   string
	Kind  StringKind
	Src   source.Span
}

// NewString creates a synthetic basic string.
func NewString(s string) *String { return &String{Value: s} }

// ScalarKind classifies non-string scalars.
type ScalarKind uint8

const (
	ScalarInteger ScalarKind = iota
	ScalarFloat
	ScalarBool
	ScalarDatetime
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarInteger:
		return "integer"
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "boolean"
	case ScalarDatetime:
		return "datetime"
	}
	return "scalar"
}

// Scalar keeps numbers, booleans and datetimes as written.
type Scalar struct {
	Kind ScalarKind
	Raw  string
	Src  source.Span
}

type Array struct {
	Elems []Value
	Src   source.Span
}

// NewArray creates a synthetic array.
func NewArray(elems ...Value) *Array { return &Array{Elems: elems} }

// StringArray creates a synthetic array of basic strings.
func StringArray(items []string) *Array {
	elems := make([]Value, len(items))
	for i, s := range items {
		elems[i] = NewString(s)
	}
	return NewArray(elems...)
}

// Strings returns the string elements in order, skipping other kinds.
func (a *Array) Strings() []string {
	out := make([]string, 0, len(a.Elems))
	for _, e := range a.Elems {
		if s, ok := e.(*String); ok {
			out = append(out, s.Value)
		}
	}
	return out
}

// Contains reports whether a string element equals s.
func (a *Array) Contains(s string) bool {
	for _, e := range a.Elems {
		if str, ok := e.(*String); ok && str.Value == s {
			return true
		}
	}
	return false
}

// InlineTable is { k = v, ... }.
type InlineTable struct {
	Entries []*KeyValue
	Src     source.Span
}

// NewInlineTable creates a synthetic inline table.
func NewInlineTable() *InlineTable { return &InlineTable{} }

// Get returns the entry with a single-segment key equal to key.
func (t *InlineTable) Get(key string) *KeyValue { return lookup(t.Entries, key) }

// Set replaces the value of key or appends a new entry.
func (t *InlineTable) Set(key string, v Value) *KeyValue {
	kv, added := set(t.Entries, key, v)
	if added {
		t.Entries = append(t.Entries, kv)
	}
	return kv
}

// InsertOffset is where appended entries go: after the last parsed entry,
// or right after '{' for an empty table.
func (t *InlineTable) InsertOffset() uint32 {
	for i := len(t.Entries) - 1; i >= 0; i-- {
		if kv := t.Entries[i]; !kv.Synthetic() {
			return kv.ValueSpan.End
		}
	}
	return t.Src.Start + 1
}

func (s *String) Span() source.Span      { return s.Src }
func (s *Scalar) Span() source.Span      { return s.Src }
func (a *Array) Span() source.Span       { return a.Src }
func (t *InlineTable) Span() source.Span { return t.Src }

func (*String) value()      {}
func (*Scalar) value()      {}
func (*Array) value()       {}
func (*InlineTable) value() {}

// Synthetic reports whether v was built in memory rather than parsed.
func Synthetic(v Value) bool {
	return v == nil || v.Span().Empty()
}

// Describe names the kind of v for messages.
func Describe(v Value) string {
	switch v := v.(type) {
	case *String:
		return "string"
	case *Scalar:
		return v.Kind.String()
	case *Array:
		return "array"
	case *InlineTable:
		return "inline table"
	}
	return "value"
}
