package ast

import "featsync/internal/source"

// TableKind distinguishes the implicit root, [table] and [[array]] sections.
type TableKind uint8

const (
	TableRoot TableKind = iota
	TableStd
	TableArray
)

// Table is one section of the document: the root section before the first
// header, or a [header] / [[header]] section with the entries that follow it.
type Table struct {
	Kind       TableKind
	Header     KeyPath
	HeaderSpan source.Span // "[a.b]" including brackets
	// HeaderLineEnd is the offset where the header line ends, after a
	// trailing comment and before the line break.
	HeaderLineEnd uint32
	Entries       []*KeyValue
}

// Get returns the entry with a single-segment key equal to key.
func (t *Table) Get(key string) *KeyValue { return lookup(t.Entries, key) }

// Dotted reports whether key is used as the head of a dotted key.
func (t *Table) Dotted(key string) bool { return dotted(t.Entries, key) }

// Set replaces the value of key or appends a new entry at the end of the table.
func (t *Table) Set(key string, v Value) *KeyValue {
	kv, added := set(t.Entries, key, v)
	if added {
		t.Entries = append(t.Entries, kv)
	}
	return kv
}

// InsertOffset is where appended entries go: the end of the last parsed
// entry's line, or the end of the header line for a table without entries.
// ok is false for a root table without parsed entries.
func (t *Table) InsertOffset() (off uint32, ok bool) {
	for i := len(t.Entries) - 1; i >= 0; i-- {
		if kv := t.Entries[i]; !kv.Synthetic() {
			return kv.LineEnd, true
		}
	}
	if t.Kind == TableRoot {
		return 0, false
	}
	return t.HeaderLineEnd, true
}
