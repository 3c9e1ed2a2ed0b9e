package ast

import "featsync/internal/source"

// KeyValue is one `key = value` entry of a table or inline table.
type KeyValue struct {
	Key   KeyPath
	Value Value

	// Span covers key..value as parsed. Empty for inserted entries.
	Span source.Span
	// ValueSpan is the span of the value as parsed; a replacement value is
	// written over exactly these bytes.
	ValueSpan source.Span
	// LineEnd is the offset where the entry's line ends, after a trailing
	// comment and before the line break. Only set for header-table entries.
	LineEnd uint32
}

// Synthetic reports whether the entry was inserted in memory.
func (kv *KeyValue) Synthetic() bool { return kv.Span.Empty() }

// Replaced reports whether the parsed value was swapped for another one.
func (kv *KeyValue) Replaced() bool {
	return !kv.Synthetic() && (kv.Value == nil || kv.Value.Span() != kv.ValueSpan)
}

// SetValue replaces the value, keeping ValueSpan as the region to overwrite.
func (kv *KeyValue) SetValue(v Value) { kv.Value = v }

// Name returns the key of a single-segment entry.
func (kv *KeyValue) Name() (string, bool) {
	if len(kv.Key) != 1 {
		return "", false
	}
	return kv.Key[0].Name, true
}

func lookup(entries []*KeyValue, key string) *KeyValue {
	for _, kv := range entries {
		if name, ok := kv.Name(); ok && name == key {
			return kv
		}
	}
	return nil
}

// dotted reports whether some entry uses key as the first segment of a
// dotted key (key.sub = ...).
func dotted(entries []*KeyValue, key string) bool {
	for _, kv := range entries {
		if len(kv.Key) > 1 && kv.Key[0].Name == key {
			return true
		}
	}
	return false
}

func set(entries []*KeyValue, key string, v Value) (kv *KeyValue, added bool) {
	if kv := lookup(entries, key); kv != nil {
		kv.SetValue(v)
		return kv, false
	}
	return &KeyValue{Key: NewKeyPath(key), Value: v}, true
}
