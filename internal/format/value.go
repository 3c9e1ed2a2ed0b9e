package format

import (
	"fmt"
	"unicode/utf8"

	"featsync/internal/ast"
)

// writeValue prints v canonically. Parsed values nested inside a synthetic
// container keep their source text.
func writeValue(w *Writer, v ast.Value) {
	if !ast.Synthetic(v) {
		w.CopySpan(v.Span())
		return
	}
	switch v := v.(type) {
	case *ast.String:
		writeBasicString(w, v.Value)
	case *ast.Scalar:
		w.WriteString(v.Raw)
	case *ast.Array:
		_ = w.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				w.WriteString(", ")
			}
			writeValue(w, e)
		}
		_ = w.WriteByte(']')
	case *ast.InlineTable:
		if len(v.Entries) == 0 {
			w.WriteString("{}")
			return
		}
		w.WriteString("{ ")
		for i, kv := range v.Entries {
			if i > 0 {
				w.WriteString(", ")
			}
			writeEntry(w, kv)
		}
		w.WriteString(" }")
	}
}

func writeEntry(w *Writer, kv *ast.KeyValue) {
	writeKey(w, kv.Key)
	w.WriteString(" = ")
	writeValue(w, kv.Value)
}

func writeKey(w *Writer, path ast.KeyPath) {
	for i, k := range path {
		if i > 0 {
			_ = w.WriteByte('.')
		}
		switch {
		case k.Raw != "":
			w.WriteString(k.Raw)
		case isBareKey(k.Name):
			w.WriteString(k.Name)
		default:
			writeBasicString(w, k.Name)
		}
	}
}

// isBareKey: [A-Za-z0-9_-]+
func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if !(b >= 'A' && b <= 'Z') && !(b >= 'a' && b <= 'z') && !(b >= '0' && b <= '9') && b != '_' && b != '-' {
			return false
		}
	}
	return true
}

// writeBasicString emits a "..." string with TOML escapes.
func writeBasicString(w *Writer, s string) {
	_ = w.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			w.WriteString(`\"`)
		case r == '\\':
			w.WriteString(`\\`)
		case r == '\b':
			w.WriteString(`\b`)
		case r == '\t':
			w.WriteString(`\t`)
		case r == '\n':
			w.WriteString(`\n`)
		case r == '\f':
			w.WriteString(`\f`)
		case r == '\r':
			w.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(w, `\u%04X`, r)
		default:
			w.WriteString(s[i : i+size])
		}
		i += size
	}
	_ = w.WriteByte('"')
}

// Value returns the canonical text of a synthetic value.
func Value(v ast.Value) string {
	w := NewWriter(nil)
	writeValue(w, v)
	return string(w.Bytes())
}
