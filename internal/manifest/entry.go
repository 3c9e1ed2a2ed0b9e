package manifest

import (
	"strings"
	"unicode"

	"featsync/internal/ast"
	"featsync/internal/features"
)

// DependencyName is the dependency whose features are managed.
const DependencyName = "tauri"

var dependenciesPath = []string{"dependencies"}

// Shape is how the dependency is declared.
type Shape uint8

const (
	ShapeNone        Shape = iota // not resolved: no dependencies table
	ShapeFullTable                // [dependencies.tauri]
	ShapeInlineTable              // tauri = { ... }
	ShapeBareVersion              // tauri = "1.2"
	ShapeUnsupported
)

func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeFullTable:
		return "full-table"
	case ShapeInlineTable:
		return "inline-table"
	case ShapeBareVersion:
		return "bare-version"
	case ShapeUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// Entry is a typed view of one dependency inside a document. Merge mutates
// the document through it.
type Entry struct {
	Name  string
	Shape Shape

	Table   *ast.Table       // ShapeFullTable
	KV      *ast.KeyValue    // ShapeInlineTable, ShapeBareVersion
	Inline  *ast.InlineTable // ShapeInlineTable
	Version *ast.String      // ShapeBareVersion

	// Found describes what was found for ShapeUnsupported.
	Found string
}

// Resolve classifies dependency name in [dependencies].
func Resolve(doc *ast.Document, name string) Entry {
	e := Entry{Name: name, Shape: ShapeUnsupported}
	item := doc.Item(dependenciesPath, name)
	switch item.Kind {
	case ast.ItemTable:
		if item.Table.Dotted("features") || doc.HasTable("dependencies", name, "features") {
			e.Found = "features table"
			return e
		}
		e.Shape, e.Table = ShapeFullTable, item.Table
	case ast.ItemValue:
		e.KV = item.Entry
		switch v := item.Entry.Value.(type) {
		case *ast.InlineTable:
			for _, kv := range v.Entries {
				if len(kv.Key) > 1 && kv.Key[0].Name == "features" {
					e.Found = "features table"
					return e
				}
			}
			e.Shape, e.Inline = ShapeInlineTable, v
		case *ast.String:
			e.Shape, e.Version = ShapeBareVersion, v
		default:
			e.Found = ast.Describe(v)
		}
	case ast.ItemArrayOfTables:
		e.Found = "array of tables"
	case ast.ItemDotted:
		e.Found = "dotted keys"
	default:
		e.Found = "no entry"
	}
	return e
}

// Merge writes set as the dependency's features and returns the set that was
// written. An existing features array containing the marker keeps it: the
// marker is appended to set.
func (e *Entry) Merge(set features.Set) (features.Set, error) {
	switch e.Shape {
	case ShapeFullTable:
		set = withMarker(e.Table.Get("features"), set)
		setFeatures(e.Table.Get("features"), set, func(v ast.Value) { e.Table.Set("features", v) })
	case ShapeInlineTable:
		set = withMarker(e.Inline.Get("features"), set)
		setFeatures(e.Inline.Get("features"), set, func(v ast.Value) { e.Inline.Set("features", v) })
	case ShapeBareVersion:
		def := ast.NewInlineTable()
		def.Set("version", ast.NewString(cleanVersion(e.Version.Value)))
		def.Set("features", ast.StringArray(set))
		e.KV.SetValue(def)
	default:
		return nil, ErrUnsupportedFormat
	}
	return set, nil
}

// HasMarker reports whether the current features array holds the marker.
func (e *Entry) HasMarker() bool {
	switch e.Shape {
	case ShapeFullTable:
		return markerIn(e.Table.Get("features"))
	case ShapeInlineTable:
		return markerIn(e.Inline.Get("features"))
	}
	return false
}

func markerIn(kv *ast.KeyValue) bool {
	if kv == nil {
		return false
	}
	arr, ok := kv.Value.(*ast.Array)
	return ok && arr.Contains(features.Marker)
}

func withMarker(kv *ast.KeyValue, set features.Set) features.Set {
	if !markerIn(kv) {
		return set
	}
	out := make(features.Set, 0, len(set)+1)
	out = append(out, set...)
	return append(out, features.Marker)
}

// setFeatures replaces the value unless it already is exactly set, so an
// unchanged array keeps its source layout.
func setFeatures(kv *ast.KeyValue, set features.Set, replace func(ast.Value)) {
	if kv != nil && sameStrings(kv.Value, set) {
		return
	}
	replace(ast.StringArray(set))
}

func sameStrings(v ast.Value, set features.Set) bool {
	arr, ok := v.(*ast.Array)
	if !ok || len(arr.Elems) != len(set) {
		return false
	}
	for i, e := range arr.Elems {
		s, ok := e.(*ast.String)
		if !ok || s.Value != set[i] {
			return false
		}
	}
	return true
}

// cleanVersion drops quotes and whitespace from a bare version string.
func cleanVersion(v string) string {
	return strings.Map(func(r rune) rune {
		if r == '"' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v)
}
