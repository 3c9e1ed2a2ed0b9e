package ast_test

import (
	"testing"

	"featsync/internal/ast"
	"featsync/internal/parser"
	"featsync/internal/source"
)

func parse(t *testing.T, input string) *ast.Document {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("Cargo.toml", []byte(input)))
	doc, err := parser.ParseFile(file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestItemKinds(t *testing.T) {
	doc := parse(t, `
[dependencies]
serde = "1"
tokio = { version = "1" }
inline.version = "2"
num = 3

[dependencies.tauri]
version = "1"

[[dependencies.arr]]
x = 1
`)
	tests := []struct {
		key  string
		want ast.ItemKind
	}{
		{"serde", ast.ItemValue},
		{"tokio", ast.ItemValue},
		{"inline", ast.ItemDotted},
		{"num", ast.ItemValue},
		{"tauri", ast.ItemTable},
		{"arr", ast.ItemArrayOfTables},
		{"missing", ast.ItemNone},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := doc.Item([]string{"dependencies"}, tt.key)
			if got.Kind != tt.want {
				t.Fatalf("Item(%q) = %v, want %v", tt.key, got.Kind, tt.want)
			}
		})
	}
}

func TestHasTableImplied(t *testing.T) {
	doc := parse(t, "[dependencies.tauri]\nversion = \"1\"\n")
	if doc.Table("dependencies") != nil {
		t.Fatalf("dependencies should not be an explicit table")
	}
	if !doc.HasTable("dependencies") {
		t.Fatalf("dependencies should be implied by [dependencies.tauri]")
	}
	if doc.HasTable("workspace") {
		t.Fatalf("unexpected workspace table")
	}
}

func TestTableSetReplacesOrAppends(t *testing.T) {
	doc := parse(t, "[package]\nname = \"app\"\n")
	pkg := doc.Table("package")
	kv := pkg.Set("name", ast.NewString("other"))
	if !kv.Replaced() || kv.Synthetic() {
		t.Fatalf("name should be a replaced parsed entry")
	}
	added := pkg.Set("edition", ast.NewString("2021"))
	if !added.Synthetic() {
		t.Fatalf("edition should be synthetic")
	}
	if len(pkg.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(pkg.Entries))
	}
	if off, ok := pkg.InsertOffset(); !ok || off != pkg.Entries[0].LineEnd {
		t.Fatalf("InsertOffset = %d,%v", off, ok)
	}
}

func TestInlineTableInsertOffset(t *testing.T) {
	doc := parse(t, "a = { x = 1, y = \"2\" }\nb = {}\n")
	a := doc.Root.Get("a").Value.(*ast.InlineTable)
	if got, want := a.InsertOffset(), a.Get("y").ValueSpan.End; got != want {
		t.Fatalf("InsertOffset = %d, want %d", got, want)
	}
	b := doc.Root.Get("b").Value.(*ast.InlineTable)
	if got, want := b.InsertOffset(), b.Src.Start+1; got != want {
		t.Fatalf("empty InsertOffset = %d, want %d", got, want)
	}
}

func TestArrayHelpers(t *testing.T) {
	arr := ast.StringArray([]string{"a", "menu"})
	if !arr.Contains("menu") || arr.Contains("b") {
		t.Fatalf("Contains mismatch")
	}
	arr.Elems = append(arr.Elems, &ast.Scalar{Kind: ast.ScalarInteger, Raw: "1"})
	if got := arr.Strings(); len(got) != 2 || got[1] != "menu" {
		t.Fatalf("Strings() = %v", got)
	}
	if got := ast.Describe(arr.Elems[2]); got != "integer" {
		t.Fatalf("Describe = %q", got)
	}
}

func TestKeyPath(t *testing.T) {
	p := ast.NewKeyPath("dependencies", "tauri")
	if !p.Is("dependencies", "tauri") || p.Is("dependencies") {
		t.Fatalf("Is mismatch")
	}
	if !p.HasPrefix("dependencies") || p.HasPrefix("dependencies", "tauri") {
		t.Fatalf("HasPrefix mismatch")
	}
	if p.String() != "dependencies.tauri" {
		t.Fatalf("String() = %q", p.String())
	}
}
