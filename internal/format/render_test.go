package format_test

import (
	"testing"

	"featsync/internal/ast"
	"featsync/internal/format"
	"featsync/internal/parser"
	"featsync/internal/source"
)

func parse(t *testing.T, input string) *ast.Document {
	t.Helper()
	fs := source.NewFileSet()
	doc, err := parser.ParseFile(fs.Get(fs.AddVirtual("Cargo.toml", []byte(input))))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestRoundTripIsByteExact(t *testing.T) {
	inputs := map[string]string{
		"comments":         "# top\n[package] # hdr\nname   =   \"x\"   # odd spacing\n\n\n[dependencies]\n",
		"crlf":             "[dependencies]\r\ntauri = { version = \"1\" }\r\n",
		"arrays":           "members = [\n  'a', # first\n  \"b\",\n]\n",
		"strings":          "a = '''\nraw\n'''\nb = \"\"\"\nml\"\"\"\n",
		"no final newline": "[a]\nb = 1",
		"dotted":           "a.b . c = 1\n[ x . y ]\n",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			if got := string(format.Render(parse(t, input))); got != input {
				t.Fatalf("round trip mismatch:\n got %q\nwant %q", got, input)
			}
		})
	}
}

func TestReplaceValue(t *testing.T) {
	doc := parse(t, "[dependencies.tauri]\nversion = \"1\" # pinned\nfeatures = [ 'old' ] # list\n")
	doc.Table("dependencies", "tauri").Set("features", ast.StringArray([]string{"api-all", "cli"}))
	want := "[dependencies.tauri]\nversion = \"1\" # pinned\nfeatures = [\"api-all\", \"cli\"] # list\n"
	if got := string(format.Render(doc)); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestInsertIntoTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"after last entry comment",
			"[dependencies.tauri]\nversion = \"1\" # v\n\n[other]\n",
			"[dependencies.tauri]\nversion = \"1\" # v\nfeatures = []\n\n[other]\n",
		},
		{
			"crlf",
			"[dependencies.tauri]\r\nversion = \"1\"\r\n",
			"[dependencies.tauri]\r\nversion = \"1\"\r\nfeatures = []\r\n",
		},
		{
			"empty table",
			"[dependencies.tauri] # empty\n[x]\n",
			"[dependencies.tauri] # empty\nfeatures = []\n[x]\n",
		},
		{
			"no final newline",
			"[dependencies.tauri]\nversion = \"1\"",
			"[dependencies.tauri]\nversion = \"1\"\nfeatures = []",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.input)
			doc.Table("dependencies", "tauri").Set("features", ast.NewArray())
			if got := string(format.Render(doc)); got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestInsertIntoRootWithoutEntries(t *testing.T) {
	doc := parse(t, "# c\n[a]\n")
	doc.Root.Set("k", ast.NewString("v"))
	if got, want := string(format.Render(doc)), "k = \"v\"\n# c\n[a]\n"; got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestInsertIntoInlineTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"non-empty", "tauri = { version = \"1\" }\n", "tauri = { version = \"1\", features = [\"a\"] }\n"},
		{"empty", "tauri = {}\n", "tauri = { features = [\"a\"] }\n"},
		{"empty with space", "tauri = {  }\n", "tauri = { features = [\"a\"] }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.input)
			it := doc.Root.Get("tauri").Value.(*ast.InlineTable)
			it.Set("features", ast.StringArray([]string{"a"}))
			if got := string(format.Render(doc)); got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestReplaceInsideInlineTable(t *testing.T) {
	doc := parse(t, "tauri = { version = \"1\", features = [\"x\"], default-features = false }\n")
	it := doc.Root.Get("tauri").Value.(*ast.InlineTable)
	it.Set("features", ast.StringArray([]string{"a", "b"}))
	want := "tauri = { version = \"1\", features = [\"a\", \"b\"], default-features = false }\n"
	if got := string(format.Render(doc)); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestCanonicalValues(t *testing.T) {
	it := ast.NewInlineTable()
	it.Set("version", ast.NewString("1.2"))
	it.Set("features", ast.NewArray())
	it.Set("odd key", ast.NewString("tab\there \"q\""))
	want := `{ version = "1.2", features = [], "odd key" = "tab\there \"q\"" }`
	if got := format.Value(it); got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
	if got := format.Value(ast.NewInlineTable()); got != "{}" {
		t.Fatalf("empty inline = %s", got)
	}
}

func TestFragmentHook(t *testing.T) {
	doc := parse(t, "a = 1\nb = 2\n")
	doc.Root.Set("a", ast.NewString("x"))
	calls := 0
	out := format.RenderWith(doc, format.Options{Fragment: func(b []byte) []byte {
		calls++
		return append([]byte("<"), append(b, '>')...)
	}})
	if calls != 1 {
		t.Fatalf("fragment calls = %d, want 1", calls)
	}
	if got, want := string(out), "a = <\"x\">\nb = 2\n"; got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}
