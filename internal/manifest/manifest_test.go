package manifest_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"featsync/internal/config"
	"featsync/internal/features"
	"featsync/internal/manifest"
	"featsync/internal/observ"
	"featsync/internal/parser"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cargo.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func handle(t *testing.T, text string) *config.Handle {
	t.Helper()
	cfg, err := config.Decode("Tauri.toml", text)
	if err != nil {
		t.Fatal(err)
	}
	return config.NewHandle(cfg)
}

const allowAll = "[tauri.allowlist]\nall = true\n"

func TestRewriteFullTable(t *testing.T) {
	path := writeManifest(t, `[package]
name = "app"

# the runtime
[dependencies.tauri]
version = "1.0.0" # pinned
features = [ "api-all", "menu" ]
default-features = false

[build-dependencies]
tauri-build = "1"
`)
	h := handle(t, "[tauri.allowlist.fs]\nreadFile = true\n[tauri.cli]\n[tauri.updater]\nactive = true\n")

	set, err := manifest.RewriteFeatureDependency(context.Background(), path, h)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	want := features.Set{"fs-read-file", "cli", "updater", "menu"}
	if !reflect.DeepEqual(set, want) {
		t.Fatalf("features = %v, want %v", set, want)
	}
	got := readFile(t, path)
	wantText := `[package]
name = "app"

# the runtime
[dependencies.tauri]
version = "1.0.0" # pinned
features = ["fs-read-file", "cli", "updater", "menu"]
default-features = false

[build-dependencies]
tauri-build = "1"
`
	if got != wantText {
		t.Fatalf("manifest mismatch:\n got %q\nwant %q", got, wantText)
	}
}

func TestRewriteFullTableInsertsFeatures(t *testing.T) {
	path := writeManifest(t, "[dependencies.tauri]\r\nversion = \"1\" # v\r\n\r\n[x]\r\n")
	if _, err := manifest.RewriteFeatureDependency(context.Background(), path, handle(t, allowAll)); err != nil {
		t.Fatal(err)
	}
	want := "[dependencies.tauri]\r\nversion = \"1\" # v\r\nfeatures = [\"api-all\"]\r\n\r\n[x]\r\n"
	if got := readFile(t, path); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestRewriteInlineTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"insert features",
			"[dependencies]\nserde = \"1\"\ntauri = { version = \"1.0.0\", default-features = false } # keep\n",
			"[dependencies]\nserde = \"1\"\ntauri = { version = \"1.0.0\", default-features = false, features = [\"api-all\"] } # keep\n",
		},
		{
			"replace features",
			"[dependencies]\ntauri = { features = [\"cli\"], version = \"1\" }\n",
			"[dependencies]\ntauri = { features = [\"api-all\"], version = \"1\" }\n",
		},
		{
			"marker carried over",
			"[dependencies]\ntauri = { version = \"1\", features = [\"menu\", \"gone\"] }\n",
			"[dependencies]\ntauri = { version = \"1\", features = [\"api-all\", \"menu\"] }\n",
		},
		{
			"empty inline table",
			"[dependencies]\ntauri = {}\n",
			"[dependencies]\ntauri = { features = [\"api-all\"] }\n",
		},
		{
			"bom and crlf",
			"\xef\xbb\xbf[dependencies]\r\ntauri = { version = \"1\" }\r\n",
			"\xef\xbb\xbf[dependencies]\r\ntauri = { version = \"1\", features = [\"api-all\"] }\r\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.input)
			res, err := manifest.Rewrite(context.Background(), path, handle(t, allowAll), manifest.RewriteOptions{})
			if err != nil {
				t.Fatalf("rewrite: %v", err)
			}
			if res.Shape != manifest.ShapeInlineTable || !res.Written {
				t.Fatalf("shape=%v written=%v", res.Shape, res.Written)
			}
			if got := readFile(t, path); got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestRewriteBareVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[dependencies]\ntauri = \"1.0.0\" # rt\n", "[dependencies]\ntauri = { version = \"1.0.0\", features = [\"api-all\", \"cli\"] } # rt\n"},
		{"[dependencies]\ntauri = ' ^1.2 '\n", "[dependencies]\ntauri = { version = \"^1.2\", features = [\"api-all\", \"cli\"] }\n"},
	}
	for _, tt := range tests {
		path := writeManifest(t, tt.input)
		res, err := manifest.Rewrite(context.Background(), path, handle(t, allowAll+"[tauri.cli]\n"), manifest.RewriteOptions{})
		if err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		if res.Shape != manifest.ShapeBareVersion {
			t.Fatalf("shape = %v", res.Shape)
		}
		if got := readFile(t, path); got != tt.want {
			t.Fatalf("got %q\nwant %q", got, tt.want)
		}
	}
}

func TestRewriteIsIdempotent(t *testing.T) {
	inputs := []string{
		"[dependencies]\ntauri = \"1\"\n",
		"[dependencies]\ntauri = { version = \"1\", features = [\"menu\"] }\n",
		"[dependencies.tauri]\nversion = \"1\"\nfeatures = [\n  \"menu\",\n]\n",
	}
	for _, input := range inputs {
		path := writeManifest(t, input)
		h := handle(t, allowAll+"[tauri.systemTray]\n")
		first, err := manifest.Rewrite(context.Background(), path, h, manifest.RewriteOptions{})
		if err != nil {
			t.Fatal(err)
		}
		after := readFile(t, path)
		second, err := manifest.Rewrite(context.Background(), path, h, manifest.RewriteOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if second.Changed || second.Written {
			t.Fatalf("second run changed the file: %q -> %q", after, second.Output)
		}
		if got := readFile(t, path); got != after {
			t.Fatalf("second run rewrote %q to %q", after, got)
		}
		if !reflect.DeepEqual(first.Features, second.Features) {
			t.Fatalf("features differ: %v vs %v", first.Features, second.Features)
		}
	}
}

func TestUnchangedFeaturesKeepLayout(t *testing.T) {
	input := "[dependencies.tauri]\nversion = \"1\"\nfeatures = [\n  \"api-all\", # all\n]\n"
	path := writeManifest(t, input)
	res, err := manifest.Rewrite(context.Background(), path, handle(t, allowAll), manifest.RewriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed || res.Written {
		t.Fatalf("unchanged feature list was rewritten")
	}
	if got := readFile(t, path); got != input {
		t.Fatalf("file modified: %q", got)
	}
}

func TestRewriteUnsupportedLeavesFileUntouched(t *testing.T) {
	inputs := map[string]string{
		"array of tables": "[dependencies]\n[[dependencies.tauri]]\nversion = \"1\"\n",
		"integer":         "[dependencies]\ntauri = 1\n",
		"array":           "[dependencies]\ntauri = [\"1\"]\n",
		"dotted keys":     "[dependencies]\ntauri.version = \"1\"\n",
		"missing entry":   "[dependencies]\nserde = \"1\"\n",
		"features table":  "[dependencies.tauri]\nversion = \"1\"\n[dependencies.tauri.features]\n",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			path := writeManifest(t, input)
			_, err := manifest.RewriteFeatureDependency(context.Background(), path, handle(t, allowAll))
			if !errors.Is(err, manifest.ErrUnsupportedFormat) {
				t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
			}
			if got := readFile(t, path); got != input {
				t.Fatalf("file modified: %q", got)
			}
		})
	}
}

func TestRewriteWithoutDependenciesIsNoop(t *testing.T) {
	inputs := []string{
		"[package]\nname = \"app\"\n",
		"dependencies = { tauri = \"1\" }\n",
	}
	for _, input := range inputs {
		path := writeManifest(t, input)
		res, err := manifest.Rewrite(context.Background(), path, handle(t, allowAll), manifest.RewriteOptions{})
		if err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		if res.Shape != manifest.ShapeNone || res.Written || res.Output != nil {
			t.Fatalf("unexpected result %+v", res)
		}
		if !reflect.DeepEqual(res.Features, features.Set{"api-all"}) {
			t.Fatalf("features = %v", res.Features)
		}
		if got := readFile(t, path); got != input {
			t.Fatalf("file modified: %q", got)
		}
	}
}

func TestRewriteDryRun(t *testing.T) {
	input := "[dependencies]\ntauri = \"1\"\n"
	path := writeManifest(t, input)
	timer := observ.NewTimer()
	res, err := manifest.Rewrite(context.Background(), path, handle(t, allowAll), manifest.RewriteOptions{DryRun: true, Timer: timer})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed || res.Written {
		t.Fatalf("changed=%v written=%v", res.Changed, res.Written)
	}
	if want := "[dependencies]\ntauri = { version = \"1\", features = [\"api-all\"] }\n"; string(res.Output) != want {
		t.Fatalf("output %q", res.Output)
	}
	if got := readFile(t, path); got != input {
		t.Fatalf("dry run wrote the file")
	}
	var names []string
	for _, p := range timer.Phases() {
		names = append(names, p.Name)
	}
	if want := []string{"load", "parse", "features", "resolve", "render"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("phases = %v, want %v", names, want)
	}
}

func TestRewriteLegacyNormalize(t *testing.T) {
	path := writeManifest(t, "[dependencies]\ntauri = \"1\"\n[x]\nlist=[1]\n")
	_, err := manifest.Rewrite(context.Background(), path, handle(t, allowAll), manifest.RewriteOptions{Normalize: manifest.NormalizeDocument})
	if err != nil {
		t.Fatal(err)
	}
	want := "[dependencies]\ntauri = { version = \"1\", features = [\"api-all\"] }\n[x]\nlist= [1]\n"
	if got := readFile(t, path); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestRewriteKeepsFileMode(t *testing.T) {
	path := writeManifest(t, "[dependencies]\ntauri = \"1\"\n")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := manifest.RewriteFeatureDependency(context.Background(), path, handle(t, allowAll)); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestRewriteErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := manifest.RewriteFeatureDependency(ctx, filepath.Join(t.TempDir(), "Cargo.toml"), handle(t, allowAll)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file: %v", err)
	}

	bad := writeManifest(t, "[dependencies\n")
	var pe *parser.ParseError
	if _, err := manifest.RewriteFeatureDependency(ctx, bad, handle(t, allowAll)); !errors.As(err, &pe) {
		t.Fatalf("parse error: %v", err)
	}

	ok := writeManifest(t, "[dependencies]\ntauri = \"1\"\n")
	if _, err := manifest.RewriteFeatureDependency(ctx, ok, config.NewHandle(nil)); !errors.Is(err, config.ErrNotLoaded) {
		t.Fatalf("not loaded: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := manifest.RewriteFeatureDependency(cancelled, ok, handle(t, allowAll)); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled: %v", err)
	}
}
