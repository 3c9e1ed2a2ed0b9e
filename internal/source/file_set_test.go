package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Cargo.toml", []byte("[package]\n"), 0)
	id2 := fs.Add("Cargo.toml", []byte("[workspace]\n"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("Cargo.toml")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "[package]\n" {
		t.Errorf("old version content changed: %q", got)
	}
}

func TestLoadKeepsLineEndingsAndStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("[dependencies]\r\ntauri = \"1\"\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&FileCRLF == 0 {
		t.Error("expected FileCRLF flag")
	}
	if f.Newline() != "\r\n" {
		t.Errorf("Newline() = %q, want CRLF", f.Newline())
	}
	if string(f.Content) != "[dependencies]\r\ntauri = \"1\"\r\n" {
		t.Errorf("unexpected content %q", f.Content)
	}
	if got := f.Restore(f.Content); string(got) != string(raw) {
		t.Errorf("Restore mismatch: %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.toml")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("m.toml", []byte("a = 1\nbb = 2\n"))

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 8})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("end = %+v", end)
	}
}
