package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"featsync/internal/config"
)

func TestAllowlistFeatures(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want []string
	}{
		{"all", "[tauri.allowlist]\nall = true\n[tauri.allowlist.fs]\nall = true\n", []string{"api-all"}},
		{"none", "[tauri.allowlist]\nall = false\n", nil},
		{
			"module order",
			`[tauri.allowlist.clipboard]
writeText = true
[tauri.allowlist.fs]
readFile = true
exists = true
scope = ["$APP/*"]
[tauri.allowlist.globalShortcut]
all = true
`,
			[]string{"fs-read-file", "fs-exists", "global-shortcut-all", "clipboard-write-text"},
		},
		{
			"module all wins",
			"[tauri.allowlist.window]\nall = true\nsetTitle = true\n",
			[]string{"window-all"},
		},
		{
			"shell open regex",
			"[tauri.allowlist.shell]\nopen = '^https://'\nexecute = false\n",
			[]string{"shell-open"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Decode("Tauri.toml", tt.toml)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got := cfg.AllowlistFeatures(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("features = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubConfigPresence(t *testing.T) {
	cfg, err := config.Decode("Tauri.toml", "[tauri.cli]\n[tauri.updater]\nactive = true\n")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !cfg.HasCLI() || !cfg.UpdaterActive() || cfg.HasSystemTray() {
		t.Fatalf("cli=%v updater=%v tray=%v", cfg.HasCLI(), cfg.UpdaterActive(), cfg.HasSystemTray())
	}
	cfg, err = config.Decode("Tauri.toml", "[tauri.systemTray]\niconPath = \"icons/tray.png\"\n")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.HasCLI() || cfg.UpdaterActive() || !cfg.HasSystemTray() {
		t.Fatalf("unexpected flags for tray-only config")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Tauri.toml")
	if err := os.WriteFile(path, []byte("[tauri.updater]\nactive = true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.UpdaterActive() {
		t.Fatalf("updater should be active")
	}

	if _, err := config.Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file error = %v", err)
	}
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[tauri\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(bad); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestHandle(t *testing.T) {
	h := config.NewHandle(nil)
	if err := h.Read(func(*config.Config) error { return nil }); !errors.Is(err, config.ErrNotLoaded) {
		t.Fatalf("Read on empty handle = %v", err)
	}
	h.Set(&config.Config{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Read(func(cfg *config.Config) error {
				cfg.Tauri.Updater.Active = !cfg.Tauri.Updater.Active
				return nil
			})
		}()
	}
	wg.Wait()
	if !h.Loaded() {
		t.Fatalf("handle should be loaded")
	}
}
