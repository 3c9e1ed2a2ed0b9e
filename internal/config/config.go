// Package config decodes the application config that drives feature sync.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ErrNotLoaded is returned by Handle when no config has been set.
var ErrNotLoaded = errors.New("config not loaded")

// Config is the subset of Tauri.toml the feature set depends on.
type Config struct {
	Tauri TauriConfig `toml:"tauri"`
}

type TauriConfig struct {
	Allowlist  Allowlist         `toml:"allowlist"`
	CLI        *CLIConfig        `toml:"cli"`
	Updater    UpdaterConfig     `toml:"updater"`
	SystemTray *SystemTrayConfig `toml:"systemTray"`
}

type CLIConfig struct {
	Description     string `toml:"description"`
	LongDescription string `toml:"longDescription"`
	BeforeHelp      string `toml:"beforeHelp"`
	AfterHelp       string `toml:"afterHelp"`
}

type UpdaterConfig struct {
	Active    bool     `toml:"active"`
	Dialog    bool     `toml:"dialog"`
	Endpoints []string `toml:"endpoints"`
	Pubkey    string   `toml:"pubkey"`
}

type SystemTrayConfig struct {
	IconPath       string `toml:"iconPath"`
	IconAsTemplate bool   `toml:"iconAsTemplate"`
}

// Load decodes path. An empty [tauri.cli] or [tauri.systemTray] table still
// counts as present.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.markPresent(meta)
	return &cfg, nil
}

// Decode is Load over in-memory text.
func Decode(name, text string) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	cfg.markPresent(meta)
	return &cfg, nil
}

func (c *Config) markPresent(meta toml.MetaData) {
	if c.Tauri.CLI == nil && meta.IsDefined("tauri", "cli") {
		c.Tauri.CLI = &CLIConfig{}
	}
	if c.Tauri.SystemTray == nil && meta.IsDefined("tauri", "systemTray") {
		c.Tauri.SystemTray = &SystemTrayConfig{}
	}
}

// AllowlistFeatures returns the cargo features enabled by the allowlist.
func (c *Config) AllowlistFeatures() []string { return c.Tauri.Allowlist.Features() }

// HasCLI reports whether a [tauri.cli] section is present.
func (c *Config) HasCLI() bool { return c.Tauri.CLI != nil }

// UpdaterActive reports tauri.updater.active.
func (c *Config) UpdaterActive() bool { return c.Tauri.Updater.Active }

// HasSystemTray reports whether a [tauri.systemTray] section is present.
func (c *Config) HasSystemTray() bool { return c.Tauri.SystemTray != nil }
