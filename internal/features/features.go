// Package features computes the cargo feature list of the tauri dependency.
package features

import (
	"featsync/internal/config"
)

// Feature names appended after the allowlist, in this order.
const (
	CLI        = "cli"
	Updater    = "updater"
	SystemTray = "system-tray"
)

// Marker is the manually maintained feature that survives every rewrite.
const Marker = "menu"

// Options is the view of the app config the builder needs.
type Options interface {
	AllowlistFeatures() []string
	HasCLI() bool
	UpdaterActive() bool
	HasSystemTray() bool
}

// Set is an ordered feature list. Duplicates are kept.
type Set []string

// Build returns the allowlist features followed by cli, updater and
// system-tray when the corresponding options are enabled.
func Build(opts Options) Set {
	base := opts.AllowlistFeatures()
	set := make(Set, 0, len(base)+3)
	set = append(set, base...)
	if opts.HasCLI() {
		set = append(set, CLI)
	}
	if opts.UpdaterActive() {
		set = append(set, Updater)
	}
	if opts.HasSystemTray() {
		set = append(set, SystemTray)
	}
	return set
}

// FromHandle builds the set under the handle's lock.
func FromHandle(h *config.Handle) (Set, error) {
	var set Set
	err := h.Read(func(cfg *config.Config) error {
		set = Build(cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Contains reports whether name is in the set.
func (s Set) Contains(name string) bool {
	for _, f := range s {
		if f == name {
			return true
		}
	}
	return false
}

// Strings returns a copy as a plain slice.
func (s Set) Strings() []string {
	return append([]string(nil), s...)
}
