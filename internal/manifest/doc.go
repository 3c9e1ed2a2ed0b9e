// Package manifest keeps the feature list of the tauri dependency in a
// Cargo.toml in sync with the app config, and reads workspace members.
//
// Only the features value of the dependency is rewritten. Every other byte of
// the manifest, comments and key order included, is written back unchanged.
package manifest
