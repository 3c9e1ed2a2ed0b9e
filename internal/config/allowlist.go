package config

import "strings"

// Allowlist mirrors [tauri.allowlist]. Each module maps API names to their
// flag; the "all" key enables the whole module. Non-flag keys such as scopes
// are kept but do not enable anything.
type Allowlist struct {
	All            bool            `toml:"all"`
	FS             ModuleAllowlist `toml:"fs"`
	Window         ModuleAllowlist `toml:"window"`
	Shell          ModuleAllowlist `toml:"shell"`
	Dialog         ModuleAllowlist `toml:"dialog"`
	HTTP           ModuleAllowlist `toml:"http"`
	Notification   ModuleAllowlist `toml:"notification"`
	GlobalShortcut ModuleAllowlist `toml:"globalShortcut"`
	OS             ModuleAllowlist `toml:"os"`
	Path           ModuleAllowlist `toml:"path"`
	Process        ModuleAllowlist `toml:"process"`
	Protocol       ModuleAllowlist `toml:"protocol"`
	Clipboard      ModuleAllowlist `toml:"clipboard"`
}

type ModuleAllowlist map[string]any

// Enabled reports whether api is switched on. shell.open also accepts a
// validation regex, which enables it.
func (m ModuleAllowlist) Enabled(api string) bool {
	switch v := m[api].(type) {
	case bool:
		return v
	case string:
		return api == "open" && v != ""
	}
	return false
}

type module struct {
	name string
	apis []string
	get  func(*Allowlist) ModuleAllowlist
}

// modules is the fixed feature order.
var modules = []module{
	{"fs", []string{"readFile", "writeFile", "readDir", "copyFile", "createDir", "removeDir", "removeFile", "renameFile", "exists"},
		func(a *Allowlist) ModuleAllowlist { return a.FS }},
	{"window", []string{
		"create", "center", "requestUserAttention", "setResizable", "setTitle", "maximize", "unmaximize",
		"minimize", "unminimize", "show", "hide", "close", "setDecorations", "setAlwaysOnTop", "setSize",
		"setMinSize", "setMaxSize", "setPosition", "setFullscreen", "setFocus", "setIcon", "setSkipTaskbar",
		"setCursorGrab", "setCursorVisible", "setCursorIcon", "setCursorPosition", "startDragging", "print",
	}, func(a *Allowlist) ModuleAllowlist { return a.Window }},
	{"shell", []string{"execute", "sidecar", "open"},
		func(a *Allowlist) ModuleAllowlist { return a.Shell }},
	{"dialog", []string{"open", "save", "message", "ask", "confirm"},
		func(a *Allowlist) ModuleAllowlist { return a.Dialog }},
	{"http", []string{"request"},
		func(a *Allowlist) ModuleAllowlist { return a.HTTP }},
	{"notification", nil, func(a *Allowlist) ModuleAllowlist { return a.Notification }},
	{"globalShortcut", nil, func(a *Allowlist) ModuleAllowlist { return a.GlobalShortcut }},
	{"os", nil, func(a *Allowlist) ModuleAllowlist { return a.OS }},
	{"path", nil, func(a *Allowlist) ModuleAllowlist { return a.Path }},
	{"process", []string{"relaunch", "exit"},
		func(a *Allowlist) ModuleAllowlist { return a.Process }},
	{"protocol", []string{"asset"},
		func(a *Allowlist) ModuleAllowlist { return a.Protocol }},
	{"clipboard", []string{"writeText", "readText"},
		func(a *Allowlist) ModuleAllowlist { return a.Clipboard }},
}

// Features returns api-all when everything is allowed, otherwise
// <module>-all or <module>-<api> per module in the fixed order.
func (a *Allowlist) Features() []string {
	if a.All {
		return []string{"api-all"}
	}
	var out []string
	for _, m := range modules {
		flags := m.get(a)
		prefix := kebab(m.name)
		if flags.Enabled("all") {
			out = append(out, prefix+"-all")
			continue
		}
		for _, api := range m.apis {
			if flags.Enabled(api) {
				out = append(out, prefix+"-"+kebab(api))
			}
		}
	}
	return out
}

// kebab: readFile -> read-file
func kebab(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
