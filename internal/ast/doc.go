// Package ast holds the format-preserving tree of a TOML manifest.
//
// Every node parsed from source keeps its byte span; the renderer in
// internal/format copies those spans verbatim. Nodes built with the New*
// constructors have an empty span and are rendered canonically. Replacing a
// value keeps the entry's original value span, so the renderer knows which
// bytes the new value overwrites.
package ast
