package ast

import (
	"strings"

	"featsync/internal/source"
)

// Key is one segment of a possibly dotted key.
type Key struct {
	Name string // decoded
	Raw  string // as written, quotes included; empty for synthetic keys
	Span source.Span
}

// KeyPath is a dotted key: a.b."c d".
type KeyPath []Key

// NewKeyPath builds a synthetic path from plain names.
func NewKeyPath(names ...string) KeyPath {
	out := make(KeyPath, len(names))
	for i, n := range names {
		out[i] = Key{Name: n}
	}
	return out
}

// Names returns the decoded segments.
func (p KeyPath) Names() []string {
	out := make([]string, len(p))
	for i, k := range p {
		out[i] = k.Name
	}
	return out
}

// Is reports whether the path equals names segment by segment.
func (p KeyPath) Is(names ...string) bool {
	if len(p) != len(names) {
		return false
	}
	for i, k := range p {
		if k.Name != names[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether names is a strict prefix of the path.
func (p KeyPath) HasPrefix(names ...string) bool {
	if len(p) <= len(names) {
		return false
	}
	for i, n := range names {
		if p[i].Name != n {
			return false
		}
	}
	return true
}

func (p KeyPath) String() string {
	return strings.Join(p.Names(), ".")
}

// Span covers every segment of a parsed path.
func (p KeyPath) Span() source.Span {
	if len(p) == 0 {
		return source.Span{}
	}
	return p[0].Span.Cover(p[len(p)-1].Span)
}
