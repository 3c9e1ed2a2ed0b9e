package token

import (
	"featsync/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsString reports whether the token is any of the four TOML string forms.
func (t Token) IsString() bool {
	switch t.Kind {
	case BasicString, LiteralString, MLBasicString, MLLiteralString:
		return true
	default:
		return false
	}
}

// IsKeyStart reports whether the token can begin a key.
// Multi-line strings are not valid keys.
func (t Token) IsKeyStart() bool {
	return t.Kind == Bare || t.Kind == BasicString || t.Kind == LiteralString
}

// NewlineBefore reports whether a newline separates the token from the previous one.
func (t Token) NewlineBefore() bool {
	for _, tv := range t.Leading {
		if tv.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

// Adjacent reports whether the token directly follows the previous one.
func (t Token) Adjacent() bool { return len(t.Leading) == 0 }
