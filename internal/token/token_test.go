package token_test

import (
	"testing"

	"featsync/internal/source"
	"featsync/internal/token"
)

func TestIsString(t *testing.T) {
	strs := []token.Kind{token.BasicString, token.LiteralString, token.MLBasicString, token.MLLiteralString}
	for _, k := range strs {
		if !(token.Token{Kind: k}).IsString() {
			t.Fatalf("%v should be a string", k)
		}
	}
	for _, k := range []token.Kind{token.Bare, token.Dot, token.LBracket} {
		if (token.Token{Kind: k}).IsString() {
			t.Fatalf("%v must NOT be a string", k)
		}
	}
}

func TestIsKeyStart(t *testing.T) {
	if (token.Token{Kind: token.MLBasicString}).IsKeyStart() {
		t.Fatal("multi-line strings cannot start a key")
	}
	if !(token.Token{Kind: token.LiteralString}).IsKeyStart() {
		t.Fatal("literal strings can start a key")
	}
}

func TestNewlineBefore(t *testing.T) {
	tok := token.Token{
		Kind: token.Bare,
		Leading: []token.Trivia{
			{Kind: token.TriviaSpace, Span: source.Span{Start: 0, End: 1}, Text: " "},
			{Kind: token.TriviaComment, Span: source.Span{Start: 1, End: 4}, Text: "# c"},
			{Kind: token.TriviaNewline, Span: source.Span{Start: 4, End: 5}, Text: "\n"},
		},
	}
	if !tok.NewlineBefore() {
		t.Fatal("expected newline before token")
	}
	if tok.Adjacent() {
		t.Fatal("token with trivia is not adjacent")
	}
	if (token.Token{Kind: token.Comma}).NewlineBefore() {
		t.Fatal("token without trivia has no newline before it")
	}
}

func TestKindString(t *testing.T) {
	if got := token.Assign.String(); got != "'='" {
		t.Fatalf("Assign.String() = %q", got)
	}
}
