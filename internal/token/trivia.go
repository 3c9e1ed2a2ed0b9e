package token

import "featsync/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaComment
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
