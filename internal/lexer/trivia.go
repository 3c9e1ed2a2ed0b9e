package lexer

import (
	"featsync/internal/diag"
	"featsync/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ' и '\t' коалесцируются в один TriviaSpace
// - последовательные '\n' / "\r\n" коалесцируются в один TriviaNewline
// - '#' ... до конца строки (без перевода строки) -> TriviaComment
// - одиночный '\r' репортится и считается пробелом
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)

		case b == '\n' || b == '\r':
			for lx.eatNewline() {
			}
			if lx.cursor.Mark() == start {
				// '\r' без '\n'
				lx.cursor.Bump()
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBareCarriageReturn, sp, "carriage return must be followed by a line feed")
				lx.pushTrivia(token.TriviaSpace, start)
				continue
			}
			lx.pushTrivia(token.TriviaNewline, start)

		case b == '#':
			for !lx.cursor.EOF() && !lx.atNewline() {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaComment, start)

		default:
			// нет больше trivia
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// atNewline: текущая позиция начинается с "\n" или "\r\n".
func (lx *Lexer) atNewline() bool {
	b := lx.cursor.Peek()
	if b == '\n' {
		return true
	}
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '\r' && b1 == '\n'
}

func (lx *Lexer) eatNewline() bool {
	if lx.cursor.Eat('\n') {
		return true
	}
	return lx.try2('\r', '\n')
}
