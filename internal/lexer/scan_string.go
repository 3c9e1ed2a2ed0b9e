package lexer

import (
	"featsync/internal/diag"
	"featsync/internal/token"
)

// scanBasicString: "..." или """...""".
// Escape-последовательности валидируются здесь, декодирует их парсер.
func (lx *Lexer) scanBasicString() token.Token {
	start := lx.cursor.Mark()
	if lx.try3('"', '"', '"') {
		return lx.scanMultiline(start, '"', token.MLBasicString, true)
	}
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			lx.cursor.Bump()
			return lx.emit(token.BasicString, start)
		case b == '\\':
			lx.scanEscape(false)
		case b == '\n' || b == '\r':
			return lx.unterminated(start, "newline in string literal")
		case isControl(b):
			lx.reportControl()
		default:
			lx.cursor.Bump()
		}
	}
	return lx.unterminated(start, "unterminated string literal")
}

// scanLiteralString: '...' или '''...''' - без escape.
func (lx *Lexer) scanLiteralString() token.Token {
	start := lx.cursor.Mark()
	if lx.try3('\'', '\'', '\'') {
		return lx.scanMultiline(start, '\'', token.MLLiteralString, false)
	}
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\'':
			lx.cursor.Bump()
			return lx.emit(token.LiteralString, start)
		case b == '\n' || b == '\r':
			return lx.unterminated(start, "newline in string literal")
		case isControl(b):
			lx.reportControl()
		default:
			lx.cursor.Bump()
		}
	}
	return lx.unterminated(start, "unterminated string literal")
}

// scanMultiline вызывается после открывающих трёх кавычек.
// Закрывающая тройка может быть продолжена ещё одной-двумя кавычками,
// они принадлежат содержимому: """a"""" == `a"`.
func (lx *Lexer) scanMultiline(start Mark, q byte, kind token.Kind, escapes bool) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == q && lx.try3(q, q, q):
			for extra := 0; extra < 2 && lx.cursor.Peek() == q; extra++ {
				lx.cursor.Bump()
			}
			return lx.emit(kind, start)
		case b == '\\' && escapes:
			lx.scanEscape(true)
		case b == '\n' || b == '\t':
			lx.cursor.Bump()
		case b == '\r':
			if !lx.try2('\r', '\n') {
				lx.reportControl()
			}
		case isControl(b):
			lx.reportControl()
		default:
			lx.cursor.Bump()
		}
	}
	return lx.unterminated(start, "unterminated multi-line string")
}

// scanEscape стоит на '\\'. multiline разрешает "line ending backslash".
func (lx *Lexer) scanEscape(multiline bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'
	if lx.cursor.EOF() {
		return
	}
	b := lx.cursor.Peek()
	switch b {
	case 'b', 't', 'n', 'f', 'r', '"', '\\', 'e':
		lx.cursor.Bump()
		return
	case 'u', 'U':
		lx.cursor.Bump()
		want := 4
		if b == 'U' {
			want = 8
		}
		for i := 0; i < want; i++ {
			if lx.cursor.EOF() || !isHex(lx.cursor.Peek()) {
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid unicode escape")
				return
			}
			lx.cursor.Bump()
		}
		return
	}
	if multiline {
		// "\" + пробелы + перевод строки: склейка строк
		save := lx.cursor.Mark()
		for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
			lx.cursor.Bump()
		}
		if lx.atNewline() {
			return
		}
		lx.cursor.Reset(save)
	}
	lx.cursor.Bump()
	lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid escape sequence "+quoteText(string(lx.file.Content[start:lx.cursor.Off])))
}

func (lx *Lexer) reportControl() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.errLex(diag.LexControlChar, lx.cursor.SpanFrom(start), "control character in string")
}

func (lx *Lexer) unterminated(start Mark, msg string) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, msg)
	return tok
}
