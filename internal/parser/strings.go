package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"featsync/internal/diag"
	"featsync/internal/token"
)

// decodeString снимает кавычки и раскрывает escape-последовательности.
// Некорректные escape уже отрепорчены лексером и остаются как есть.
func (p *Parser) decodeString(tok token.Token) (string, bool) {
	text := tok.Text
	switch tok.Kind {
	case token.LiteralString:
		return text[1 : len(text)-1], true
	case token.MLLiteralString:
		return trimFirstNewline(text[3 : len(text)-3]), true
	case token.BasicString:
		return p.unescape(tok, text[1:len(text)-1], false)
	case token.MLBasicString:
		return p.unescape(tok, trimFirstNewline(text[3:len(text)-3]), true)
	}
	return "", false
}

func trimFirstNewline(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "\n")
}

func (p *Parser) unescape(tok token.Token, s string, multiline bool) (string, bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'b':
			b.WriteByte('\b')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 'e':
			b.WriteByte(0x1b)
		case '"', '\\':
			b.WriteByte(e)
		case 'u', 'U':
			n := 4
			if e == 'U' {
				n = 8
			}
			if i+1+n > len(s) {
				b.WriteByte('\\')
				b.WriteByte(e)
				continue
			}
			code, err := strconv.ParseUint(s[i+1:i+1+n], 16, 32)
			if err != nil {
				b.WriteByte('\\')
				b.WriteByte(e)
				continue
			}
			r := rune(code)
			if !utf8.ValidRune(r) {
				p.report(diag.LexBadEscape, tok.Span, "escape "+quote(s[i-1:i+1+n])+" is not a valid unicode scalar value").Emit()
				return "", false
			}
			b.WriteRune(r)
			i += n
		default:
			j := i
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if multiline && j < len(s) && (s[j] == '\n' || s[j] == '\r') {
				// line ending backslash: пропускаем пробелы и переводы строк
				for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
					j++
				}
				i = j - 1
				continue
			}
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String(), true
}

func quote(s string) string {
	return strconv.Quote(s)
}
