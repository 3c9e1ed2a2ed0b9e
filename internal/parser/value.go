package parser

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"featsync/internal/ast"
	"featsync/internal/diag"
	"featsync/internal/token"
)

func (p *Parser) parseValue() (ast.Value, bool) {
	tok := p.peek()
	switch {
	case tok.IsString():
		p.next()
		s, ok := p.decodeString(tok)
		return &ast.String{Value: s, Raw: tok.Text, Kind: stringKind(tok.Kind), Src: tok.Span}, ok
	case tok.Kind == token.LBracket:
		return p.parseArray()
	case tok.Kind == token.LBrace:
		return p.parseInlineTable()
	case tok.Kind == token.Bare:
		return p.parseScalar()
	case tok.Kind == token.Invalid:
		p.next()
		return nil, false
	}
	p.unexpected(tok, diag.SynExpectValue, "expected value, found "+describe(tok))
	return nil, false
}

func stringKind(k token.Kind) ast.StringKind {
	switch k {
	case token.LiteralString:
		return ast.StringLiteral
	case token.MLBasicString:
		return ast.StringMLBasic
	case token.MLLiteralString:
		return ast.StringMLLiteral
	}
	return ast.StringBasic
}

// parseScalar склеивает соседние bare-токены: 3.14, 1979-05-27T07:32:00.5Z,
// "1979-05-27 07:32:00" (дата и время через один пробел).
func (p *Parser) parseScalar() (ast.Value, bool) {
	first := p.next()
	span := first.Span
	var raw strings.Builder
	raw.WriteString(first.Text)
	for {
		nt := p.peek()
		if nt.Kind == token.Dot && nt.Adjacent() {
			p.next()
			frac := p.peek()
			if frac.Kind != token.Bare || !frac.Adjacent() {
				p.report(diag.SynInvalidValue, span.Cover(p.last.Span), "invalid value "+quote(raw.String()+".")).Emit()
				return nil, false
			}
			p.next()
			raw.WriteByte('.')
			raw.WriteString(frac.Text)
			span = span.Cover(frac.Span)
			continue
		}
		if nt.Kind == token.Bare && isLocalDate(raw.String()) && spaceOnly(nt) && isTimeStart(nt.Text) {
			p.next()
			raw.WriteByte(' ')
			raw.WriteString(nt.Text)
			span = span.Cover(nt.Span)
			continue
		}
		break
	}

	text := raw.String()
	kind, ok := classifyScalar(text)
	if !ok {
		p.report(diag.SynInvalidValue, span, "invalid value "+quote(text)).Emit()
		return nil, false
	}
	return &ast.Scalar{Kind: kind, Raw: text, Src: span}, true
}

// classifyScalar проверяет литерал эталонным декодером и возвращает его тип.
func classifyScalar(raw string) (ast.ScalarKind, bool) {
	var m map[string]any
	if _, err := toml.Decode("v = "+raw, &m); err != nil {
		return 0, false
	}
	switch m["v"].(type) {
	case int64:
		return ast.ScalarInteger, true
	case float64:
		return ast.ScalarFloat, true
	case bool:
		return ast.ScalarBool, true
	case time.Time:
		return ast.ScalarDatetime, true
	}
	return 0, false
}

func isLocalDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, b := range []byte(s) {
		if i == 4 || i == 7 {
			continue
		}
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

func isTimeStart(s string) bool {
	return len(s) >= 3 && isDigit(s[0]) && isDigit(s[1]) && s[2] == ':'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func spaceOnly(tok token.Token) bool {
	return len(tok.Leading) == 1 && tok.Leading[0].Kind == token.TriviaSpace && tok.Leading[0].Text == " "
}

func (p *Parser) parseArray() (ast.Value, bool) {
	open := p.next()
	arr := &ast.Array{}
	for {
		switch tok := p.peek(); tok.Kind {
		case token.RBracket:
			p.next()
			arr.Src = open.Span.Cover(tok.Span)
			return arr, true
		case token.EOF:
			p.report(diag.SynUnclosedBracket, open.Span, "unclosed array").Emit()
			return nil, false
		}
		v, ok := p.parseValue()
		if !ok {
			return nil, false
		}
		arr.Elems = append(arr.Elems, v)
		switch tok := p.peek(); tok.Kind {
		case token.Comma:
			p.next()
		case token.RBracket:
		case token.EOF:
			p.report(diag.SynUnclosedBracket, open.Span, "unclosed array").Emit()
			return nil, false
		default:
			p.unexpected(tok, diag.SynUnclosedBracket, "expected ',' or ']' in array, found "+describe(tok))
			return nil, false
		}
	}
}

// parseInlineTable: { k = v, ... } целиком на одной строке, без висячей запятой.
func (p *Parser) parseInlineTable() (ast.Value, bool) {
	open := p.next()
	tbl := &ast.InlineTable{}
	keys := newKeySet()
	if tok := p.peek(); tok.Kind == token.RBrace {
		if tok.NewlineBefore() {
			p.report(diag.SynNewlineInInline, tok.Span, "newline in inline table").Emit()
			return nil, false
		}
		p.next()
		tbl.Src = open.Span.Cover(tok.Span)
		return tbl, true
	}
	for {
		start := p.peek()
		switch {
		case start.Kind == token.EOF:
			p.report(diag.SynUnclosedBrace, open.Span, "unclosed inline table").Emit()
			return nil, false
		case start.NewlineBefore():
			p.report(diag.SynNewlineInInline, start.Span, "newline in inline table").Emit()
			return nil, false
		}
		kv, ok := p.parseKeyValue()
		if !ok {
			return nil, false
		}
		p.defineKey(keys, kv)
		tbl.Entries = append(tbl.Entries, kv)

		sep := p.peek()
		switch {
		case sep.Kind == token.EOF:
			p.report(diag.SynUnclosedBrace, open.Span, "unclosed inline table").Emit()
			return nil, false
		case sep.NewlineBefore():
			p.report(diag.SynNewlineInInline, sep.Span, "newline in inline table").Emit()
			return nil, false
		case sep.Kind == token.Comma:
			p.next()
		case sep.Kind == token.RBrace:
			p.next()
			tbl.Src = open.Span.Cover(sep.Span)
			return tbl, true
		default:
			p.unexpected(sep, diag.SynUnclosedBrace, "expected ',' or '}' in inline table, found "+describe(sep))
			return nil, false
		}
	}
}
