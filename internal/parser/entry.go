package parser

import (
	"featsync/internal/ast"
	"featsync/internal/diag"
	"featsync/internal/source"
	"featsync/internal/token"
)

// parseEntryLine разбирает key = value в текущую таблицу.
func (p *Parser) parseEntryLine() bool {
	kv, ok := p.parseKeyValue()
	if !ok {
		return false
	}
	p.defineKey(p.keys, kv)
	p.checkSubTable(kv)
	kv.LineEnd = p.lineEnd(kv.ValueSpan.End)
	p.cur.Entries = append(p.cur.Entries, kv)
	return true
}

func (p *Parser) parseKeyValue() (*ast.KeyValue, bool) {
	path, ok := p.parseKeyPath()
	if !ok {
		return nil, false
	}
	eq := p.peek()
	if eq.Kind != token.Assign || eq.NewlineBefore() {
		p.unexpected(eq, diag.SynExpectEquals, "expected '=' after key "+path.String()+", found "+describe(eq))
		return nil, false
	}
	p.next()
	if tok := p.peek(); tok.Kind == token.EOF || tok.NewlineBefore() {
		p.report(diag.SynExpectValue, eq.Span, "expected value after '='").Emit()
		return nil, false
	}
	val, ok := p.parseValue()
	if !ok {
		return nil, false
	}
	return &ast.KeyValue{
		Key:       path,
		Value:     val,
		Span:      path.Span().Cover(val.Span()),
		ValueSpan: val.Span(),
	}, true
}

func (p *Parser) parseKeyPath() (ast.KeyPath, bool) {
	var path ast.KeyPath
	for {
		k, ok := p.parseKey()
		if !ok {
			return nil, false
		}
		path = append(path, k)
		dot := p.peek()
		if dot.Kind != token.Dot || dot.NewlineBefore() {
			return path, true
		}
		p.next()
		if tok := p.peek(); tok.NewlineBefore() {
			p.unexpected(tok, diag.SynExpectKey, "expected key after '.'")
			return nil, false
		}
	}
}

func (p *Parser) parseKey() (ast.Key, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Bare:
		p.next()
		if !validBareKey(tok.Text) {
			p.report(diag.SynBadBareKey, tok.Span, "invalid bare key "+describe(tok)).Emit()
			return ast.Key{}, false
		}
		return ast.Key{Name: tok.Text, Raw: tok.Text, Span: tok.Span}, true
	case token.BasicString, token.LiteralString:
		p.next()
		name, ok := p.decodeString(tok)
		return ast.Key{Name: name, Raw: tok.Text, Span: tok.Span}, ok
	case token.MLBasicString, token.MLLiteralString:
		p.next()
		p.report(diag.SynMultilineKey, tok.Span, "multi-line strings cannot be used as keys").Emit()
	case token.Invalid:
		p.next()
	default:
		p.unexpected(tok, diag.SynExpectKey, "expected key, found "+describe(tok))
	}
	return ast.Key{}, false
}

// validBareKey: [A-Za-z0-9_-]+
func validBareKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if !(b >= 'A' && b <= 'Z') && !(b >= 'a' && b <= 'z') && !(b >= '0' && b <= '9') && b != '_' && b != '-' {
			return false
		}
	}
	return true
}

// keySet tracks keys of one table or inline table. Dotted keys also define
// the intermediate tables they pass through.
type keySet struct {
	values map[string]source.Span
	tables map[string]source.Span
}

func newKeySet() *keySet {
	return &keySet{
		values: make(map[string]source.Span),
		tables: make(map[string]source.Span),
	}
}

func (s *keySet) define(path ast.KeyPath) (source.Span, bool) {
	names := path.Names()
	for i := 1; i < len(names); i++ {
		if prev, dup := s.values[joinNames(names[:i])]; dup {
			return prev, false
		}
	}
	full := joinNames(names)
	if prev, dup := s.values[full]; dup {
		return prev, false
	}
	if prev, dup := s.tables[full]; dup {
		return prev, false
	}
	for i := 1; i < len(names); i++ {
		pre := joinNames(names[:i])
		if _, seen := s.tables[pre]; !seen {
			s.tables[pre] = path[i-1].Span
		}
	}
	s.values[full] = path.Span()
	return source.Span{}, true
}

func (p *Parser) defineKey(keys *keySet, kv *ast.KeyValue) {
	if prev, ok := keys.define(kv.Key); !ok {
		p.report(diag.SynDuplicateKey, kv.Key.Span(), "duplicate key "+kv.Key.String()).
			WithNote(prev, "previously defined here").
			Emit()
	}
}

// checkSubTable: a = ... в [t] конфликтует с заголовком [t.a].
func (p *Parser) checkSubTable(kv *ast.KeyValue) {
	names := append(p.cur.Header.Names(), kv.Key[0].Name)
	if t := p.tables.lookup(names); t != nil {
		p.report(diag.SynTableRedefinition, kv.Key.Span(), "key "+kv.Key[0].Name+" is already defined as a table").
			WithNote(t.HeaderSpan, "defined here").
			Emit()
	}
}
