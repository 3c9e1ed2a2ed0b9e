package parser

import (
	"strings"

	"featsync/internal/ast"
	"featsync/internal/diag"
	"featsync/internal/token"
)

// parseHeader разбирает [a.b] или [[a.b]] и делает таблицу текущей.
func (p *Parser) parseHeader() bool {
	open := p.next()
	kind := ast.TableStd
	if p.at(token.LBracket) && p.peek().Adjacent() {
		p.next()
		kind = ast.TableArray
	}
	if tok := p.peek(); tok.NewlineBefore() || tok.Kind == token.EOF {
		p.report(diag.SynBadHeader, open.Span, "table header must be on a single line").Emit()
		return false
	}
	path, ok := p.parseKeyPath()
	if !ok {
		return false
	}
	if !p.closeHeader(kind, open) {
		return false
	}

	t := &ast.Table{
		Kind:          kind,
		Header:        path,
		HeaderSpan:    open.Span.Cover(p.last.Span),
		HeaderLineEnd: p.lineEnd(p.last.Span.End),
	}
	p.defineTable(t)
	p.doc.Tables = append(p.doc.Tables, t)
	p.cur = t
	p.keys = newKeySet()
	return true
}

func (p *Parser) closeHeader(kind ast.TableKind, open token.Token) bool {
	want := 1
	if kind == ast.TableArray {
		want = 2
	}
	for i := 0; i < want; i++ {
		tok := p.peek()
		if tok.Kind != token.RBracket || tok.NewlineBefore() || (i > 0 && !tok.Adjacent()) {
			if tok.Kind == token.EOF || tok.NewlineBefore() {
				p.report(diag.SynUnclosedBracket, open.Span, "unclosed table header").Emit()
			} else {
				p.unexpected(tok, diag.SynBadHeader, "expected ']' in table header, found "+describe(tok))
			}
			return false
		}
		p.next()
	}
	return true
}

// tableIndex помнит заголовки для проверки дублей.
type tableIndex struct {
	std    map[string]*ast.Table
	arrays map[string]*ast.Table // последний элемент [[...]]
}

func newTableIndex() *tableIndex {
	return &tableIndex{
		std:    make(map[string]*ast.Table),
		arrays: make(map[string]*ast.Table),
	}
}

func joinNames(names []string) string {
	return strings.Join(names, "\x00")
}

// lookup returns the table a path currently resolves to: a [path] table or
// the latest [[path]] element.
func (ti *tableIndex) lookup(names []string) *ast.Table {
	key := joinNames(names)
	if t, ok := ti.std[key]; ok {
		return t
	}
	return ti.arrays[key]
}

func (p *Parser) defineTable(t *ast.Table) {
	names := t.Header.Names()
	key := joinNames(names)
	headerSpan := t.HeaderSpan

	parent := p.doc.Root
	if len(names) > 1 {
		parent = p.tables.lookup(names[:len(names)-1])
	}
	last := names[len(names)-1]
	if parent != nil {
		if kv := parent.Get(last); kv != nil {
			p.report(diag.SynTableRedefinition, headerSpan, "key "+t.Header.String()+" is already defined as a value").
				WithNote(kv.Span, "defined here").
				Emit()
			return
		}
		if parent.Dotted(last) {
			p.report(diag.SynTableRedefinition, headerSpan, "table "+t.Header.String()+" is already defined by dotted keys").Emit()
			return
		}
	}

	switch t.Kind {
	case ast.TableStd:
		if prev, dup := p.tables.std[key]; dup {
			p.report(diag.SynDuplicateTable, headerSpan, "duplicate table ["+t.Header.String()+"]").
				WithNote(prev.HeaderSpan, "first defined here").
				Emit()
			return
		}
		if prev, dup := p.tables.arrays[key]; dup {
			p.report(diag.SynTableRedefinition, headerSpan, "["+t.Header.String()+"] is already an array of tables").
				WithNote(prev.HeaderSpan, "defined here").
				Emit()
			return
		}
		p.tables.std[key] = t
	case ast.TableArray:
		if prev, dup := p.tables.std[key]; dup {
			p.report(diag.SynTableRedefinition, headerSpan, "[["+t.Header.String()+"]] is already a table").
				WithNote(prev.HeaderSpan, "defined here").
				Emit()
			return
		}
		p.tables.arrays[key] = t
		// подтаблицы предыдущего элемента больше не видны
		prefix := key + "\x00"
		for k := range p.tables.std {
			if strings.HasPrefix(k, prefix) {
				delete(p.tables.std, k)
			}
		}
	}
}
