package parser

import (
	"fmt"

	"fortio.org/safecast"

	"featsync/internal/ast"
	"featsync/internal/diag"
	"featsync/internal/lexer"
	"featsync/internal/source"
	"featsync/internal/token"
)

// DefaultMaxErrors caps the diagnostics ParseFile collects.
const DefaultMaxErrors = 16

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (p *Parser) enough() bool {
	if p.opts.MaxErrors == 0 {
		return false
	}
	return p.errs >= p.opts.MaxErrors
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx   *lexer.Lexer
	file *source.File
	size uint32
	opts Options
	errs uint

	doc    *ast.Document
	cur    *ast.Table // таблица, в которую пишутся entries
	keys   *keySet    // ключи текущей таблицы
	tables *tableIndex

	last token.Token // последний съеденный токен
}

// Parse builds the document and reports every problem to opts.Reporter.
// The returned document is partial when errors were reported.
func Parse(file *source.File, opts Options) *ast.Document {
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file %s too large: %w", file.Path, err))
	}
	doc := ast.NewDocument(file)
	p := Parser{
		lx:     lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		file:   file,
		size:   size,
		opts:   opts,
		doc:    doc,
		cur:    doc.Root,
		keys:   newKeySet(),
		tables: newTableIndex(),
	}
	p.parseDocument()
	return doc
}

// ParseFile parses file and fails with *ParseError on the first syntax error.
func ParseFile(file *source.File) (*ast.Document, error) {
	bag := diag.NewBag(DefaultMaxErrors)
	doc := Parse(file, Options{MaxErrors: DefaultMaxErrors, Reporter: diag.BagReporter{Bag: bag}})
	if first, ok := bag.FirstError(); ok {
		return nil, newParseError(file, first)
	}
	return doc, nil
}

func (p *Parser) peek() token.Token { return p.lx.Peek() }

func (p *Parser) next() token.Token {
	p.last = p.lx.Next()
	return p.last
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// parseDocument - основной цикл: заголовок таблицы или key = value на строку.
func (p *Parser) parseDocument() {
	for !p.at(token.EOF) && !p.enough() {
		start := p.peek().Span.Start
		var ok bool
		if p.at(token.LBracket) {
			ok = p.parseHeader()
		} else {
			ok = p.parseEntryLine()
		}
		if ok {
			ok = p.endLine()
		}
		if !ok {
			p.resync(start)
		}
	}
}

// resync прокручивает до первого токена следующей строки.
func (p *Parser) resync(lineStart uint32) {
	for !p.at(token.EOF) {
		tok := p.peek()
		if tok.Span.Start > lineStart && tok.NewlineBefore() {
			return
		}
		p.next()
	}
}

// endLine требует перевод строки (или EOF) после заголовка или entry.
func (p *Parser) endLine() bool {
	tok := p.peek()
	if tok.Kind == token.EOF || tok.NewlineBefore() {
		return true
	}
	p.unexpected(tok, diag.SynExpectNewline, "expected newline, found "+describe(tok))
	return false
}

// lineEnd returns the offset after trailing blanks and an optional comment
// that follow off on the same line.
func (p *Parser) lineEnd(off uint32) uint32 {
	c := p.file.Content
	for off < p.size && (c[off] == ' ' || c[off] == '\t') {
		off++
	}
	if off < p.size && c[off] == '#' {
		for off < p.size && c[off] != '\n' && !(c[off] == '\r' && off+1 < p.size && c[off+1] == '\n') {
			off++
		}
	}
	return off
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	p.errs++
	return diag.ReportError(p.opts.Reporter, code, sp, msg)
}

// unexpected репортит ошибку, если лексер ещё не сообщил о проблеме с этим токеном.
func (p *Parser) unexpected(tok token.Token, code diag.Code, msg string) {
	if tok.Kind == token.Invalid {
		return
	}
	p.report(code, tok.Span, msg).Emit()
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Invalid:
		return "invalid token"
	case token.Bare, token.BasicString, token.LiteralString:
		return fmt.Sprintf("%q", tok.Text)
	case token.MLBasicString, token.MLLiteralString:
		return "multi-line string"
	}
	return tok.Kind.String()
}
