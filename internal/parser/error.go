package parser

import (
	"fmt"

	"featsync/internal/diag"
	"featsync/internal/source"
)

// ParseError is the first syntax error of a file.
type ParseError struct {
	Path string
	Line uint32
	Col  uint32
	Code diag.Code
	Msg  string
	Span source.Span
}

func newParseError(file *source.File, d diag.Diagnostic) *ParseError {
	pos := file.Position(d.Primary.Start)
	return &ParseError{
		Path: file.Path,
		Line: pos.Line,
		Col:  pos.Col,
		Code: d.Code,
		Msg:  d.Message,
		Span: d.Primary,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
}
